package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenRoundTrip kiểm tra tạo token rồi parse lại ra đúng userID.
func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	userID := "64f1b2c3d4e5f6a7b8c9d0e1"

	token, err := CreateToken(secret, userID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

// TestParseTokenInvalid kiểm tra các trường hợp token không hợp lệ.
func TestParseTokenInvalid(t *testing.T) {
	secret := "test-secret"

	t.Run("Sai secret", func(t *testing.T) {
		token, err := CreateToken(secret, "user-1", time.Hour)
		require.NoError(t, err)

		_, err = ParseToken("wrong-secret", token)
		assert.Error(t, err)
	})

	t.Run("Token hết hạn", func(t *testing.T) {
		token, err := CreateToken(secret, "user-1", -time.Minute)
		require.NoError(t, err)

		_, err = ParseToken(secret, token)
		assert.Error(t, err)
	})

	t.Run("Chuỗi rác", func(t *testing.T) {
		_, err := ParseToken(secret, "not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("Chuỗi rỗng", func(t *testing.T) {
		_, err := ParseToken(secret, "")
		assert.Error(t, err)
	})
}
