package utility

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHashAndComparePassword kiểm tra hash bcrypt và so khớp mật khẩu.
func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// Hash không được chứa mật khẩu gốc
	assert.False(t, strings.Contains(hash, "secret123"))

	assert.True(t, ComparePassword(hash, "secret123"))
	assert.False(t, ComparePassword(hash, "secret124"))
	assert.False(t, ComparePassword(hash, ""))
}

// TestHashPasswordUniqueSalt kiểm tra hai lần hash cùng mật khẩu cho kết quả khác nhau.
func TestHashPasswordUniqueSalt(t *testing.T) {
	h1, err := HashPassword("secret123")
	require.NoError(t, err)
	h2, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
