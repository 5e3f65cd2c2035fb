package service

import (
	"testing"

	"khn_commerce/internal/api/auth/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizeEmail kiểm tra chuẩn hóa email trước khi lưu/tìm kiếm.
func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("User@Example.COM"))
	assert.Equal(t, "user@example.com", NormalizeEmail("  user@example.com  "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

// TestClearDefaultAddresses kiểm tra bỏ cờ mặc định trên toàn bộ địa chỉ
// mà không làm thay đổi slice gốc.
func TestClearDefaultAddresses(t *testing.T) {
	original := []models.Address{
		{Name: "Nhà riêng", IsDefault: true},
		{Name: "Văn phòng", IsDefault: false},
		{Name: "Kho", IsDefault: true},
	}

	cleared := ClearDefaultAddresses(original)

	require.Len(t, cleared, 3)
	for i, addr := range cleared {
		assert.False(t, addr.IsDefault, "Địa chỉ thứ %d vẫn còn cờ mặc định", i)
	}

	// Slice gốc không bị sửa
	assert.True(t, original[0].IsDefault)
	assert.True(t, original[2].IsDefault)

	assert.Empty(t, ClearDefaultAddresses(nil))
}
