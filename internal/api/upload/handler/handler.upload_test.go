package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBuildFileName kiểm tra tên file upload: <unixMilli>-<random><ext>, đuôi lowercase.
func TestBuildFileName(t *testing.T) {
	assert.Equal(t, "1756500000000-42.jpg", BuildFileName(1756500000000, 42, ".jpg"))
	assert.Equal(t, "1756500000000-42.png", BuildFileName(1756500000000, 42, ".PNG"))
}

// TestAllowedExtensions kiểm tra danh sách đuôi file ảnh được phép.
func TestAllowedExtensions(t *testing.T) {
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp"} {
		assert.True(t, allowedExtensions[ext], "Đuôi %s phải được phép", ext)
	}
	for _, ext := range []string{".exe", ".pdf", ".svg", ""} {
		assert.False(t, allowedExtensions[ext], "Đuôi %q phải bị từ chối", ext)
	}
}
