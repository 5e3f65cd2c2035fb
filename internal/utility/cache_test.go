package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestCacheSetGetFlush kiểm tra các thao tác cơ bản của cache.
func TestCacheSetGetFlush(t *testing.T) {
	cache := NewCache(time.Minute, time.Hour)

	t.Run("Set rồi Get", func(t *testing.T) {
		cache.Set("k1", "v1")
		value, found := cache.Get("k1")
		assert.True(t, found)
		assert.Equal(t, "v1", value)
	})

	t.Run("Get key không tồn tại", func(t *testing.T) {
		_, found := cache.Get("missing")
		assert.False(t, found)
	})

	t.Run("Flush xóa toàn bộ entries", func(t *testing.T) {
		cache.Set("k2", "v2")
		cache.Flush()

		_, found1 := cache.Get("k1")
		_, found2 := cache.Get("k2")
		assert.False(t, found1)
		assert.False(t, found2)

		// Cache vẫn dùng được sau khi flush
		cache.Set("k3", "v3")
		value, found := cache.Get("k3")
		assert.True(t, found)
		assert.Equal(t, "v3", value)
	})
}
