package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRegistryRegisterGet kiểm tra đăng ký và tra cứu item trong registry.
func TestRegistryRegisterGet(t *testing.T) {
	t.Run("Đăng ký mới rồi lấy lại", func(t *testing.T) {
		r := NewRegistry[string]()

		isNew, err := r.Register("store_orders", "orders-collection")
		assert.NoError(t, err)
		assert.True(t, isNew)

		value, exists := r.Get("store_orders")
		assert.True(t, exists)
		assert.Equal(t, "orders-collection", value)
	})

	t.Run("Đăng ký trùng tên - ghi đè, isNew=false", func(t *testing.T) {
		r := NewRegistry[int]()

		_, _ = r.Register("counter", 1)
		isNew, err := r.Register("counter", 2)
		assert.NoError(t, err)
		assert.False(t, isNew)

		value, exists := r.Get("counter")
		assert.True(t, exists)
		assert.Equal(t, 2, value)
	})

	t.Run("Tên rỗng - trả lỗi", func(t *testing.T) {
		r := NewRegistry[string]()

		_, err := r.Register("", "x")
		assert.Error(t, err)
	})

	t.Run("Không tồn tại - zero value và false", func(t *testing.T) {
		r := NewRegistry[string]()

		value, exists := r.Get("missing")
		assert.False(t, exists)
		assert.Equal(t, "", value)
	})
}

// TestRegistryConcurrentAccess kiểm tra registry an toàn dưới ghi/đọc đồng thời.
func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry[int]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("item-%d", n)
			_, _ = r.Register(name, n)
			_, _ = r.Get(name)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		value, exists := r.Get(fmt.Sprintf("item-%d", i))
		assert.True(t, exists)
		assert.Equal(t, i, value)
	}
}
