package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestEmitDataChangedDeliversToHandlers kiểm tra event phát ra được giao
// đến handler đã đăng ký qua OnDataChanged.
func TestEmitDataChangedDeliversToHandlers(t *testing.T) {
	received := make(chan DataChangeEvent, 1)
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "store_users" && e.Operation == OpUpdate {
			received <- e
		}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "store_users",
		Operation:      OpUpdate,
		Document:       map[string]interface{}{"email": "user@example.com"},
	})

	select {
	case e := <-received:
		assert.Equal(t, "store_users", e.CollectionName)
		assert.Equal(t, OpUpdate, e.Operation)
	case <-time.After(2 * time.Second):
		t.Fatal("handler không nhận được event")
	}
}

// TestEmitDataChangedHandlerPanicIsolated kiểm tra một handler panic
// không chặn các handler khác nhận event.
func TestEmitDataChangedHandlerPanicIsolated(t *testing.T) {
	var delivered int32

	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "panic_source_collection" {
			panic("handler hỏng")
		}
	})
	OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		if e.CollectionName == "panic_source_collection" {
			atomic.AddInt32(&delivered, 1)
		}
	})

	EmitDataChanged(context.Background(), DataChangeEvent{
		CollectionName: "panic_source_collection",
		Operation:      OpDelete,
	})

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&delivered) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
