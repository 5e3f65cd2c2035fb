package middleware

import (
	"context"
	"testing"
	"time"

	"khn_commerce/internal/api/auth/models"
	"khn_commerce/internal/api/events"
	"khn_commerce/internal/global"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUserCacheInvalidationOnUserChange kiểm tra userCache bị flush khi
// collection user phát event thay đổi: user đổi role/mật khẩu không còn
// được phục vụ từ bản cache cũ.
func TestUserCacheInvalidationOnUserChange(t *testing.T) {
	global.MongoDB_ColNames.Users = "store_users"
	RegisterUserCacheInvalidation()

	user := &models.User{ID: primitive.NewObjectID(), Email: "user@example.com", Role: models.RoleCustomer}
	userCache.Set("token-abc", user)

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: global.MongoDB_ColNames.Users,
		Operation:      events.OpUpdate,
		Document:       user,
	})

	assert.Eventually(t, func() bool {
		_, found := userCache.Get("token-abc")
		return !found
	}, 2*time.Second, 10*time.Millisecond, "cache user phải bị xóa sau khi user thay đổi")
}

// TestUserCacheKeptOnOtherCollectionChange kiểm tra thay đổi ở collection
// khác không đụng tới userCache.
func TestUserCacheKeptOnOtherCollectionChange(t *testing.T) {
	global.MongoDB_ColNames.Users = "store_users"
	RegisterUserCacheInvalidation()

	user := &models.User{ID: primitive.NewObjectID(), Email: "keep@example.com", Role: models.RoleCustomer}
	userCache.Set("token-keep", user)

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "store_products",
		Operation:      events.OpUpdate,
	})

	// Handler chạy async; chờ một nhịp rồi xác nhận entry vẫn còn
	time.Sleep(100 * time.Millisecond)
	cached, found := userCache.Get("token-keep")
	assert.True(t, found)
	assert.Equal(t, user, cached)
}
