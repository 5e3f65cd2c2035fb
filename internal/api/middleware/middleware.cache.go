package middleware

import (
	"context"

	"khn_commerce/internal/api/events"
	"khn_commerce/internal/global"
)

// RegisterUserCacheInvalidation đăng ký handler xóa userCache khi collection
// user thay đổi (đổi role, đổi mật khẩu, xóa user). Cache key theo token nên
// không map được về một user cụ thể — flush toàn bộ; cache sẽ ấm lại ở
// request kế tiếp.
//
// Gọi một lần lúc khởi động, sau khi registry collection đã sẵn sàng.
func RegisterUserCacheInvalidation() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if e.CollectionName != global.MongoDB_ColNames.Users {
			return
		}
		userCache.Flush()
	})
}
