package middleware

import (
	"strings"
	"time"

	"khn_commerce/internal/api/auth/models"
	authsvc "khn_commerce/internal/api/auth/service"
	basehdl "khn_commerce/internal/api/base/handler"
	"khn_commerce/internal/common"
	"khn_commerce/internal/global"
	"khn_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// userCache cache thông tin user theo token để giảm truy vấn DB.
// TTL 5 phút, dọn dẹp mỗi 10 phút.
var userCache = utility.NewCache(5*time.Minute, 10*time.Minute)

// RequireAuth trả về middleware xác thực JWT.
// Token hợp lệ: gắn user_id, user_role và user vào Locals rồi cho request đi tiếp.
// Token thiếu/sai/hết hạn: trả về 401.
//
// LƯU Ý: phải đăng ký qua RegisterRouteWithMiddleware (group.Use), không truyền
// trực tiếp vào route (xem comment trong internal/api/router/routes.go).
func RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		userID, err := utility.ParseToken(global.MongoDB_ServerConfig.JwtSecret, tokenString)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		user, err := lookupUser(tokenString, userID)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		c.Locals("user_id", user.ID.Hex())
		c.Locals("user_role", user.Role)
		c.Locals("user", user)

		return c.Next()
	}
}

// RequireAdmin trả về middleware kiểm tra quyền admin.
// Phải chạy sau RequireAuth (đọc user_role từ Locals).
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok || role != models.RoleAdmin {
			HandleErrorResponse(c, common.ErrForbidden)
			return nil
		}
		return c.Next()
	}
}

// lookupUser lấy user từ cache theo token, miss thì truy vấn DB rồi cache lại.
func lookupUser(tokenString string, userID string) (*models.User, error) {
	if cached, found := userCache.Get(tokenString); found {
		if user, ok := cached.(*models.User); ok {
			return user, nil
		}
	}

	objID := utility.String2ObjectID(userID)
	if objID.IsZero() {
		return nil, common.ErrTokenInvalid
	}

	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, err
	}

	ctx, cancel := basehdl.RequestContext()
	defer cancel()

	user, err := userService.FindOneById(ctx, objID)
	if err != nil {
		return nil, common.ErrTokenInvalid
	}

	userCache.Set(tokenString, &user)
	return &user, nil
}
