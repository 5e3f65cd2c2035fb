// Package router đăng ký các route xác thực và tài khoản người dùng.
package router

import (
	"khn_commerce/internal/api/auth/handler"
	"khn_commerce/internal/api/middleware"
	apirouter "khn_commerce/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký các route của domain auth vào group /api/v1.
//
//	POST   /auth/register          (public)
//	POST   /auth/login             (public)
//	GET    /auth/me                (auth)
//	PUT    /auth/profile           (auth)
//	POST   /auth/addresses         (auth)
//	PUT    /auth/addresses/:index  (auth)
//	DELETE /auth/addresses/:index  (auth)
func Register(v1 fiber.Router, r *apirouter.Router) error {
	userHandler, err := handler.NewUserHandler()
	if err != nil {
		return err
	}

	authMiddleware := middleware.RequireAuth()

	// Public routes
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/register", nil, userHandler.HandleRegister)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/login", nil, userHandler.HandleLogin)

	// Authenticated routes. Middleware được mount theo prefix của group nên prefix
	// phải là path con cụ thể, không dùng chung "/auth" với các route public.
	apirouter.RegisterRouteWithMiddleware(v1, "/auth/me", "GET", "", []fiber.Handler{authMiddleware}, userHandler.HandleMe)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth/profile", "PUT", "", []fiber.Handler{authMiddleware}, userHandler.HandleUpdateProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth/addresses", "POST", "", []fiber.Handler{authMiddleware}, userHandler.HandleAddAddress)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth/addresses", "PUT", "/:index", []fiber.Handler{authMiddleware}, userHandler.HandleUpdateAddress)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth/addresses", "DELETE", "/:index", []fiber.Handler{authMiddleware}, userHandler.HandleDeleteAddress)

	return nil
}
