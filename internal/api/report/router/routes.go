// Package router đăng ký route dashboard admin.
package router

import (
	"khn_commerce/internal/api/middleware"
	"khn_commerce/internal/api/report/handler"
	apirouter "khn_commerce/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký route của domain report vào group /api/v1.
//
//	GET /admin/dashboard (admin)
func Register(v1 fiber.Router, r *apirouter.Router) error {
	dashboardHandler, err := handler.NewDashboardHandler()
	if err != nil {
		return err
	}

	adminChain := []fiber.Handler{middleware.RequireAuth(), middleware.RequireAdmin()}

	apirouter.RegisterRouteWithMiddleware(v1, "/admin/dashboard", "GET", "", adminChain, dashboardHandler.HandleDashboard)

	return nil
}
