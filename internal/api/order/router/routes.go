// Package router đăng ký các route đơn hàng.
package router

import (
	"khn_commerce/internal/api/middleware"
	"khn_commerce/internal/api/order/handler"
	apirouter "khn_commerce/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký các route của domain order vào group /api/v1.
//
// Authenticated:
//
//	POST /orders
//	GET  /orders/my
//	GET  /orders/:id
//	POST /orders/:id/payment-slip
//
// Admin:
//
//	GET /admin/orders
//	PUT /admin/orders/:id/status
//	PUT /admin/orders/:id/tracking
//	PUT /admin/orders/:id/payment-status
func Register(v1 fiber.Router, r *apirouter.Router) error {
	orderHandler, err := handler.NewOrderHandler()
	if err != nil {
		return err
	}

	authChain := []fiber.Handler{middleware.RequireAuth()}
	adminChain := []fiber.Handler{middleware.RequireAuth(), middleware.RequireAdmin()}

	// Route tĩnh /my phải đăng ký trước /:id để không bị match nhầm param
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "POST", "", authChain, orderHandler.HandleCreateOrder)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/my", authChain, orderHandler.HandleMyOrders)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/:id", authChain, orderHandler.HandleGetOrder)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "POST", "/:id/payment-slip", authChain, orderHandler.HandleUploadPaymentSlip)

	apirouter.RegisterRouteWithMiddleware(v1, "/admin/orders", "GET", "", adminChain, orderHandler.HandleAdminOrders)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/orders", "PUT", "/:id/status", adminChain, orderHandler.HandleUpdateStatus)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/orders", "PUT", "/:id/tracking", adminChain, orderHandler.HandleUpdateTracking)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/orders", "PUT", "/:id/payment-status", adminChain, orderHandler.HandleUpdatePaymentStatus)

	return nil
}
