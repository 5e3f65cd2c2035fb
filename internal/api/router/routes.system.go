package router

import (
	basehdl "khn_commerce/internal/api/base/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterSystem đăng ký các route hệ thống (public).
//
//	GET /system/health
func RegisterSystem(v1 fiber.Router, r *Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return err
	}

	RegisterRouteWithMiddleware(v1, "/system/health", "GET", "", nil, systemHandler.HandleHealth)

	return nil
}
