// Package router đăng ký route upload file.
package router

import (
	"khn_commerce/internal/api/middleware"
	"khn_commerce/internal/api/upload/handler"
	apirouter "khn_commerce/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký route của domain upload vào group /api/v1.
//
//	POST /upload (auth)
func Register(v1 fiber.Router, r *apirouter.Router) error {
	uploadHandler, err := handler.NewUploadHandler()
	if err != nil {
		return err
	}

	authChain := []fiber.Handler{middleware.RequireAuth()}

	apirouter.RegisterRouteWithMiddleware(v1, "/upload", "POST", "", authChain, uploadHandler.HandleUpload)

	return nil
}
