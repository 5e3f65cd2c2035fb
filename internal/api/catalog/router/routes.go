// Package router đăng ký các route catalog: danh mục và sản phẩm.
package router

import (
	"khn_commerce/internal/api/catalog/handler"
	"khn_commerce/internal/api/middleware"
	apirouter "khn_commerce/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký các route của domain catalog vào group /api/v1.
//
// Public:
//
//	GET /categories
//	GET /categories/:slug
//	GET /products
//	GET /products/:idOrSlug
//
// Admin:
//
//	CRUD /admin/categories
//	GET  /admin/products
//	POST /admin/products
//	PUT  /admin/products/:id
//	DELETE /admin/products/:id
func Register(v1 fiber.Router, r *apirouter.Router) error {
	categoryHandler, err := handler.NewCategoryHandler()
	if err != nil {
		return err
	}
	productHandler, err := handler.NewProductHandler()
	if err != nil {
		return err
	}

	adminChain := []fiber.Handler{middleware.RequireAuth(), middleware.RequireAdmin()}

	// Storefront (public)
	apirouter.RegisterRouteWithMiddleware(v1, "/categories", "GET", "", nil, categoryHandler.HandleListCategories)
	apirouter.RegisterRouteWithMiddleware(v1, "/categories", "GET", "/:slug", nil, categoryHandler.HandleGetBySlug)
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "GET", "", nil, productHandler.HandleListProducts)
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "GET", "/:idOrSlug", nil, productHandler.HandleGetProduct)

	// Admin - danh mục dùng CRUD generic, xóa bị chặn khi còn sản phẩm tham chiếu
	r.RegisterCRUDRoutes(v1, "/admin/categories", categoryHandler, apirouter.ReadWriteConfig, adminChain)

	// Admin - sản phẩm có create/update riêng (category hex, specifications)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/products", "GET", "", adminChain, productHandler.HandleAdminProducts)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/products", "POST", "", adminChain, productHandler.HandleCreateProduct)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/products", "PUT", "/:id", adminChain, productHandler.HandleUpdateProduct)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/products", "DELETE", "/:id", adminChain, productHandler.HandleDeleteById)

	return nil
}
