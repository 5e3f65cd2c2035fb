package router

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================================
// QUAN TRỌNG: BUG FIBER V3 - CÁCH ĐĂNG KÝ MIDDLEWARE
// ============================================================================
//
// Fiber v3 có bug với cách đăng ký middleware trực tiếp trong route.
// Middleware sẽ KHÔNG được gọi nếu dùng cách trực tiếp!
//
// CÁCH SAI (không hoạt động):
//    router.Get("/path", middleware.RequireAuth(), handler)
//    → Middleware sẽ không được gọi, request sẽ bỏ qua middleware!
//
// CÁCH ĐÚNG (phải dùng):
//    authMiddleware := middleware.RequireAuth()
//    RegisterRouteWithMiddleware(router, "/prefix", "GET", "/path", []fiber.Handler{authMiddleware}, handler)
//    → Middleware sẽ được gọi đúng cách thông qua .Use() method
//
// LỊCH SỬ: route có token hợp lệ vẫn trả về 401 khi truyền middleware trực tiếp.
// Đã thử nhiều cách, chỉ có group.Use() hoạt động ổn định.
// ============================================================================

// CRUDHandler định nghĩa interface cho các handler CRUD.
// BaseHandler của base/handler thỏa mãn interface này.
type CRUDHandler interface {
	HandleInsertOne(c fiber.Ctx) error
	HandleFindOneById(c fiber.Ctx) error
	HandleFindWithPagination(c fiber.Ctx) error
	HandleUpdateById(c fiber.Ctx) error
	HandleDeleteById(c fiber.Ctx) error
	HandleCountDocuments(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// CRUDConfig cấu hình các operation được phép cho mỗi collection
type CRUDConfig struct {
	Create   bool // POST /
	FindById bool // GET /:id
	Paginate bool // GET /
	Update   bool // PUT /:id
	Delete   bool // DELETE /:id
	Count    bool // GET /count
}

var (
	// ReadOnlyConfig chỉ cho phép đọc.
	ReadOnlyConfig = CRUDConfig{
		Create: false,
		FindById: true, Paginate: true,
		Update: false, Delete: false,
		Count: true,
	}

	// ReadWriteConfig cho phép đầy đủ CRUD.
	ReadWriteConfig = CRUDConfig{
		Create:   true,
		FindById: true, Paginate: true,
		Update: true, Delete: true,
		Count: true,
	}
)

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route với middleware sử dụng .Use() method.
// Đây là cách duy nhất hoạt động đúng trong Fiber v3 (xem comment đầu file).
//
// Ví dụ sử dụng:
//
//	authMiddleware := middleware.RequireAuth()
//	RegisterRouteWithMiddleware(router, "/orders", "GET", "/my", []fiber.Handler{authMiddleware}, handler)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	// Tạo group với prefix, middleware chỉ áp dụng cho routes trong group này
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	// Đăng ký route với path tương đối (không có prefix vì đã có trong group)
	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterCRUDRoutes đăng ký các route CRUD chuẩn REST cho một collection.
// Middleware truyền vào được áp dụng cho tất cả các route của collection.
//
//	POST   <prefix>        → HandleInsertOne
//	GET    <prefix>        → HandleFindWithPagination
//	GET    <prefix>/count  → HandleCountDocuments
//	GET    <prefix>/:id    → HandleFindOneById
//	PUT    <prefix>/:id    → HandleUpdateById
//	DELETE <prefix>/:id    → HandleDeleteById
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig, middlewares []fiber.Handler) {
	if config.Create {
		RegisterRouteWithMiddleware(router, prefix, "POST", "", middlewares, h.HandleInsertOne)
	}
	if config.Paginate {
		RegisterRouteWithMiddleware(router, prefix, "GET", "", middlewares, h.HandleFindWithPagination)
	}
	if config.Count {
		// Đăng ký /count trước /:id để không bị match nhầm param
		RegisterRouteWithMiddleware(router, prefix, "GET", "/count", middlewares, h.HandleCountDocuments)
	}
	if config.FindById {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/:id", middlewares, h.HandleFindOneById)
	}
	if config.Update {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/:id", middlewares, h.HandleUpdateById)
	}
	if config.Delete {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/:id", middlewares, h.HandleDeleteById)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng.
// Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
