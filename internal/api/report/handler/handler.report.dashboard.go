package handler

import (
	basehdl "khn_commerce/internal/api/base/handler"
	ordermodels "khn_commerce/internal/api/order/models"
	"khn_commerce/internal/api/report/service"

	"github.com/gofiber/fiber/v3"
)

// DashboardHandler xử lý request dashboard admin.
// Embed BaseHandler chỉ để dùng chung response envelope, không có CRUD.
type DashboardHandler struct {
	*basehdl.BaseHandler[ordermodels.Order, struct{}, struct{}]
	DashboardService *service.DashboardService
}

// NewDashboardHandler tạo mới DashboardHandler.
func NewDashboardHandler() (*DashboardHandler, error) {
	dashboardService, err := service.NewDashboardService()
	if err != nil {
		return nil, err
	}
	return &DashboardHandler{
		BaseHandler:      basehdl.NewBaseHandler[ordermodels.Order, struct{}, struct{}](nil),
		DashboardService: dashboardService,
	}, nil
}

// HandleDashboard trả về số liệu tổng hợp cho trang dashboard admin.
func (h *DashboardHandler) HandleDashboard(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		data, err := h.DashboardService.GetDashboard(ctx)
		h.HandleResponse(c, data, err)
		return nil
	})
}
