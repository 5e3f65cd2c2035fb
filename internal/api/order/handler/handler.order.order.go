package handler

import (
	authmodels "khn_commerce/internal/api/auth/models"
	basehdl "khn_commerce/internal/api/base/handler"
	"khn_commerce/internal/api/order/dto"
	"khn_commerce/internal/api/order/models"
	"khn_commerce/internal/api/order/service"
	"khn_commerce/internal/common"
	"khn_commerce/internal/logger"
	"khn_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// OrderHandler xử lý các request liên quan đến đơn hàng.
type OrderHandler struct {
	*basehdl.BaseHandler[models.Order, dto.CreateOrderInput, dto.UpdateOrderStatusInput]
	OrderService *service.OrderService
}

// NewOrderHandler tạo mới OrderHandler.
func NewOrderHandler() (*OrderHandler, error) {
	orderService, err := service.NewOrderService()
	if err != nil {
		return nil, err
	}
	return &OrderHandler{
		BaseHandler:  basehdl.NewBaseHandler[models.Order, dto.CreateOrderInput, dto.UpdateOrderStatusInput](orderService),
		OrderService: orderService,
	}, nil
}

// currentUser lấy user đã xác thực từ Locals.
func currentUser(c fiber.Ctx) (*authmodels.User, error) {
	user, ok := c.Locals("user").(*authmodels.User)
	if !ok || user == nil {
		return nil, common.ErrTokenMissing
	}
	return user, nil
}

// HandleCreateOrder xử lý đặt hàng của user hiện tại.
func (h *OrderHandler) HandleCreateOrder(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, err := currentUser(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(dto.CreateOrderInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		order, err := h.OrderService.CreateOrder(ctx, user, input)
		if err == nil {
			logger.LogOrder("create", order.ID.Hex(), c, map[string]interface{}{
				"orderNumber": order.OrderNumber,
				"total":       order.Total,
			})
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleMyOrders trả về các đơn hàng của user hiện tại, mới nhất trước.
func (h *OrderHandler) HandleMyOrders(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		orders, err := h.OrderService.MyOrders(ctx, userID)
		h.HandleResponse(c, orders, err)
		return nil
	})
}

// HandleGetOrder trả về một đơn hàng nếu caller là chủ đơn hoặc admin.
func (h *OrderHandler) HandleGetOrder(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		orderID, err := h.ParseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		order, err := h.OrderService.GetOrderForUser(ctx, orderID, userID, h.IsAdminFromContext(c))
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleUploadPaymentSlip đính kèm chứng từ thanh toán vào đơn của chủ đơn (hoặc admin).
func (h *OrderHandler) HandleUploadPaymentSlip(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.RequireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		orderID, err := h.ParseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(dto.UploadPaymentSlipInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		order, err := h.OrderService.AttachPaymentSlip(ctx, orderID, userID, h.IsAdminFromContext(c), input.SlipURL)
		if err == nil {
			logger.LogOrder("upload_payment_slip", order.ID.Hex(), c, nil)
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleAdminOrders trả về danh sách đơn hàng cho admin.
// Query params: status, limit (mặc định 20), offset.
func (h *OrderHandler) HandleAdminOrders(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		result, err := h.OrderService.AdminOrders(ctx,
			c.Query("status"),
			utility.P2Int64(c.Query("limit", "20")),
			utility.P2Int64(c.Query("offset", "0")),
		)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpdateStatus chuyển trạng thái đơn hàng (admin).
func (h *OrderHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		orderID, err := h.ParseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(dto.UpdateOrderStatusInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		order, err := h.OrderService.UpdateStatus(ctx, orderID, input.Status)
		if err == nil {
			logger.LogOrder("update_status", order.ID.Hex(), c, map[string]interface{}{"status": input.Status})
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleUpdateTracking cập nhật mã vận đơn (admin).
func (h *OrderHandler) HandleUpdateTracking(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		orderID, err := h.ParseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(dto.UpdateTrackingInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		order, err := h.OrderService.UpdateTrackingNumber(ctx, orderID, input.TrackingNumber)
		if err == nil {
			logger.LogOrder("update_tracking", order.ID.Hex(), c, map[string]interface{}{"trackingNumber": input.TrackingNumber})
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleUpdatePaymentStatus chuyển trạng thái thanh toán (admin).
func (h *OrderHandler) HandleUpdatePaymentStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		orderID, err := h.ParseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(dto.UpdatePaymentStatusInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		order, err := h.OrderService.UpdatePaymentStatus(ctx, orderID, input.Status)
		if err == nil {
			logger.LogOrder("update_payment_status", order.ID.Hex(), c, map[string]interface{}{"paymentStatus": input.Status})
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}
