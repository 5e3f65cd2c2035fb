package basehdl

import (
	"context"
	"time"

	basesvc "khn_commerce/internal/api/base/service"
	"khn_commerce/internal/common"

	"github.com/gofiber/fiber/v3"
)

const defaultTimeout = 10 * time.Second

// RequestContext tạo context có timeout cho mỗi request.
func RequestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultTimeout)
}

// HandleInsertOne xử lý request tạo mới một document.
// Flow: parse body → validate → transform DTO → insert → trả về bản ghi đã tạo.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleInsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(CreateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformCreateInputToModel(input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := RequestContext()
		defer cancel()

		created, err := h.Service.InsertOne(ctx, *model)
		h.HandleResponse(c, created, err)
		return nil
	})
}

// HandleFindOneById xử lý request lấy một document theo ID trong URI.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := RequestContext()
		defer cancel()

		result, err := h.Service.FindOneById(ctx, id)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleFindWithPagination xử lý request lấy danh sách có phân trang.
// Query params: page, limit, filter (JSON).
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleFindWithPagination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		page, limit := h.ParsePagination(c)

		ctx, cancel := RequestContext()
		defer cancel()

		result, err := h.Service.FindWithPagination(ctx, h.BuildBsonFilter(filter), page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpdateById xử lý request cập nhật một document theo ID.
// Chỉ các field có trong body được cập nhật (partial update).
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleUpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(UpdateInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		set, err := h.TransformUpdateInputToSet(input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if len(set) == 0 {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Không có dữ liệu nào để cập nhật",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		ctx, cancel := RequestContext()
		defer cancel()

		updated, err := h.Service.UpdateById(ctx, id, &basesvc.UpdateData{Set: set})
		h.HandleResponse(c, updated, err)
		return nil
	})
}

// HandleDeleteById xử lý request xóa một document theo ID.
// Nếu còn bản ghi khác tham chiếu tới document này, service trả về lỗi Conflict.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleDeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := RequestContext()
		defer cancel()

		if err := h.Service.DeleteById(ctx, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
		return nil
	})
}

// HandleCountDocuments xử lý request đếm documents theo filter.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleCountDocuments(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx, cancel := RequestContext()
		defer cancel()

		count, err := h.Service.CountDocuments(ctx, h.BuildBsonFilter(filter))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, fiber.Map{"count": count}, nil)
		return nil
	})
}
