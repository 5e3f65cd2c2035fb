package handler

import (
	basehdl "khn_commerce/internal/api/base/handler"
	"khn_commerce/internal/api/catalog/dto"
	"khn_commerce/internal/api/catalog/models"
	"khn_commerce/internal/api/catalog/service"

	"github.com/gofiber/fiber/v3"
)

// CategoryHandler xử lý các request liên quan đến danh mục sản phẩm.
// CRUD admin dùng các handler generic của BaseHandler.
type CategoryHandler struct {
	*basehdl.BaseHandler[models.Category, dto.CreateCategoryInput, dto.UpdateCategoryInput]
	CategoryService *service.CategoryService
}

// NewCategoryHandler tạo mới CategoryHandler.
func NewCategoryHandler() (*CategoryHandler, error) {
	categoryService, err := service.NewCategoryService()
	if err != nil {
		return nil, err
	}
	return &CategoryHandler{
		BaseHandler:     basehdl.NewBaseHandler[models.Category, dto.CreateCategoryInput, dto.UpdateCategoryInput](categoryService),
		CategoryService: categoryService,
	}, nil
}

// HandleListCategories trả về tất cả danh mục kèm productCount, sắp theo tên.
func (h *CategoryHandler) HandleListCategories(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		categories, err := h.CategoryService.ListWithProductCount(ctx)
		h.HandleResponse(c, categories, err)
		return nil
	})
}

// HandleGetBySlug trả về một danh mục theo slug trong URI.
func (h *CategoryHandler) HandleGetBySlug(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		category, err := h.CategoryService.FindBySlug(ctx, c.Params("slug"))
		h.HandleResponse(c, category, err)
		return nil
	})
}
