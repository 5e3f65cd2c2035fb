package handler

import (
	basehdl "khn_commerce/internal/api/base/handler"
	basesvc "khn_commerce/internal/api/base/service"
	"khn_commerce/internal/api/catalog/dto"
	"khn_commerce/internal/api/catalog/models"
	"khn_commerce/internal/api/catalog/service"
	"khn_commerce/internal/common"
	"khn_commerce/internal/logger"
	"khn_commerce/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// ProductHandler xử lý các request liên quan đến sản phẩm.
// Create/Update dùng handler riêng vì cần chuyển category hex sang ObjectID
// và chuẩn hóa specifications; các thao tác còn lại dùng BaseHandler.
type ProductHandler struct {
	*basehdl.BaseHandler[models.Product, dto.CreateProductInput, dto.UpdateProductInput]
	ProductService *service.ProductService
}

// NewProductHandler tạo mới ProductHandler.
func NewProductHandler() (*ProductHandler, error) {
	productService, err := service.NewProductService()
	if err != nil {
		return nil, err
	}
	return &ProductHandler{
		BaseHandler:    basehdl.NewBaseHandler[models.Product, dto.CreateProductInput, dto.UpdateProductInput](productService),
		ProductService: productService,
	}, nil
}

// HandleListProducts truy vấn sản phẩm cho storefront.
// Query params: category (slug), featured, search, limit (mặc định 20), offset.
func (h *ProductHandler) HandleListProducts(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		query := &dto.ProductQueryInput{
			Category: c.Query("category"),
			Search:   c.Query("search"),
			Limit:    utility.P2Int64(c.Query("limit", "20")),
			Offset:   utility.P2Int64(c.Query("offset", "0")),
		}
		if featured := c.Query("featured"); featured != "" {
			value := featured == "true" || featured == "1"
			query.Featured = &value
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		result, err := h.ProductService.List(ctx, query)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetProduct trả về một sản phẩm theo ObjectID hex hoặc slug trong URI.
func (h *ProductHandler) HandleGetProduct(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		product, err := h.ProductService.FindByIDOrSlug(ctx, c.Params("idOrSlug"))
		h.HandleResponse(c, product, err)
		return nil
	})
}

// HandleAdminProducts trả về danh sách sản phẩm cho trang admin (không lọc).
// Query params: limit (mặc định 20), offset.
func (h *ProductHandler) HandleAdminProducts(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		query := &dto.ProductQueryInput{
			Limit:  utility.P2Int64(c.Query("limit", "20")),
			Offset: utility.P2Int64(c.Query("offset", "0")),
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		result, err := h.ProductService.List(ctx, query)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleCreateProduct tạo sản phẩm mới (admin).
func (h *ProductHandler) HandleCreateProduct(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		input := new(dto.CreateProductInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		categoryID, err := h.ParseObjectID(input.Category)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		product := models.Product{
			Name:           input.Name,
			NameEn:         input.NameEn,
			Slug:           input.Slug,
			Description:    input.Description,
			DescriptionEn:  input.DescriptionEn,
			Price:          input.Price,
			DiscountPrice:  input.DiscountPrice,
			Category:       categoryID,
			Brand:          input.Brand,
			Images:         input.Images,
			Specifications: specificationsFromInput(input.Specifications),
			Stock:          input.Stock,
			Featured:       input.Featured,
		}

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		created, err := h.ProductService.InsertOne(ctx, product)
		if err == nil {
			logger.LogCRUD("create", "product", created.ID.Hex(), c, map[string]interface{}{"slug": created.Slug})
		}
		h.HandleResponse(c, created, err)
		return nil
	})
}

// HandleUpdateProduct cập nhật sản phẩm (admin). Chỉ field có trong body được cập nhật.
func (h *ProductHandler) HandleUpdateProduct(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(h.GetIDFromContext(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input := new(dto.UpdateProductInput)
		if err := h.ParseRequestBody(c, input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		set := map[string]interface{}{}
		if input.Name != "" {
			set["name"] = input.Name
		}
		if input.NameEn != "" {
			set["nameEn"] = input.NameEn
		}
		if input.Slug != "" {
			set["slug"] = input.Slug
		}
		if input.Description != "" {
			set["description"] = input.Description
		}
		if input.DescriptionEn != "" {
			set["descriptionEn"] = input.DescriptionEn
		}
		if input.Price != nil {
			set["price"] = *input.Price
		}
		if input.DiscountPrice != nil {
			set["discountPrice"] = *input.DiscountPrice
		}
		if input.Category != "" {
			categoryID, err := h.ParseObjectID(input.Category)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			set["category"] = categoryID
		}
		if input.Brand != "" {
			set["brand"] = input.Brand
		}
		if input.Images != nil {
			set["images"] = input.Images
		}
		if input.Specifications != nil {
			set["specifications"] = specificationsFromInput(*input.Specifications)
		}
		if input.Stock != nil {
			set["stock"] = *input.Stock
		}
		if input.Featured != nil {
			set["featured"] = *input.Featured
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

		ctx, cancel := basehdl.RequestContext()
		defer cancel()

		updated, err := h.ProductService.UpdateById(ctx, id, &basesvc.UpdateData{Set: set})
		if err == nil {
			logger.LogCRUD("update", "product", updated.ID.Hex(), c, nil)
		}
		h.HandleResponse(c, updated, err)
		return nil
	})
}

// specificationsFromInput chuyển input sang list chuẩn hóa (key trùng thì giá trị sau thắng).
func specificationsFromInput(inputs []dto.SpecificationInput) models.SpecificationList {
	specs := make([]models.Specification, 0, len(inputs))
	for _, input := range inputs {
		specs = append(specs, models.Specification{Key: input.Key, Value: input.Value})
	}
	return models.NormalizeSpecifications(specs)
}
