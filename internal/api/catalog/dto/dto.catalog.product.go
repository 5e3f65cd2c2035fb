package dto

// SpecificationInput là một cặp key/value thông số kỹ thuật từ client.
type SpecificationInput struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

// CreateProductInput là dữ liệu đầu vào cho tạo sản phẩm.
type CreateProductInput struct {
	Name           string               `json:"name" validate:"required,no_xss"`
	NameEn         string               `json:"nameEn" validate:"required,no_xss"`
	Slug           string               `json:"slug" validate:"required,slug"`
	Description    string               `json:"description" validate:"required"`
	DescriptionEn  string               `json:"descriptionEn" validate:"required"`
	Price          float64              `json:"price" validate:"gte=0"`
	DiscountPrice  float64              `json:"discountPrice,omitempty" validate:"omitempty,gte=0"`
	Category       string               `json:"category" validate:"required"` // ObjectID hex của danh mục
	Brand          string               `json:"brand" validate:"required"`
	Images         []string             `json:"images"`
	Specifications []SpecificationInput `json:"specifications,omitempty" validate:"omitempty,dive"`
	Stock          int64                `json:"stock" validate:"gte=0"`
	Featured       bool                 `json:"featured"`
}

// UpdateProductInput là dữ liệu đầu vào cho cập nhật sản phẩm.
// Dùng con trỏ cho các field số/bool để phân biệt "không gửi" và "gửi giá trị zero".
type UpdateProductInput struct {
	Name           string                `json:"name,omitempty" validate:"omitempty,no_xss"`
	NameEn         string                `json:"nameEn,omitempty" validate:"omitempty,no_xss"`
	Slug           string                `json:"slug,omitempty" validate:"omitempty,slug"`
	Description    string                `json:"description,omitempty"`
	DescriptionEn  string                `json:"descriptionEn,omitempty"`
	Price          *float64              `json:"price,omitempty" validate:"omitempty,gte=0"`
	DiscountPrice  *float64              `json:"discountPrice,omitempty" validate:"omitempty,gte=0"`
	Category       string                `json:"category,omitempty"`
	Brand          string                `json:"brand,omitempty"`
	Images         []string              `json:"images,omitempty"`
	Specifications *[]SpecificationInput `json:"specifications,omitempty" validate:"omitempty,dive"`
	Stock          *int64                `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Featured       *bool                 `json:"featured,omitempty"`
}

// ProductQueryInput là tham số truy vấn danh sách sản phẩm của storefront.
type ProductQueryInput struct {
	Category string // Slug của danh mục
	Featured *bool
	Search   string
	Limit    int64
	Offset   int64
}
