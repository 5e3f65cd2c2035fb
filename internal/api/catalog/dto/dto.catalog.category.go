package dto

// CreateCategoryInput là dữ liệu đầu vào cho tạo danh mục.
type CreateCategoryInput struct {
	Name          string `json:"name" validate:"required,no_xss"`
	NameEn        string `json:"nameEn" validate:"required,no_xss"`
	Slug          string `json:"slug" validate:"required,slug"`
	Description   string `json:"description,omitempty"`
	DescriptionEn string `json:"descriptionEn,omitempty"`
	Image         string `json:"image,omitempty"`
}

// UpdateCategoryInput là dữ liệu đầu vào cho cập nhật danh mục.
// Chỉ field có giá trị mới được cập nhật.
type UpdateCategoryInput struct {
	Name          string `json:"name,omitempty" validate:"omitempty,no_xss"`
	NameEn        string `json:"nameEn,omitempty" validate:"omitempty,no_xss"`
	Slug          string `json:"slug,omitempty" validate:"omitempty,slug"`
	Description   string `json:"description,omitempty"`
	DescriptionEn string `json:"descriptionEn,omitempty"`
	Image         string `json:"image,omitempty"`
}
