package dto

// RegisterInput là dữ liệu đầu vào cho đăng ký tài khoản.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// LoginInput là dữ liệu đầu vào cho đăng nhập.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput là dữ liệu đầu vào cho cập nhật hồ sơ.
// Chỉ field có giá trị mới được cập nhật.
type UpdateProfileInput struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// AddressInput là dữ liệu đầu vào cho thêm/sửa địa chỉ giao hàng.
type AddressInput struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	District   string `json:"district" validate:"required"`
	Province   string `json:"province" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	IsDefault  bool   `json:"isDefault"`
}
