package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address là địa chỉ giao hàng của người dùng.
// Địa chỉ được nhúng trong document user, thao tác theo index trong mảng.
type Address struct {
	Name       string `json:"name" bson:"name"`             // Tên người nhận
	Phone      string `json:"phone" bson:"phone"`           // Số điện thoại người nhận
	Address    string `json:"address" bson:"address"`       // Địa chỉ chi tiết
	District   string `json:"district" bson:"district"`     // Quận/huyện
	Province   string `json:"province" bson:"province"`     // Tỉnh/thành phố
	PostalCode string `json:"postalCode" bson:"postalCode"` // Mã bưu điện
	IsDefault  bool   `json:"isDefault" bson:"isDefault"`   // Địa chỉ mặc định (chỉ một địa chỉ được default)
}

// User là model người dùng của cửa hàng.
// Password không bao giờ được serialize ra JSON response.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email" index:"unique"` // Email đăng nhập, lưu lowercase
	Password  string             `json:"-" bson:"password"`                 // Mật khẩu đã hash bcrypt
	Name      string             `json:"name" bson:"name"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Role      string             `json:"role" bson:"role" default:"customer"` // customer | admin
	Addresses []Address          `json:"addresses" bson:"addresses"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// Role values
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// IsAdmin kiểm tra user có phải admin không.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
