package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái đơn hàng (closed set).
// Chuyển trạng thái chỉ dành cho admin, cho phép chọn trạng thái đích bất kỳ
// trong tập này để admin có thể can thiệp linh hoạt.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Trạng thái thanh toán (closed set).
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Phương thức thanh toán (closed set).
const (
	PaymentMethodPromptPay    = "promptpay"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodBankTransfer = "bank_transfer"
)

// IsValidOrderStatus kiểm tra status có nằm trong tập trạng thái đơn hàng không.
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsValidPaymentStatus kiểm tra status có nằm trong tập trạng thái thanh toán không.
func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// IsValidPaymentMethod kiểm tra phương thức thanh toán có hợp lệ không.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodPromptPay, PaymentMethodCreditCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// OrderItem là một dòng hàng trong đơn, snapshot tại thời điểm đặt hàng.
// Tên, đơn giá và ảnh được đóng băng vĩnh viễn, không bị ảnh hưởng bởi
// các lần sửa sản phẩm sau này.
type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Name     string             `json:"name" bson:"name"`
	Price    float64            `json:"price" bson:"price"` // Đơn giá hiệu lực tại thời điểm đặt
	Quantity int64              `json:"quantity" bson:"quantity"`
	Image    string             `json:"image" bson:"image"` // Ảnh đại diện tại thời điểm đặt
}

// ShippingAddress là snapshot địa chỉ giao hàng trong đơn.
type ShippingAddress struct {
	Name       string `json:"name" bson:"name"`
	Phone      string `json:"phone" bson:"phone"`
	Address    string `json:"address" bson:"address"`
	District   string `json:"district" bson:"district"`
	Province   string `json:"province" bson:"province"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
}

// Order là model đơn hàng. Được tạo một lần tại checkout; sau đó chỉ
// admin chuyển trạng thái hoặc user upload chứng từ thanh toán.
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User            primitive.ObjectID `json:"user" bson:"user"`
	OrderNumber     string             `json:"orderNumber" bson:"orderNumber" index:"unique"`
	Items           []OrderItem        `json:"items" bson:"items"`
	Subtotal        float64            `json:"subtotal" bson:"subtotal"`
	ShippingFee     float64            `json:"shippingFee" bson:"shippingFee"`
	Total           float64            `json:"total" bson:"total"` // = subtotal + shippingFee
	Status          string             `json:"status" bson:"status" default:"pending"`
	PaymentMethod   string             `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus   string             `json:"paymentStatus" bson:"paymentStatus" default:"pending"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	TrackingNumber  string             `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`
	PaymentSlip     string             `json:"paymentSlip,omitempty" bson:"paymentSlip,omitempty"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt       int64              `json:"updatedAt" bson:"updatedAt"`
}
