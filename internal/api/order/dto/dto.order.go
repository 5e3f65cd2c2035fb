package dto

// OrderItemInput là một dòng hàng trong giỏ khi checkout.
type OrderItemInput struct {
	Product  string `json:"product" validate:"required"` // ObjectID hex của sản phẩm
	Quantity int64  `json:"quantity" validate:"required,min=1"`
}

// ShippingAddressInput là địa chỉ giao hàng khi checkout.
type ShippingAddressInput struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	District   string `json:"district" validate:"required"`
	Province   string `json:"province" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
}

// CreateOrderInput là dữ liệu đầu vào cho đặt hàng.
type CreateOrderInput struct {
	Items           []OrderItemInput     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddressInput `json:"shippingAddress" validate:"required"`
	PaymentMethod   string               `json:"paymentMethod" validate:"required,oneof=promptpay credit_card bank_transfer"`
	Notes           string               `json:"notes,omitempty"`
}

// UpdateOrderStatusInput là dữ liệu đầu vào cho chuyển trạng thái đơn (admin).
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateTrackingInput là dữ liệu đầu vào cho cập nhật mã vận đơn (admin).
type UpdateTrackingInput struct {
	TrackingNumber string `json:"trackingNumber" validate:"required"`
}

// UpdatePaymentStatusInput là dữ liệu đầu vào cho chuyển trạng thái thanh toán (admin).
type UpdatePaymentStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// UploadPaymentSlipInput là dữ liệu đầu vào cho đính kèm chứng từ thanh toán.
type UploadPaymentSlipInput struct {
	SlipURL string `json:"slipUrl" validate:"required"`
}
