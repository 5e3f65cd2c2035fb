package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsValidOrderStatus kiểm tra tập trạng thái đơn hàng là closed set.
func TestIsValidOrderStatus(t *testing.T) {
	valid := []string{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
	for _, status := range valid {
		assert.True(t, IsValidOrderStatus(status), "Trạng thái %q phải hợp lệ", status)
	}

	invalid := []string{"", "paid", "PENDING", "done", "shipping"}
	for _, status := range invalid {
		assert.False(t, IsValidOrderStatus(status), "Trạng thái %q phải bị từ chối", status)
	}
}

// TestIsValidPaymentStatus kiểm tra tập trạng thái thanh toán.
func TestIsValidPaymentStatus(t *testing.T) {
	valid := []string{
		PaymentStatusPending,
		PaymentStatusCompleted,
		PaymentStatusFailed,
		PaymentStatusRefunded,
	}
	for _, status := range valid {
		assert.True(t, IsValidPaymentStatus(status), "Trạng thái %q phải hợp lệ", status)
	}

	invalid := []string{"", "paid", "Completed", "cancelled"}
	for _, status := range invalid {
		assert.False(t, IsValidPaymentStatus(status), "Trạng thái %q phải bị từ chối", status)
	}
}

// TestIsValidPaymentMethod kiểm tra tập phương thức thanh toán.
func TestIsValidPaymentMethod(t *testing.T) {
	valid := []string{
		PaymentMethodPromptPay,
		PaymentMethodCreditCard,
		PaymentMethodBankTransfer,
	}
	for _, method := range valid {
		assert.True(t, IsValidPaymentMethod(method), "Phương thức %q phải hợp lệ", method)
	}

	invalid := []string{"", "cash", "creditcard", "PROMPTPAY"}
	for _, method := range invalid {
		assert.False(t, IsValidPaymentMethod(method), "Phương thức %q phải bị từ chối", method)
	}
}
