package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestComputeShippingFee kiểm tra quy tắc phí vận chuyển:
// miễn phí từ ngưỡng 1000, dưới ngưỡng tính phí chuẩn 50.
func TestComputeShippingFee(t *testing.T) {
	t.Run("Dưới ngưỡng - tính phí chuẩn", func(t *testing.T) {
		assert.Equal(t, 50.0, ComputeShippingFee(0))
		assert.Equal(t, 50.0, ComputeShippingFee(500))
		assert.Equal(t, 50.0, ComputeShippingFee(999.99))
	})

	t.Run("Đạt ngưỡng - miễn phí", func(t *testing.T) {
		assert.Equal(t, 0.0, ComputeShippingFee(1000))
		assert.Equal(t, 0.0, ComputeShippingFee(1000.01))
		assert.Equal(t, 0.0, ComputeShippingFee(25000))
	})
}

// TestOrderNumberPrefix kiểm tra prefix kỳ tháng: KHN + năm + tháng 2 chữ số.
func TestOrderNumberPrefix(t *testing.T) {
	cases := []struct {
		year     int
		month    time.Month
		expected string
	}{
		{2026, time.January, "KHN202601"},
		{2026, time.August, "KHN202608"},
		{2025, time.December, "KHN202512"},
	}

	for _, c := range cases {
		now := time.Date(c.year, c.month, 15, 10, 30, 0, 0, time.UTC)
		assert.Equal(t, c.expected, OrderNumberPrefix(now), "Prefix sai cho %d/%d", c.month, c.year)
	}
}

// TestFormatOrderNumber kiểm tra số thứ tự luôn được pad 5 chữ số.
func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "KHN20260800001", FormatOrderNumber("KHN202608", 1))
	assert.Equal(t, "KHN20260800042", FormatOrderNumber("KHN202608", 42))
	assert.Equal(t, "KHN20260812345", FormatOrderNumber("KHN202608", 12345))
	// Vượt 5 chữ số thì không cắt, chỉ dài ra
	assert.Equal(t, "KHN202608123456", FormatOrderNumber("KHN202608", 123456))
}

// TestOrderTotals kiểm tra tổng đơn = tạm tính + phí vận chuyển tại cả hai phía ngưỡng.
func TestOrderTotals(t *testing.T) {
	subtotal := 999.99
	assert.Equal(t, 1049.99, subtotal+ComputeShippingFee(subtotal))

	subtotal = 1000.0
	assert.Equal(t, 1000.0, subtotal+ComputeShippingFee(subtotal))
}
