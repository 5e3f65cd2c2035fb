package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMonthLabel kiểm tra label tháng cho biểu đồ doanh thu.
func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan 2026", MonthLabel(1, 2026))
	assert.Equal(t, "Aug 2026", MonthLabel(8, 2026))
	assert.Equal(t, "Dec 2025", MonthLabel(12, 2025))

	// Tháng ngoài khoảng 1-12 không được panic
	assert.Equal(t, "? 2026", MonthLabel(0, 2026))
	assert.Equal(t, "? 2026", MonthLabel(13, 2026))
}
