package dto

import (
	catalogmodels "khn_commerce/internal/api/catalog/models"
	ordermodels "khn_commerce/internal/api/order/models"
)

// MonthlyRevenue là doanh thu của một tháng, label dạng "Jan 2026".
// Tháng không có doanh thu không xuất hiện trong danh sách.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// DashboardData là dữ liệu tổng hợp cho trang dashboard admin.
type DashboardData struct {
	TotalProducts    int64                   `json:"totalProducts"`
	TotalOrders      int64                   `json:"totalOrders"`
	TotalRevenue     float64                 `json:"totalRevenue"`  // Tổng doanh thu các đơn đã thanh toán
	PendingOrders    int64                   `json:"pendingOrders"` // Số đơn đang chờ xử lý
	RecentOrders     []ordermodels.Order     `json:"recentOrders"`  // 5 đơn mới nhất
	MonthlyRevenue   []MonthlyRevenue        `json:"monthlyRevenue"`
	LowStockProducts []catalogmodels.Product `json:"lowStockProducts"` // Sản phẩm sắp hết hàng (stock < 10)
}
