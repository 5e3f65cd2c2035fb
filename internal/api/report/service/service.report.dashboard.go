package service

import (
	"context"
	"fmt"
	"time"

	catalogmodels "khn_commerce/internal/api/catalog/models"
	ordermodels "khn_commerce/internal/api/order/models"
	"khn_commerce/internal/api/report/dto"
	"khn_commerce/internal/common"
	"khn_commerce/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ngưỡng tồn kho thấp và số lượng bản ghi hiển thị trên dashboard.
const (
	lowStockThreshold = 10
	recentOrdersLimit = 5
	lowStockLimit     = 5
	revenueMonths     = 6
)

// monthNames dùng cho label doanh thu theo tháng, ví dụ "Jan 2026".
var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthLabel trả về label hiển thị cho một tháng/năm, ví dụ (1, 2026) → "Jan 2026".
func MonthLabel(month int, year int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("? %d", year)
	}
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}

// DashboardService tổng hợp số liệu cho trang dashboard admin.
// Service này chỉ đọc, aggregate trực tiếp trên các collection.
type DashboardService struct {
	orderCollection   *mongo.Collection
	productCollection *mongo.Collection
}

// NewDashboardService tạo mới DashboardService với các collection từ registry.
func NewDashboardService() (*DashboardService, error) {
	orderCollection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			fmt.Sprintf("Không tìm thấy collection '%s'", global.MongoDB_ColNames.Orders),
			common.StatusInternalServerError,
			nil,
		)
	}
	productCollection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			fmt.Sprintf("Không tìm thấy collection '%s'", global.MongoDB_ColNames.Products),
			common.StatusInternalServerError,
			nil,
		)
	}
	return &DashboardService{
		orderCollection:   orderCollection,
		productCollection: productCollection,
	}, nil
}

// GetDashboard tổng hợp toàn bộ số liệu dashboard:
// tổng sản phẩm/đơn hàng, doanh thu các đơn đã thanh toán, số đơn chờ xử lý,
// 5 đơn mới nhất, doanh thu 6 tháng gần nhất và sản phẩm sắp hết hàng.
func (s *DashboardService) GetDashboard(ctx context.Context) (*dto.DashboardData, error) {
	totalProducts, err := s.productCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	totalOrders, err := s.orderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	pendingOrders, err := s.orderCollection.CountDocuments(ctx, bson.M{"status": ordermodels.OrderStatusPending})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	recentOrders, err := s.findRecentOrders(ctx)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := s.sumCompletedRevenue(ctx)
	if err != nil {
		return nil, err
	}

	monthlyRevenue, err := s.MonthlyRevenue(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	lowStockProducts, err := s.findLowStockProducts(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardData{
		TotalProducts:    totalProducts,
		TotalOrders:      totalOrders,
		TotalRevenue:     totalRevenue,
		PendingOrders:    pendingOrders,
		RecentOrders:     recentOrders,
		MonthlyRevenue:   monthlyRevenue,
		LowStockProducts: lowStockProducts,
	}, nil
}

// findRecentOrders trả về các đơn hàng mới nhất.
func (s *DashboardService) findRecentOrders(ctx context.Context) ([]ordermodels.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(recentOrdersLimit)

	cursor, err := s.orderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	orders := make([]ordermodels.Order, 0, recentOrdersLimit)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return orders, nil
}

// sumCompletedRevenue tính tổng doanh thu các đơn có paymentStatus=completed.
func (s *DashboardService) sumCompletedRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"paymentStatus": ordermodels.PaymentStatusCompleted}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}}},
	}

	cursor, err := s.orderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, common.ConvertMongoError(err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// MonthlyRevenue trả về doanh thu theo tháng trong 6 tháng gần nhất,
// sắp xếp tăng dần theo thời gian. Tháng không có doanh thu bị bỏ qua.
// createdAt lưu UnixMilli nên phải $toDate trước khi tách tháng/năm.
func (s *DashboardService) MonthlyRevenue(ctx context.Context, now time.Time) ([]dto.MonthlyRevenue, error) {
	sinceMillis := now.AddDate(0, -revenueMonths, 0).UnixMilli()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"paymentStatus": ordermodels.PaymentStatusCompleted,
			"createdAt":     bson.M{"$gte": sinceMillis},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"month": bson.M{"$month": bson.M{"$toDate": "$createdAt"}},
				"year":  bson.M{"$year": bson.M{"$toDate": "$createdAt"}},
			},
			"revenue": bson.M{"$sum": "$total"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}}},
	}

	cursor, err := s.orderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		ID struct {
			Month int `bson:"month"`
			Year  int `bson:"year"`
		} `bson:"_id"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	monthly := make([]dto.MonthlyRevenue, 0, len(results))
	for _, item := range results {
		monthly = append(monthly, dto.MonthlyRevenue{
			Month:   MonthLabel(item.ID.Month, item.ID.Year),
			Revenue: item.Revenue,
		})
	}
	return monthly, nil
}

// findLowStockProducts trả về các sản phẩm có tồn kho dưới ngưỡng.
func (s *DashboardService) findLowStockProducts(ctx context.Context) ([]catalogmodels.Product, error) {
	opts := options.Find().SetLimit(lowStockLimit)

	cursor, err := s.productCollection.Find(ctx, bson.M{"stock": bson.M{"$lt": lowStockThreshold}}, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	products := make([]catalogmodels.Product, 0, lowStockLimit)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return products, nil
}
