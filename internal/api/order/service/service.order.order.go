package service

import (
	"context"
	"fmt"
	"time"

	authmodels "khn_commerce/internal/api/auth/models"
	basesvc "khn_commerce/internal/api/base/service"
	catalogmodels "khn_commerce/internal/api/catalog/models"
	catalogsvc "khn_commerce/internal/api/catalog/service"
	"khn_commerce/internal/api/order/dto"
	"khn_commerce/internal/api/order/models"
	"khn_commerce/internal/common"
	"khn_commerce/internal/global"
	"khn_commerce/internal/notification"
	"khn_commerce/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ngưỡng miễn phí vận chuyển và phí chuẩn (baht).
const (
	FreeShippingThreshold = 1000.0
	StandardShippingFee   = 50.0
)

// ComputeShippingFee tính phí vận chuyển: miễn phí khi tạm tính đạt ngưỡng.
func ComputeShippingFee(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return StandardShippingFee
}

// OrderList là kết quả truy vấn danh sách đơn hàng kiểu offset/limit.
type OrderList struct {
	Orders  []models.Order `json:"orders"`
	Total   int64          `json:"total"`
	HasMore bool           `json:"hasMore"`
}

// reservedItem ghi lại một lần giữ tồn kho thành công, dùng cho bước hoàn trả.
type reservedItem struct {
	productID primitive.ObjectID
	quantity  int64
}

// productCatalog là phần của ProductService mà nghiệp vụ đơn hàng cần:
// đọc sản phẩm để snapshot và giữ/hoàn trả tồn kho.
type productCatalog interface {
	FindOneById(ctx context.Context, id primitive.ObjectID) (catalogmodels.Product, error)
	ReserveStock(ctx context.Context, productID primitive.ObjectID, quantity int64) error
	ReleaseStock(ctx context.Context, productID primitive.ObjectID, quantity int64) error
}

// orderNumberSource cấp số đơn hàng kế tiếp theo kỳ tháng.
type orderNumberSource interface {
	NextOrderNumber(ctx context.Context, now time.Time) (string, error)
}

// OrderService xử lý nghiệp vụ đơn hàng: đặt hàng với giữ tồn kho atomic,
// cấp số đơn, truy vấn theo quyền sở hữu và các thao tác trạng thái của admin.
type OrderService struct {
	basesvc.BaseServiceMongo[models.Order]
	productService productCatalog
	counterService orderNumberSource
	mailer         *notification.Mailer
}

// NewOrderService tạo mới OrderService với collection từ registry.
func NewOrderService() (*OrderService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			fmt.Sprintf("Không tìm thấy collection '%s'", global.MongoDB_ColNames.Orders),
			common.StatusInternalServerError,
			nil,
		)
	}
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, err
	}
	counterService, err := NewCounterService()
	if err != nil {
		return nil, err
	}
	return &OrderService{
		BaseServiceMongo: basesvc.NewBaseServiceMongo[models.Order](collection),
		productService:   productService,
		counterService:   counterService,
		mailer:           notification.NewMailer(global.MongoDB_ServerConfig),
	}, nil
}

// CreateOrder đặt hàng:
//  1. Snapshot từng dòng hàng (tên, đơn giá hiệu lực, ảnh đại diện) từ sản phẩm hiện tại.
//  2. Tính tạm tính, phí vận chuyển, tổng.
//  3. Giữ tồn kho atomic từng sản phẩm; thiếu hàng giữa chừng thì hoàn trả
//     toàn bộ phần đã giữ và trả lỗi.
//  4. Cấp số đơn hàng từ counter theo kỳ tháng.
//  5. Ghi đơn với status=pending, paymentStatus=pending; ghi thất bại cũng hoàn trả tồn kho.
//  6. Gửi email xác nhận (fire-and-forget).
func (s *OrderService) CreateOrder(ctx context.Context, user *authmodels.User, input *dto.CreateOrderInput) (models.Order, error) {
	var zero models.Order

	if len(input.Items) == 0 {
		return zero, common.NewError(common.ErrCodeValidationInput, "Đơn hàng phải có ít nhất một sản phẩm", common.StatusBadRequest, nil)
	}

	// Snapshot dòng hàng từ trạng thái sản phẩm hiện tại
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, itemInput := range input.Items {
		productID, err := primitive.ObjectIDFromHex(itemInput.Product)
		if err != nil {
			return zero, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("ID sản phẩm '%s' không hợp lệ", itemInput.Product), common.StatusBadRequest, err)
		}

		product, err := s.productService.FindOneById(ctx, productID)
		if err != nil {
			return zero, common.NewError(common.ErrCodeDatabaseQuery, fmt.Sprintf("Không tìm thấy sản phẩm: %s", itemInput.Product), common.StatusNotFound, nil)
		}

		if product.Stock < itemInput.Quantity {
			return zero, common.NewError(
				common.ErrCodeBusinessInventory,
				fmt.Sprintf("Sản phẩm %s không đủ hàng trong kho", product.Name),
				common.StatusBadRequest,
				nil,
			)
		}

		items = append(items, models.OrderItem{
			Product:  product.ID,
			Name:     product.Name,
			Price:    product.EffectivePrice(),
			Quantity: itemInput.Quantity,
			Image:    product.PrimaryImage(),
		})
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	shippingFee := ComputeShippingFee(subtotal)
	total := subtotal + shippingFee

	// Giữ tồn kho atomic; thất bại giữa chừng thì hoàn trả phần đã giữ
	reserved := make([]reservedItem, 0, len(items))
	for _, item := range items {
		if err := s.productService.ReserveStock(ctx, item.Product, item.Quantity); err != nil {
			s.releaseReserved(ctx, reserved)
			return zero, common.NewError(
				common.ErrCodeBusinessInventory,
				fmt.Sprintf("Sản phẩm %s không đủ hàng trong kho", item.Name),
				common.StatusBadRequest,
				nil,
			)
		}
		reserved = append(reserved, reservedItem{productID: item.Product, quantity: item.Quantity})
	}

	orderNumber, err := s.counterService.NextOrderNumber(ctx, time.Now())
	if err != nil {
		s.releaseReserved(ctx, reserved)
		return zero, err
	}

	order := models.Order{
		User:        user.ID,
		OrderNumber: orderNumber,
		Items:       items,
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Total:       total,
		ShippingAddress: models.ShippingAddress{
			Name:       input.ShippingAddress.Name,
			Phone:      input.ShippingAddress.Phone,
			Address:    input.ShippingAddress.Address,
			District:   input.ShippingAddress.District,
			Province:   input.ShippingAddress.Province,
			PostalCode: input.ShippingAddress.PostalCode,
		},
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}

	created, err := s.InsertOne(ctx, order)
	if err != nil {
		s.releaseReserved(ctx, reserved)
		return zero, err
	}

	// Email xác nhận không chặn response đặt hàng
	email := user.Email
	confirmation := created
	go utility.GoProtect(func() {
		_ = s.mailer.SendOrderConfirmation(email, &confirmation)
	})

	return created, nil
}

// releaseReserved hoàn trả tồn kho cho các dòng đã giữ thành công.
func (s *OrderService) releaseReserved(ctx context.Context, reserved []reservedItem) {
	for _, item := range reserved {
		_ = s.productService.ReleaseStock(ctx, item.productID, item.quantity)
	}
}

// MyOrders trả về đơn hàng của một user, mới nhất trước.
func (s *OrderService) MyOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, bson.M{"user": userID}, opts)
}

// GetOrderForUser trả về một đơn hàng nếu caller là chủ đơn hoặc admin.
// Đơn không tồn tại trả về 404 trước khi kiểm tra quyền sở hữu,
// để không phân biệt được "không có" với "của người khác".
func (s *OrderService) GetOrderForUser(ctx context.Context, orderID primitive.ObjectID, userID primitive.ObjectID, isAdmin bool) (models.Order, error) {
	var zero models.Order

	order, err := s.FindOneById(ctx, orderID)
	if err != nil {
		return zero, err
	}

	if order.User != userID && !isAdmin {
		return zero, common.ErrForbidden
	}

	return order, nil
}

// AdminOrders trả về danh sách đơn hàng cho admin, lọc theo status nếu có.
func (s *OrderService) AdminOrders(ctx context.Context, status string, limit int64, offset int64) (*OrderList, error) {
	filter := bson.M{}
	if status != "" {
		if !models.IsValidOrderStatus(status) {
			return nil, errInvalidOrderStatus(status)
		}
		filter["status"] = status
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	total, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	orders, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &OrderList{
		Orders:  orders,
		Total:   total,
		HasMore: offset+int64(len(orders)) < total,
	}, nil
}

// UpdateStatus chuyển trạng thái đơn hàng (admin).
// Trạng thái đích phải nằm trong closed set, không ràng buộc thứ tự chuyển.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (models.Order, error) {
	var zero models.Order
	if !models.IsValidOrderStatus(status) {
		return zero, errInvalidOrderStatus(status)
	}
	return s.UpdateById(ctx, orderID, &basesvc.UpdateData{Set: map[string]interface{}{"status": status}})
}

// UpdateTrackingNumber cập nhật mã vận đơn (admin).
func (s *OrderService) UpdateTrackingNumber(ctx context.Context, orderID primitive.ObjectID, trackingNumber string) (models.Order, error) {
	return s.UpdateById(ctx, orderID, &basesvc.UpdateData{Set: map[string]interface{}{"trackingNumber": trackingNumber}})
}

// UpdatePaymentStatus chuyển trạng thái thanh toán (admin).
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, orderID primitive.ObjectID, status string) (models.Order, error) {
	var zero models.Order
	if !models.IsValidPaymentStatus(status) {
		return zero, common.NewError(
			common.ErrCodeBusinessState,
			fmt.Sprintf("Trạng thái thanh toán '%s' không hợp lệ", status),
			common.StatusBadRequest,
			nil,
		)
	}
	return s.UpdateById(ctx, orderID, &basesvc.UpdateData{Set: map[string]interface{}{"paymentStatus": status}})
}

// AttachPaymentSlip đính kèm chứng từ thanh toán vào đơn.
// Chỉ chủ đơn hoặc admin được phép. Chứng từ chỉ là bằng chứng:
// paymentStatus vẫn là pending cho đến khi admin xác nhận.
func (s *OrderService) AttachPaymentSlip(ctx context.Context, orderID primitive.ObjectID, userID primitive.ObjectID, isAdmin bool, slipURL string) (models.Order, error) {
	var zero models.Order

	order, err := s.FindOneById(ctx, orderID)
	if err != nil {
		return zero, err
	}

	if order.User != userID && !isAdmin {
		return zero, common.ErrForbidden
	}

	return s.UpdateById(ctx, orderID, &basesvc.UpdateData{Set: map[string]interface{}{"paymentSlip": slipURL}})
}

func errInvalidOrderStatus(status string) error {
	return common.NewError(
		common.ErrCodeBusinessState,
		fmt.Sprintf("Trạng thái đơn hàng '%s' không hợp lệ", status),
		common.StatusBadRequest,
		nil,
	)
}
