package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"khn_commerce/config"
	authmodels "khn_commerce/internal/api/auth/models"
	basemodels "khn_commerce/internal/api/base/models"
	basesvc "khn_commerce/internal/api/base/service"
	catalogmodels "khn_commerce/internal/api/catalog/models"
	"khn_commerce/internal/api/order/dto"
	"khn_commerce/internal/api/order/models"
	"khn_commerce/internal/common"
	"khn_commerce/internal/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeOrderStore giữ đơn hàng trong bộ nhớ, thay BaseServiceMongo[models.Order]
// để test nghiệp vụ đặt hàng không cần MongoDB.
type fakeOrderStore struct {
	orders    map[primitive.ObjectID]models.Order
	insertErr error
	inserts   int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[primitive.ObjectID]models.Order{}}
}

func (f *fakeOrderStore) InsertOne(ctx context.Context, data models.Order) (models.Order, error) {
	if f.insertErr != nil {
		return models.Order{}, f.insertErr
	}
	data.ID = primitive.NewObjectID()
	f.orders[data.ID] = data
	f.inserts++
	return data, nil
}

func (f *fakeOrderStore) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (models.Order, error) {
	return models.Order{}, common.ErrNotFound
}

func (f *fakeOrderStore) FindOneById(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	order, exists := f.orders[id]
	if !exists {
		return models.Order{}, common.ErrNotFound
	}
	return order, nil
}

func (f *fakeOrderStore) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Order, error) {
	result := make([]models.Order, 0, len(f.orders))
	for _, order := range f.orders {
		result = append(result, order)
	}
	return result, nil
}

func (f *fakeOrderStore) FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64) (*basemodels.PaginateResult[models.Order], error) {
	return &basemodels.PaginateResult[models.Order]{}, nil
}

func (f *fakeOrderStore) UpdateById(ctx context.Context, id primitive.ObjectID, data *basesvc.UpdateData) (models.Order, error) {
	order, exists := f.orders[id]
	if !exists {
		return models.Order{}, common.ErrNotFound
	}
	return order, nil
}

func (f *fakeOrderStore) UpdateOne(ctx context.Context, filter interface{}, data *basesvc.UpdateData) (models.Order, error) {
	return models.Order{}, common.ErrNotFound
}

func (f *fakeOrderStore) Upsert(ctx context.Context, filter interface{}, data *basesvc.UpdateData) (models.Order, error) {
	return models.Order{}, common.ErrNotFound
}

func (f *fakeOrderStore) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderStore) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderStore) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	return false, nil
}

// fakeCatalog mô phỏng ProductService: tồn kho trong map, reserveErr cho phép
// giả lập sản phẩm bị rút hết giữa lúc snapshot và lúc giữ kho.
type fakeCatalog struct {
	products   map[primitive.ObjectID]catalogmodels.Product
	stock      map[primitive.ObjectID]int64
	reserveErr map[primitive.ObjectID]error
	releases   map[primitive.ObjectID]int64
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products:   map[primitive.ObjectID]catalogmodels.Product{},
		stock:      map[primitive.ObjectID]int64{},
		reserveErr: map[primitive.ObjectID]error{},
		releases:   map[primitive.ObjectID]int64{},
	}
}

func (f *fakeCatalog) addProduct(product catalogmodels.Product) primitive.ObjectID {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	f.products[product.ID] = product
	f.stock[product.ID] = product.Stock
	return product.ID
}

func (f *fakeCatalog) FindOneById(ctx context.Context, id primitive.ObjectID) (catalogmodels.Product, error) {
	product, exists := f.products[id]
	if !exists {
		return catalogmodels.Product{}, common.ErrNotFound
	}
	product.Stock = f.stock[id]
	return product, nil
}

func (f *fakeCatalog) ReserveStock(ctx context.Context, productID primitive.ObjectID, quantity int64) error {
	if err := f.reserveErr[productID]; err != nil {
		return err
	}
	if f.stock[productID] < quantity {
		return common.ErrInsufficientStock
	}
	f.stock[productID] -= quantity
	return nil
}

func (f *fakeCatalog) ReleaseStock(ctx context.Context, productID primitive.ObjectID, quantity int64) error {
	f.stock[productID] += quantity
	f.releases[productID] += quantity
	return nil
}

// fakeOrderNumbers thay CounterService, cấp số cố định hoặc lỗi.
type fakeOrderNumbers struct {
	next  string
	err   error
	calls int
}

func (f *fakeOrderNumbers) NextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.next, nil
}

func newTestOrderService(store *fakeOrderStore, catalog *fakeCatalog, counter *fakeOrderNumbers) *OrderService {
	return &OrderService{
		BaseServiceMongo: store,
		productService:   catalog,
		counterService:   counter,
		mailer:           notification.NewMailer(&config.Configuration{}),
	}
}

func testOrderInput(items ...dto.OrderItemInput) *dto.CreateOrderInput {
	return &dto.CreateOrderInput{
		Items: items,
		ShippingAddress: dto.ShippingAddressInput{
			Name:       "Somchai",
			Phone:      "0812345678",
			Address:    "1 Sukhumvit Rd",
			District:   "Watthana",
			Province:   "Bangkok",
			PostalCode: "10110",
		},
		PaymentMethod: "promptpay",
	}
}

func testBuyer() *authmodels.User {
	return &authmodels.User{ID: primitive.NewObjectID(), Email: "buyer@example.com"}
}

// TestCreateOrderInsufficientStockCompensation kiểm tra đặt hàng thất bại
// giữa chừng khi giữ kho: không ghi đơn nào, không cấp số đơn, và tồn kho
// đã giữ trước đó được hoàn trả đủ (net-zero).
func TestCreateOrderInsufficientStockCompensation(t *testing.T) {
	store := newFakeOrderStore()
	catalog := newFakeCatalog()
	counter := &fakeOrderNumbers{next: "KHN20260800001"}

	idA := catalog.addProduct(catalogmodels.Product{Name: "Bàn phím cơ", Price: 1500, Stock: 10})
	idB := catalog.addProduct(catalogmodels.Product{Name: "Chuột gaming", Price: 900, Stock: 10})
	// Sản phẩm B bị đơn khác rút hết sau khi snapshot nhưng trước khi giữ kho
	catalog.reserveErr[idB] = common.ErrInsufficientStock

	svc := newTestOrderService(store, catalog, counter)
	_, err := svc.CreateOrder(context.Background(), testBuyer(), testOrderInput(
		dto.OrderItemInput{Product: idA.Hex(), Quantity: 2},
		dto.OrderItemInput{Product: idB.Hex(), Quantity: 1},
	))

	require.Error(t, err)
	var cerr *common.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, common.ErrCodeBusinessInventory, cerr.Code)

	assert.Equal(t, 0, store.inserts, "không được ghi đơn khi giữ kho thất bại")
	assert.Equal(t, 0, counter.calls, "không được cấp số đơn khi giữ kho thất bại")
	assert.Equal(t, int64(10), catalog.stock[idA], "tồn kho sản phẩm A phải được hoàn trả về mức ban đầu")
	assert.Equal(t, int64(2), catalog.releases[idA], "phần đã giữ của sản phẩm A phải được hoàn trả đúng số lượng")
}

// TestCreateOrderCounterFailureReleasesStock kiểm tra cấp số đơn thất bại
// sau khi đã giữ kho: tồn kho được hoàn trả, không ghi đơn.
func TestCreateOrderCounterFailureReleasesStock(t *testing.T) {
	store := newFakeOrderStore()
	catalog := newFakeCatalog()
	counter := &fakeOrderNumbers{err: errors.New("counter unavailable")}

	id := catalog.addProduct(catalogmodels.Product{Name: "Tai nghe", Price: 500, Stock: 5})

	svc := newTestOrderService(store, catalog, counter)
	_, err := svc.CreateOrder(context.Background(), testBuyer(), testOrderInput(
		dto.OrderItemInput{Product: id.Hex(), Quantity: 3},
	))

	require.Error(t, err)
	assert.Equal(t, 0, store.inserts)
	assert.Equal(t, int64(5), catalog.stock[id])
	assert.Equal(t, int64(3), catalog.releases[id])
}

// TestCreateOrderInsertFailureReleasesStock kiểm tra ghi đơn thất bại
// sau khi đã giữ kho và cấp số: tồn kho vẫn được hoàn trả.
func TestCreateOrderInsertFailureReleasesStock(t *testing.T) {
	store := newFakeOrderStore()
	store.insertErr = errors.New("write concern error")
	catalog := newFakeCatalog()
	counter := &fakeOrderNumbers{next: "KHN20260800007"}

	id := catalog.addProduct(catalogmodels.Product{Name: "Màn hình", Price: 4000, Stock: 4})

	svc := newTestOrderService(store, catalog, counter)
	_, err := svc.CreateOrder(context.Background(), testBuyer(), testOrderInput(
		dto.OrderItemInput{Product: id.Hex(), Quantity: 2},
	))

	require.Error(t, err)
	assert.Equal(t, int64(4), catalog.stock[id])
	assert.Equal(t, int64(2), catalog.releases[id])
}

// TestCreateOrderSnapshotImmutable kiểm tra dòng hàng của đơn là snapshot:
// đổi tên/giá/ảnh sản phẩm sau khi đặt không làm đơn đã ghi thay đổi.
func TestCreateOrderSnapshotImmutable(t *testing.T) {
	store := newFakeOrderStore()
	catalog := newFakeCatalog()
	counter := &fakeOrderNumbers{next: "KHN20260800042"}

	id := catalog.addProduct(catalogmodels.Product{
		Name:          "Loa bluetooth",
		Price:         100,
		DiscountPrice: 80,
		Images:        []string{"/uploads/speaker.jpg"},
		Stock:         5,
	})

	svc := newTestOrderService(store, catalog, counter)
	created, err := svc.CreateOrder(context.Background(), testBuyer(), testOrderInput(
		dto.OrderItemInput{Product: id.Hex(), Quantity: 2},
	))
	require.NoError(t, err)

	// Snapshot lấy giá hiệu lực (khuyến mãi) và ảnh đại diện tại thời điểm đặt
	assert.Equal(t, "KHN20260800042", created.OrderNumber)
	assert.Equal(t, 160.0, created.Subtotal)
	assert.Equal(t, 50.0, created.ShippingFee)
	assert.Equal(t, 210.0, created.Total)
	assert.Equal(t, int64(3), catalog.stock[id])

	// Sản phẩm đổi tên, tăng giá, thay ảnh sau khi đơn đã ghi
	product := catalog.products[id]
	product.Name = "Loa bluetooth v2"
	product.Price = 250
	product.DiscountPrice = 0
	product.Images = []string{"/uploads/speaker-v2.jpg"}
	catalog.products[id] = product

	stored, err := store.FindOneById(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Loa bluetooth", stored.Items[0].Name)
	assert.Equal(t, 80.0, stored.Items[0].Price)
	assert.Equal(t, "/uploads/speaker.jpg", stored.Items[0].Image)
}

// TestGetOrderForUserNotFoundBeforeOwnership kiểm tra thứ tự kiểm tra:
// đơn không tồn tại trả 404 trước khi xét quyền sở hữu, đơn của người khác
// trả 403 với user thường và đọc được với admin.
func TestGetOrderForUserNotFoundBeforeOwnership(t *testing.T) {
	store := newFakeOrderStore()
	catalog := newFakeCatalog()
	counter := &fakeOrderNumbers{next: "KHN20260800001"}
	svc := newTestOrderService(store, catalog, counter)

	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	order, err := store.InsertOne(context.Background(), models.Order{User: owner, OrderNumber: "KHN20260800001"})
	require.NoError(t, err)

	t.Run("Đơn không tồn tại - 404 kể cả với user lạ", func(t *testing.T) {
		_, err := svc.GetOrderForUser(context.Background(), primitive.NewObjectID(), stranger, false)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("Đơn của người khác - 403", func(t *testing.T) {
		_, err := svc.GetOrderForUser(context.Background(), order.ID, stranger, false)
		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("Chủ đơn - đọc được", func(t *testing.T) {
		got, err := svc.GetOrderForUser(context.Background(), order.ID, owner, false)
		assert.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
	})

	t.Run("Admin - đọc được đơn của người khác", func(t *testing.T) {
		got, err := svc.GetOrderForUser(context.Background(), order.ID, stranger, true)
		assert.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
	})
}
