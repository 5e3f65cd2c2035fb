package service

import (
	"context"
	"fmt"
	"time"

	basesvc "khn_commerce/internal/api/base/service"
	"khn_commerce/internal/api/order/models"
	"khn_commerce/internal/common"
	"khn_commerce/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CounterService cấp số thứ tự đơn hàng theo kỳ tháng.
// Lấy số bằng FindOneAndUpdate $inc upsert nên an toàn dưới ghi đồng thời:
// hai đơn hàng tạo cùng lúc không bao giờ nhận cùng một số.
type CounterService struct {
	*basesvc.BaseServiceMongoImpl[models.Counter]
}

// NewCounterService tạo mới CounterService với collection từ registry.
func NewCounterService() (*CounterService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Counters)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			fmt.Sprintf("Không tìm thấy collection '%s'", global.MongoDB_ColNames.Counters),
			common.StatusInternalServerError,
			nil,
		)
	}
	return &CounterService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Counter](collection),
	}, nil
}

// OrderNumberPrefix trả về prefix của kỳ: KHN + năm + tháng (2 chữ số).
func OrderNumberPrefix(t time.Time) string {
	return fmt.Sprintf("KHN%d%02d", t.Year(), int(t.Month()))
}

// FormatOrderNumber ghép prefix kỳ với số thứ tự 5 chữ số.
func FormatOrderNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s%05d", prefix, seq)
}

// NextOrderNumber cấp số đơn hàng kế tiếp cho kỳ hiện tại.
func (s *CounterService) NextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	prefix := OrderNumberPrefix(now)

	seq, err := retryOnDuplicateKey(func() (int64, error) {
		return s.incrementCounter(ctx, prefix)
	})
	if err != nil {
		return "", common.ConvertMongoError(err)
	}

	return FormatOrderNumber(prefix, seq), nil
}

// incrementCounter tăng seq của counter kỳ `prefix` và trả về giá trị mới.
func (s *CounterService) incrementCounter(ctx context.Context, prefix string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := s.Collection().FindOneAndUpdate(ctx,
		bson.M{"_id": prefix},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// retryOnDuplicateKey chạy fn và thử lại đúng một lần khi gặp duplicate key.
// Hai upsert đồng thời vào counter chưa tồn tại (đơn đầu tiên của tháng) có thể
// đụng nhau trên unique index _id; lần thử lại sẽ thấy document đã được tạo
// và chỉ còn $inc bình thường.
func retryOnDuplicateKey(fn func() (int64, error)) (int64, error) {
	seq, err := fn()
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return fn()
	}
	return seq, err
}
