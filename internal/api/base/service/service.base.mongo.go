// package basesvc cung cấp các service cơ bản cho việc tương tác với MongoDB.
// Các service domain (user, product, order, ...) embed BaseServiceMongoImpl và chỉ
// viết thêm các thao tác nghiệp vụ riêng.
package basesvc

import (
	"context"
	"reflect"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "khn_commerce/internal/api/base/models"
	"khn_commerce/internal/api/events"
	"khn_commerce/internal/common"
	"khn_commerce/internal/utility"
)

// UpdateData định nghĩa kiểu dữ liệu cho partial update
type UpdateData struct {
	Set         map[string]interface{} // Các trường cần update
	SetOnInsert map[string]interface{} // Các trường chỉ set khi insert (upsert tạo mới)
	Unset       map[string]interface{} // Các trường cần xóa
	Push        map[string]interface{} // Các trường cần thêm vào array
	AddToSet    map[string]interface{} // Các trường cần thêm vào set
	Inc         map[string]interface{} // Các trường cần tăng/giảm
}

// ToBson chuyển UpdateData thành bson.M cho MongoDB.
// updatedAt luôn được stamp vào $set.
func (u *UpdateData) ToBson() bson.M {
	update := bson.M{}
	set := bson.M{}
	for k, v := range u.Set {
		set[k] = v
	}
	set["updatedAt"] = utility.CurrentTimeInMilli()
	update["$set"] = set
	if len(u.SetOnInsert) > 0 {
		update["$setOnInsert"] = u.SetOnInsert
	}
	if len(u.Unset) > 0 {
		update["$unset"] = u.Unset
	}
	if len(u.Push) > 0 {
		update["$push"] = u.Push
	}
	if len(u.AddToSet) > 0 {
		update["$addToSet"] = u.AddToSet
	}
	if len(u.Inc) > 0 {
		update["$inc"] = u.Inc
	}
	return update
}

// BaseServiceMongo định nghĩa các thao tác CRUD cơ bản trên một collection.
type BaseServiceMongo[T any] interface {
	InsertOne(ctx context.Context, data T) (T, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64) (*basemodels.PaginateResult[T], error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data *UpdateData) (T, error)
	UpdateOne(ctx context.Context, filter interface{}, data *UpdateData) (T, error)
	Upsert(ctx context.Context, filter interface{}, data *UpdateData) (T, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
}

// BaseServiceMongoImpl là implementation mặc định của BaseServiceMongo.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo service CRUD mới cho một collection.
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// Collection trả về collection bên dưới, dùng cho các thao tác đặc thù
// (atomic update có điều kiện, aggregate) mà interface CRUD không bao phủ.
func (s *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return s.collection
}

// emit phát event thay đổi dữ liệu sau mỗi thao tác ghi thành công.
func (s *BaseServiceMongoImpl[T]) emit(ctx context.Context, op string, doc interface{}) {
	events.EmitDataChanged(ctx, events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      op,
		Document:       doc,
	})
}

// applyDefaults gán giá trị mặc định từ struct tag `default` cho các field đang là zero value.
// Hỗ trợ string, bool, int và float.
func applyDefaults(doc map[string]interface{}, model interface{}) {
	val := reflect.ValueOf(model)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		defTag := field.Tag.Get("default")
		if defTag == "" {
			continue
		}
		bsonKey := field.Tag.Get("bson")
		if comma := strings.Index(bsonKey, ","); comma >= 0 {
			bsonKey = bsonKey[:comma]
		}
		if bsonKey == "" || bsonKey == "-" {
			continue
		}
		current, exists := doc[bsonKey]
		if exists && !isZeroValue(current) {
			continue
		}
		switch field.Type.Kind() {
		case reflect.String:
			doc[bsonKey] = defTag
		case reflect.Bool:
			doc[bsonKey] = defTag == "true"
		case reflect.Int, reflect.Int32, reflect.Int64:
			if n, err := strconv.ParseInt(defTag, 10, 64); err == nil {
				doc[bsonKey] = n
			}
		case reflect.Float32, reflect.Float64:
			if f, err := strconv.ParseFloat(defTag, 64); err == nil {
				doc[bsonKey] = f
			}
		}
	}
}

// isZeroValue kiểm tra một giá trị đã decode từ bson có phải zero value không.
func isZeroValue(v interface{}) bool {
	if v == nil {
		return true
	}
	switch x := v.(type) {
	case string:
		return x == ""
	case bool:
		return !x
	case int32:
		return x == 0
	case int64:
		return x == 0
	case float64:
		return x == 0
	}
	return false
}

// InsertOne chèn một document mới, stamp createdAt/updatedAt (UnixMilli)
// và áp dụng các giá trị mặc định từ tag `default`.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	doc, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu", common.StatusBadRequest, err)
	}

	// Không chèn _id zero để MongoDB tự sinh
	if id, ok := doc["_id"]; ok {
		if objID, ok := id.(primitive.ObjectID); ok && objID.IsZero() {
			delete(doc, "_id")
		}
	}

	now := utility.CurrentTimeInMilli()
	doc["createdAt"] = now
	doc["updatedAt"] = now
	applyDefaults(doc, data)

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return zero, common.ErrMongoWrite
	}

	inserted, err := s.FindOneById(ctx, insertedID)
	if err != nil {
		return zero, err
	}

	s.emit(ctx, events.OpInsert, inserted)
	return inserted, nil
}

// FindOne tìm một document theo filter.
// Không tìm thấy trả về common.ErrNotFound.
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T
	var err error
	if opts != nil {
		err = s.collection.FindOne(ctx, filter, opts).Decode(&result)
	} else {
		err = s.collection.FindOne(ctx, filter).Decode(&result)
	}
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return result, common.ErrNotFound
		}
		return result, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm một document theo ObjectID.
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find tìm nhiều documents theo filter.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = s.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindWithPagination tìm documents với phân trang, sort mặc định createdAt giảm dần.
// totalPage = (total + limit - 1) / limit.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64) (*basemodels.PaginateResult[T], error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &basemodels.PaginateResult[T]{
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Items:     items,
		Total:     total,
		TotalPage: (total + limit - 1) / limit,
	}, nil
}

// UpdateById cập nhật một document theo ID và trả về bản ghi sau khi cập nhật.
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, data *UpdateData) (T, error) {
	return s.UpdateOne(ctx, bson.M{"_id": id}, data)
}

// UpdateOne cập nhật document đầu tiên khớp filter và trả về bản ghi sau khi cập nhật.
// Không khớp document nào trả về common.ErrNotFound.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, data *UpdateData) (T, error) {
	var result T
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.collection.FindOneAndUpdate(ctx, filter, data.ToBson(), opts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return result, common.ErrNotFound
		}
		return result, common.ConvertMongoError(err)
	}
	s.emit(ctx, events.OpUpdate, result)
	return result, nil
}

// Upsert cập nhật document khớp filter, tạo mới nếu chưa có.
// createdAt chỉ được stamp khi tạo mới.
func (s *BaseServiceMongoImpl[T]) Upsert(ctx context.Context, filter interface{}, data *UpdateData) (T, error) {
	var result T
	update := data.ToBson()
	setOnInsert := bson.M{"createdAt": utility.CurrentTimeInMilli()}
	if existing, ok := update["$setOnInsert"].(map[string]interface{}); ok {
		for k, v := range existing {
			setOnInsert[k] = v
		}
	}
	update["$setOnInsert"] = setOnInsert

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true)
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		return result, common.ConvertMongoError(err)
	}
	s.emit(ctx, events.OpUpsert, result)
	return result, nil
}

// DeleteById xóa một document theo ID.
// Trước khi xóa, kiểm tra các quan hệ định nghĩa qua struct tag `relationship`;
// nếu còn bản ghi tham chiếu tới thì trả về lỗi Conflict.
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	var zero T
	if err := ValidateRelationships(ctx, id, reflect.TypeOf(zero)); err != nil {
		return err
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	s.emit(ctx, events.OpDelete, nil)
	return nil
}

// CountDocuments đếm số documents khớp filter.
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// DocumentExists kiểm tra có document nào khớp filter không.
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}
