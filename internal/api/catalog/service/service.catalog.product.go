package service

import (
	"context"
	"fmt"

	basesvc "khn_commerce/internal/api/base/service"
	"khn_commerce/internal/api/catalog/dto"
	"khn_commerce/internal/api/catalog/models"
	"khn_commerce/internal/common"
	"khn_commerce/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductList là kết quả truy vấn danh sách sản phẩm kiểu offset/limit.
type ProductList struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	HasMore  bool             `json:"hasMore"`
}

// ProductService xử lý nghiệp vụ sản phẩm.
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[models.Product]
	categoryService *CategoryService
}

// NewProductService tạo mới ProductService với collection từ registry.
func NewProductService() (*ProductService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			fmt.Sprintf("Không tìm thấy collection '%s'", global.MongoDB_ColNames.Products),
			common.StatusInternalServerError,
			nil,
		)
	}
	categoryService, err := NewCategoryService()
	if err != nil {
		return nil, err
	}
	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Product](collection),
		categoryService:      categoryService,
	}, nil
}

// List truy vấn sản phẩm theo bộ lọc storefront: danh mục (theo slug),
// featured, full-text search; phân trang offset/limit.
// hasMore = offset + số item trả về < total.
func (s *ProductService) List(ctx context.Context, query *dto.ProductQueryInput) (*ProductList, error) {
	filter := bson.M{}

	if query.Category != "" {
		// Slug không tồn tại thì bỏ qua bộ lọc danh mục, trả về tất cả
		category, err := s.categoryService.FindBySlug(ctx, query.Category)
		if err == nil {
			filter["category"] = category.ID
		}
	}

	if query.Featured != nil {
		filter["featured"] = *query.Featured
	}

	if query.Search != "" {
		filter["$text"] = bson.M{"$search": query.Search}
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := query.Offset
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

	products, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &ProductList{
		Products: products,
		Total:    total,
		HasMore:  offset+int64(len(products)) < total,
	}, nil
}

// FindByIDOrSlug tìm sản phẩm theo ObjectID hex hoặc slug.
func (s *ProductService) FindByIDOrSlug(ctx context.Context, idOrSlug string) (models.Product, error) {
	if objID, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		return s.FindOneById(ctx, objID)
	}
	return s.FindOne(ctx, bson.M{"slug": idOrSlug}, nil)
}

// ReserveStock giảm tồn kho một cách atomic, chỉ khi tồn kho còn đủ.
// Filter điều kiện stock >= quantity đảm bảo tồn kho không bao giờ âm
// kể cả khi nhiều đơn hàng cùng tranh một sản phẩm.
func (s *ProductService) ReserveStock(ctx context.Context, productID primitive.ObjectID, quantity int64) error {
	result, err := s.Collection().UpdateOne(ctx,
		bson.M{"_id": productID, "stock": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"stock": -quantity}},
	)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.ModifiedCount == 0 {
		return common.ErrInsufficientStock
	}
	return nil
}

// ReleaseStock hoàn trả tồn kho đã giữ (bù trừ khi đặt hàng thất bại giữa chừng).
func (s *ProductService) ReleaseStock(ctx context.Context, productID primitive.ObjectID, quantity int64) error {
	_, err := s.Collection().UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$inc": bson.M{"stock": quantity}},
	)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
