package service

import (
	"context"
	"fmt"

	basesvc "khn_commerce/internal/api/base/service"
	"khn_commerce/internal/api/catalog/models"
	"khn_commerce/internal/common"
	"khn_commerce/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryService xử lý nghiệp vụ danh mục sản phẩm.
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[models.Category]
}

// NewCategoryService tạo mới CategoryService với collection từ registry.
func NewCategoryService() (*CategoryService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			fmt.Sprintf("Không tìm thấy collection '%s'", global.MongoDB_ColNames.Categories),
			common.StatusInternalServerError,
			nil,
		)
	}
	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Category](collection),
	}, nil
}

// ListWithProductCount trả về tất cả danh mục, sắp xếp theo tên tăng dần.
// Mỗi danh mục kèm productCount được đếm tại thời điểm đọc, không lưu trữ.
func (s *CategoryService) ListWithProductCount(ctx context.Context) ([]models.CategoryWithCount, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	categories, err := s.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
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

	result := make([]models.CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		count, err := productCollection.CountDocuments(ctx, bson.M{"category": category.ID})
		if err != nil {
			return nil, common.ConvertMongoError(err)
		}
		result = append(result, models.CategoryWithCount{Category: category, ProductCount: count})
	}
	return result, nil
}

// FindBySlug tìm danh mục theo slug.
func (s *CategoryService) FindBySlug(ctx context.Context, slug string) (models.Category, error) {
	return s.FindOne(ctx, bson.M{"slug": slug}, nil)
}
