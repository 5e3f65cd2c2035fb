package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category là danh mục sản phẩm với tên song ngữ.
type Category struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`                 // Tên tiếng Thái
	NameEn        string             `json:"nameEn" bson:"nameEn"`             // Tên tiếng Anh
	Slug          string             `json:"slug" bson:"slug" index:"unique" validate:"omitempty,slug"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	DescriptionEn string             `json:"descriptionEn,omitempty" bson:"descriptionEn,omitempty"`
	Image         string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`

	// Không cho xóa danh mục khi còn sản phẩm tham chiếu tới
	_Relationships interface{} `json:"-" bson:"-" relationship:"collection:store_products,field:category,message:Không thể xóa danh mục vì còn %d sản phẩm thuộc danh mục này"`
}

// CategoryWithCount là Category kèm số lượng sản phẩm, tính tại thời điểm đọc.
type CategoryWithCount struct {
	Category     `bson:",inline"`
	ProductCount int64 `json:"productCount" bson:"-"`
}
