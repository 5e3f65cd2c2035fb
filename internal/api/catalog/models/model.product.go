package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Specification là một cặp key/value trong thông số kỹ thuật của sản phẩm.
type Specification struct {
	Key   string `json:"key" bson:"key"`
	Value string `json:"value" bson:"value"`
}

// SpecificationList là danh sách thông số có thứ tự.
// Dữ liệu cũ có thể được lưu dạng keyed mapping (document), dữ liệu mới lưu dạng
// array có thứ tự; cả hai dạng đều đọc được và được chuẩn hóa về list.
type SpecificationList []Specification

// Product là model sản phẩm.
type Product struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`     // Tên tiếng Thái
	NameEn        string             `json:"nameEn" bson:"nameEn"` // Tên tiếng Anh
	Slug          string             `json:"slug" bson:"slug" index:"unique" validate:"omitempty,slug"`
	Description   string             `json:"description" bson:"description"`
	DescriptionEn string             `json:"descriptionEn" bson:"descriptionEn"`
	Price         float64            `json:"price" bson:"price"`
	DiscountPrice float64            `json:"discountPrice,omitempty" bson:"discountPrice,omitempty"`
	Category      primitive.ObjectID `json:"category" bson:"category"`
	Brand         string             `json:"brand" bson:"brand"`
	Images        []string           `json:"images" bson:"images"`
	Specifications SpecificationList `json:"specifications" bson:"specifications,omitempty"`
	Stock         int64              `json:"stock" bson:"stock"`
	Featured      bool               `json:"featured" bson:"featured"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}

// EffectivePrice trả về đơn giá áp dụng khi đặt hàng:
// giá khuyến mãi nếu có và thấp hơn giá niêm yết, ngược lại giá niêm yết.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return p.DiscountPrice
	}
	return p.Price
}

// PrimaryImage trả về ảnh đại diện (ảnh đầu tiên), rỗng nếu chưa có ảnh.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// NormalizeSpecifications gộp các key trùng lặp (giá trị sau thắng) và giữ
// thứ tự xuất hiện đầu tiên của mỗi key.
func NormalizeSpecifications(specs []Specification) SpecificationList {
	if len(specs) == 0 {
		return SpecificationList{}
	}
	index := make(map[string]int, len(specs))
	result := make(SpecificationList, 0, len(specs))
	for _, spec := range specs {
		if pos, exists := index[spec.Key]; exists {
			result[pos].Value = spec.Value
			continue
		}
		index[spec.Key] = len(result)
		result = append(result, spec)
	}
	return result
}

// UnmarshalBSONValue đọc specifications từ cả hai dạng lưu trữ:
// array các document {key, value} hoặc keyed mapping (document).
func (s *SpecificationList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Array:
		var raw []Specification
		if err := bson.UnmarshalValue(t, data, &raw); err != nil {
			return err
		}
		*s = NormalizeSpecifications(raw)
		return nil
	case bsontype.EmbeddedDocument:
		// Dạng keyed mapping: bson.D giữ nguyên thứ tự key trong document
		var doc bson.D
		if err := bson.UnmarshalValue(t, data, &doc); err != nil {
			return err
		}
		result := make(SpecificationList, 0, len(doc))
		for _, elem := range doc {
			value, _ := elem.Value.(string)
			result = append(result, Specification{Key: elem.Key, Value: value})
		}
		*s = NormalizeSpecifications(result)
		return nil
	case bsontype.Null:
		*s = SpecificationList{}
		return nil
	default:
		*s = SpecificationList{}
		return nil
	}
}
