package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// TestEffectivePrice kiểm tra giá áp dụng: giá khuyến mãi chỉ có hiệu lực
// khi dương và thấp hơn giá niêm yết.
func TestEffectivePrice(t *testing.T) {
	t.Run("Không có giá khuyến mãi", func(t *testing.T) {
		p := Product{Price: 100}
		assert.Equal(t, 100.0, p.EffectivePrice())
	})

	t.Run("Giá khuyến mãi thấp hơn giá niêm yết", func(t *testing.T) {
		p := Product{Price: 100, DiscountPrice: 80}
		assert.Equal(t, 80.0, p.EffectivePrice())
	})

	t.Run("Giá khuyến mãi bằng giá niêm yết - không áp dụng", func(t *testing.T) {
		p := Product{Price: 100, DiscountPrice: 100}
		assert.Equal(t, 100.0, p.EffectivePrice())
	})

	t.Run("Giá khuyến mãi cao hơn giá niêm yết - không áp dụng", func(t *testing.T) {
		p := Product{Price: 100, DiscountPrice: 150}
		assert.Equal(t, 100.0, p.EffectivePrice())
	})

	t.Run("Giá khuyến mãi bằng 0 - không áp dụng", func(t *testing.T) {
		p := Product{Price: 100, DiscountPrice: 0}
		assert.Equal(t, 100.0, p.EffectivePrice())
	})
}

// TestPrimaryImage kiểm tra ảnh đại diện là ảnh đầu tiên.
func TestPrimaryImage(t *testing.T) {
	p := Product{}
	assert.Equal(t, "", p.PrimaryImage())

	p.Images = []string{"/uploads/a.jpg", "/uploads/b.jpg"}
	assert.Equal(t, "/uploads/a.jpg", p.PrimaryImage())
}

// TestNormalizeSpecifications kiểm tra gộp key trùng: giá trị sau thắng,
// giữ thứ tự xuất hiện đầu tiên của mỗi key.
func TestNormalizeSpecifications(t *testing.T) {
	t.Run("Danh sách rỗng", func(t *testing.T) {
		result := NormalizeSpecifications(nil)
		assert.Empty(t, result)
	})

	t.Run("Không có key trùng - giữ nguyên thứ tự", func(t *testing.T) {
		specs := []Specification{
			{Key: "CPU", Value: "i5"},
			{Key: "RAM", Value: "16GB"},
		}
		result := NormalizeSpecifications(specs)
		require.Len(t, result, 2)
		assert.Equal(t, "CPU", result[0].Key)
		assert.Equal(t, "RAM", result[1].Key)
	})

	t.Run("Key trùng - giá trị sau thắng, vị trí đầu giữ nguyên", func(t *testing.T) {
		specs := []Specification{
			{Key: "CPU", Value: "i5"},
			{Key: "RAM", Value: "8GB"},
			{Key: "CPU", Value: "i7"},
		}
		result := NormalizeSpecifications(specs)
		require.Len(t, result, 2)
		assert.Equal(t, Specification{Key: "CPU", Value: "i7"}, result[0])
		assert.Equal(t, Specification{Key: "RAM", Value: "8GB"}, result[1])
	})
}

// TestSpecificationListUnmarshalBSON kiểm tra đọc specifications từ cả hai
// dạng lưu trữ: array {key, value} và keyed mapping.
func TestSpecificationListUnmarshalBSON(t *testing.T) {
	type doc struct {
		Specifications SpecificationList `bson:"specifications"`
	}

	t.Run("Dạng array", func(t *testing.T) {
		raw, err := bson.Marshal(bson.M{
			"specifications": bson.A{
				bson.M{"key": "CPU", "value": "i5"},
				bson.M{"key": "RAM", "value": "16GB"},
			},
		})
		require.NoError(t, err)

		var d doc
		require.NoError(t, bson.Unmarshal(raw, &d))
		require.Len(t, d.Specifications, 2)
		assert.Equal(t, Specification{Key: "CPU", Value: "i5"}, d.Specifications[0])
		assert.Equal(t, Specification{Key: "RAM", Value: "16GB"}, d.Specifications[1])
	})

	t.Run("Dạng keyed mapping - giữ thứ tự key trong document", func(t *testing.T) {
		raw, err := bson.Marshal(bson.D{
			{Key: "specifications", Value: bson.D{
				{Key: "Màn hình", Value: "15.6 inch"},
				{Key: "Pin", Value: "70Wh"},
			}},
		})
		require.NoError(t, err)

		var d doc
		require.NoError(t, bson.Unmarshal(raw, &d))
		require.Len(t, d.Specifications, 2)
		assert.Equal(t, Specification{Key: "Màn hình", Value: "15.6 inch"}, d.Specifications[0])
		assert.Equal(t, Specification{Key: "Pin", Value: "70Wh"}, d.Specifications[1])
	})

	t.Run("Null - trả về danh sách rỗng", func(t *testing.T) {
		raw, err := bson.Marshal(bson.M{"specifications": nil})
		require.NoError(t, err)

		var d doc
		require.NoError(t, bson.Unmarshal(raw, &d))
		assert.Empty(t, d.Specifications)
	})
}
