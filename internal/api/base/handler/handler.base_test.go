package basehdl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestHandler() *BaseHandler[map[string]interface{}, map[string]interface{}, map[string]interface{}] {
	return NewBaseHandler[map[string]interface{}, map[string]interface{}, map[string]interface{}](nil)
}

// TestNormalizeFilter kiểm tra chuyển đổi giá trị filter về kiểu MongoDB.
func TestNormalizeFilter(t *testing.T) {
	h := newTestHandler()
	hex := "64f1b2c3d4e5f6a7b8c9d0e1"
	objID, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)

	t.Run("Dạng extended JSON $oid", func(t *testing.T) {
		filter := map[string]interface{}{
			"category": map[string]interface{}{"$oid": hex},
		}
		normalized := h.normalizeFilter(filter)
		assert.Equal(t, objID, normalized["category"])
	})

	t.Run("Trường _id với chuỗi hex", func(t *testing.T) {
		filter := map[string]interface{}{"_id": hex}
		normalized := h.normalizeFilter(filter)
		assert.Equal(t, objID, normalized["_id"])
	})

	t.Run("json.Number về int64 và float64", func(t *testing.T) {
		filter := map[string]interface{}{
			"stock": json.Number("5"),
			"price": json.Number("99.5"),
		}
		normalized := h.normalizeFilter(filter)
		assert.Equal(t, int64(5), normalized["stock"])
		assert.Equal(t, 99.5, normalized["price"])
	})

	t.Run("Chuỗi thường giữ nguyên", func(t *testing.T) {
		filter := map[string]interface{}{"status": "pending"}
		normalized := h.normalizeFilter(filter)
		assert.Equal(t, "pending", normalized["status"])
	})
}

// TestValidateFilter kiểm tra chặn field nhạy cảm và operator không được phép.
func TestValidateFilter(t *testing.T) {
	h := newTestHandler()

	t.Run("Filter hợp lệ", func(t *testing.T) {
		filter := map[string]interface{}{
			"status": "pending",
			"stock":  map[string]interface{}{"$lt": int64(10)},
		}
		assert.NoError(t, h.validateFilter(filter))
	})

	t.Run("Field nhạy cảm bị chặn", func(t *testing.T) {
		filter := map[string]interface{}{"password": "x"}
		assert.Error(t, h.validateFilter(filter))
	})

	t.Run("Operator không được phép bị chặn", func(t *testing.T) {
		filter := map[string]interface{}{
			"name": map[string]interface{}{"$where": "1 == 1"},
		}
		assert.Error(t, h.validateFilter(filter))
	})

	t.Run("Quá nhiều field bị chặn", func(t *testing.T) {
		filter := map[string]interface{}{}
		for i := 0; i < 11; i++ {
			filter[string(rune('a'+i))] = i
		}
		assert.Error(t, h.validateFilter(filter))
	})
}

// TestParseObjectID kiểm tra parse id từ path param.
func TestParseObjectID(t *testing.T) {
	h := newTestHandler()

	objID, err := h.ParseObjectID("64f1b2c3d4e5f6a7b8c9d0e1")
	require.NoError(t, err)
	assert.Equal(t, "64f1b2c3d4e5f6a7b8c9d0e1", objID.Hex())

	_, err = h.ParseObjectID("not-a-hex")
	assert.Error(t, err)

	_, err = h.ParseObjectID("")
	assert.Error(t, err)
}
