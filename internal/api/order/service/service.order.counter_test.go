package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestRetryOnDuplicateKey kiểm tra quy tắc thử lại khi cấp số đơn:
// chỉ thử lại đúng một lần và chỉ khi gặp duplicate key (hai upsert
// đồng thời vào counter của tháng mới).
func TestRetryOnDuplicateKey(t *testing.T) {
	dupErr := mongo.CommandError{Code: 11000, Message: "E11000 duplicate key error"}

	t.Run("Thành công ngay - không thử lại", func(t *testing.T) {
		calls := 0
		seq, err := retryOnDuplicateKey(func() (int64, error) {
			calls++
			return 7, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(7), seq)
		assert.Equal(t, 1, calls)
	})

	t.Run("Duplicate key lần đầu - lần hai lấy được số", func(t *testing.T) {
		calls := 0
		seq, err := retryOnDuplicateKey(func() (int64, error) {
			calls++
			if calls == 1 {
				return 0, dupErr
			}
			return 1, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), seq)
		assert.Equal(t, 2, calls)
	})

	t.Run("Duplicate key cả hai lần - trả lỗi, không lặp vô hạn", func(t *testing.T) {
		calls := 0
		_, err := retryOnDuplicateKey(func() (int64, error) {
			calls++
			return 0, dupErr
		})
		assert.Error(t, err)
		assert.True(t, mongo.IsDuplicateKeyError(err))
		assert.Equal(t, 2, calls)
	})

	t.Run("Lỗi khác - không thử lại", func(t *testing.T) {
		calls := 0
		otherErr := errors.New("connection reset")
		_, err := retryOnDuplicateKey(func() (int64, error) {
			calls++
			return 0, otherErr
		})
		assert.Equal(t, otherErr, err)
		assert.Equal(t, 1, calls)
	})
}
