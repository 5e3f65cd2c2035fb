package utility

import (
	"khn_commerce/internal/common"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost là cost dùng để băm mật khẩu người dùng.
const bcryptCost = 12

// HashPassword băm mật khẩu bằng bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Không thể băm mật khẩu", common.StatusInternalServerError, err)
	}
	return string(hash), nil
}

// ComparePassword so sánh mật khẩu với hash đã lưu.
// Trả về false khi không khớp, không phân biệt lý do.
func ComparePassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
