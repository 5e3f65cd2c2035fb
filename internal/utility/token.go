package utility

import (
	"time"

	"khn_commerce/internal/common"

	"github.com/dgrijalva/jwt-go"
)

// JwtClaims chứa data được mã hóa trong JWT token.
type JwtClaims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

// CreateToken tạo JWT token HS256 cho một user với thời gian sống cho trước.
// @params - secret ký token, userID, thời gian sống
// @returns - chuỗi token và lỗi nếu có
func CreateToken(secret string, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JwtClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", common.NewError(common.ErrCodeAuthToken, "Không thể tạo token", common.StatusInternalServerError, err)
	}
	return signed, nil
}

// ParseToken xác thực JWT token và trả về userID bên trong.
// Token hết hạn, sai chữ ký hoặc sai thuật toán đều trả về ErrTokenInvalid.
func ParseToken(secret string, tokenString string) (string, error) {
	claims := &JwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", common.ErrTokenInvalid
	}
	if claims.UserID == "" {
		return "", common.ErrTokenInvalid
	}
	return claims.UserID, nil
}
