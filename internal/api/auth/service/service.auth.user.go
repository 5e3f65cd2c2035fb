package service

import (
	"context"
	"fmt"
	"strings"

	"khn_commerce/internal/api/auth/dto"
	"khn_commerce/internal/api/auth/models"
	basesvc "khn_commerce/internal/api/base/service"
	"khn_commerce/internal/common"
	"khn_commerce/internal/global"
	"khn_commerce/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService xử lý nghiệp vụ người dùng: đăng ký, đăng nhập, hồ sơ, địa chỉ giao hàng.
type UserService struct {
	basesvc.BaseServiceMongo[models.User]
}

// NewUserService tạo mới UserService với collection từ registry.
func NewUserService() (*UserService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			fmt.Sprintf("Không tìm thấy collection '%s'", global.MongoDB_ColNames.Users),
			common.StatusInternalServerError,
			nil,
		)
	}
	return &UserService{
		BaseServiceMongo: basesvc.NewBaseServiceMongo[models.User](collection),
	}, nil
}

// NormalizeEmail chuẩn hóa email về lowercase trước khi lưu/tìm kiếm.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register đăng ký tài khoản mới.
// Email đã tồn tại trả về lỗi 409, mật khẩu được hash bcrypt trước khi lưu.
func (s *UserService) Register(ctx context.Context, input *dto.RegisterInput) (models.User, error) {
	var zero models.User
	email := NormalizeEmail(input.Email)

	exists, err := s.DocumentExists(ctx, bson.M{"email": email})
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, common.ErrEmailExists
	}

	hashed, err := utility.HashPassword(input.Password)
	if err != nil {
		return zero, err
	}

	user := models.User{
		Email:     email,
		Password:  hashed,
		Name:      input.Name,
		Addresses: []models.Address{},
	}
	return s.InsertOne(ctx, user)
}

// Login xác thực email/mật khẩu.
// Cả hai trường hợp thất bại (email không tồn tại, mật khẩu sai) trả về
// cùng một lỗi để không lộ thông tin tài khoản nào tồn tại.
func (s *UserService) Login(ctx context.Context, email string, password string) (models.User, error) {
	var zero models.User

	user, err := s.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}, nil)
	if err != nil {
		return zero, common.ErrInvalidCredentials
	}

	if !utility.ComparePassword(user.Password, password) {
		return zero, common.ErrInvalidCredentials
	}

	return user, nil
}

// UpdateProfile cập nhật tên/số điện thoại. Field rỗng bị bỏ qua.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input *dto.UpdateProfileInput) (models.User, error) {
	set := map[string]interface{}{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Phone != "" {
		set["phone"] = input.Phone
	}
	if len(set) == 0 {
		return s.FindOneById(ctx, userID)
	}
	return s.UpdateById(ctx, userID, &basesvc.UpdateData{Set: set})
}

// AddAddress thêm địa chỉ giao hàng mới.
// Nếu địa chỉ mới là mặc định, các địa chỉ còn lại bị bỏ cờ mặc định.
func (s *UserService) AddAddress(ctx context.Context, userID primitive.ObjectID, address models.Address) (models.User, error) {
	var zero models.User

	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return zero, err
	}

	addresses := user.Addresses
	if address.IsDefault {
		addresses = ClearDefaultAddresses(addresses)
	}
	addresses = append(addresses, address)

	return s.UpdateById(ctx, userID, &basesvc.UpdateData{Set: map[string]interface{}{"addresses": addresses}})
}

// UpdateAddress thay thế địa chỉ tại vị trí index.
// Index ngoài phạm vi trả về lỗi 404.
func (s *UserService) UpdateAddress(ctx context.Context, userID primitive.ObjectID, index int, address models.Address) (models.User, error) {
	var zero models.User

	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return zero, err
	}

	if index < 0 || index >= len(user.Addresses) {
		return zero, errAddressNotFound()
	}

	addresses := user.Addresses
	if address.IsDefault {
		addresses = ClearDefaultAddresses(addresses)
	}
	addresses[index] = address

	return s.UpdateById(ctx, userID, &basesvc.UpdateData{Set: map[string]interface{}{"addresses": addresses}})
}

// DeleteAddress xóa địa chỉ tại vị trí index.
// Index ngoài phạm vi trả về lỗi 404.
func (s *UserService) DeleteAddress(ctx context.Context, userID primitive.ObjectID, index int) (models.User, error) {
	var zero models.User

	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return zero, err
	}

	if index < 0 || index >= len(user.Addresses) {
		return zero, errAddressNotFound()
	}

	addresses := append(user.Addresses[:index], user.Addresses[index+1:]...)

	return s.UpdateById(ctx, userID, &basesvc.UpdateData{Set: map[string]interface{}{"addresses": addresses}})
}

// ClearDefaultAddresses bỏ cờ mặc định trên tất cả địa chỉ, trả về slice mới.
func ClearDefaultAddresses(addresses []models.Address) []models.Address {
	result := make([]models.Address, len(addresses))
	for i, addr := range addresses {
		addr.IsDefault = false
		result[i] = addr
	}
	return result
}

func errAddressNotFound() error {
	return common.NewError(common.ErrCodeDatabaseQuery, "Không tìm thấy địa chỉ", common.StatusNotFound, nil)
}
