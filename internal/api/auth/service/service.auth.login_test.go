package service

import (
	"context"
	"testing"

	"khn_commerce/internal/api/auth/models"
	basemodels "khn_commerce/internal/api/base/models"
	basesvc "khn_commerce/internal/api/base/service"
	"khn_commerce/internal/common"
	"khn_commerce/internal/utility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeUserStore giữ user trong bộ nhớ, thay BaseServiceMongo[models.User]
// để test nghiệp vụ đăng nhập không cần MongoDB.
type fakeUserStore struct {
	users map[string]models.User // key theo email đã chuẩn hóa
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (f *fakeUserStore) InsertOne(ctx context.Context, data models.User) (models.User, error) {
	data.ID = primitive.NewObjectID()
	f.users[data.Email] = data
	return data, nil
}

func (f *fakeUserStore) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (models.User, error) {
	query, ok := filter.(bson.M)
	if !ok {
		return models.User{}, common.ErrNotFound
	}
	email, _ := query["email"].(string)
	user, exists := f.users[email]
	if !exists {
		return models.User{}, common.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) FindOneById(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, common.ErrNotFound
}

func (f *fakeUserStore) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserStore) FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64) (*basemodels.PaginateResult[models.User], error) {
	return &basemodels.PaginateResult[models.User]{}, nil
}

func (f *fakeUserStore) UpdateById(ctx context.Context, id primitive.ObjectID, data *basesvc.UpdateData) (models.User, error) {
	return f.FindOneById(ctx, id)
}

func (f *fakeUserStore) UpdateOne(ctx context.Context, filter interface{}, data *basesvc.UpdateData) (models.User, error) {
	return models.User{}, common.ErrNotFound
}

func (f *fakeUserStore) Upsert(ctx context.Context, filter interface{}, data *basesvc.UpdateData) (models.User, error) {
	return models.User{}, common.ErrNotFound
}

func (f *fakeUserStore) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (f *fakeUserStore) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserStore) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	query, ok := filter.(bson.M)
	if !ok {
		return false, nil
	}
	email, _ := query["email"].(string)
	_, exists := f.users[email]
	return exists, nil
}

// TestLoginIndistinguishableFailures kiểm tra hai đường thất bại của đăng nhập
// (email không tồn tại, mật khẩu sai) trả về đúng cùng một lỗi, không lộ
// thông tin tài khoản nào tồn tại.
func TestLoginIndistinguishableFailures(t *testing.T) {
	store := newFakeUserStore()
	hashed, err := utility.HashPassword("s3cret-pass")
	require.NoError(t, err)
	_, err = store.InsertOne(context.Background(), models.User{
		Email:    "somchai@example.com",
		Password: hashed,
		Name:     "Somchai",
	})
	require.NoError(t, err)

	svc := &UserService{BaseServiceMongo: store}

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
	_, errWrongPass := svc.Login(context.Background(), "somchai@example.com", "wrong-pass")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	assert.ErrorIs(t, errUnknown, common.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, common.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error(), "hai đường thất bại phải trả về cùng một thông báo")
}

// TestLoginSuccess kiểm tra đăng nhập đúng, email được chuẩn hóa trước khi tìm.
func TestLoginSuccess(t *testing.T) {
	store := newFakeUserStore()
	hashed, err := utility.HashPassword("s3cret-pass")
	require.NoError(t, err)
	_, err = store.InsertOne(context.Background(), models.User{
		Email:    "somchai@example.com",
		Password: hashed,
	})
	require.NoError(t, err)

	svc := &UserService{BaseServiceMongo: store}

	user, err := svc.Login(context.Background(), "  Somchai@Example.COM ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "somchai@example.com", user.Email)
}
