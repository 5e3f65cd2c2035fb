// Package global giữ các biến dùng chung của ứng dụng: cấu hình, phiên MongoDB,
// tên collection, registry collection và validator. Các package khác đọc từ đây
// thay vì đọc trực tiếp biến môi trường.
package global

import (
	"khn_commerce/config"
	"khn_commerce/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// StoreCollectionName chứa tên các collection trong MongoDB
type StoreCollectionName struct {
	Users      string // Tên collection cho người dùng
	Categories string // Tên collection cho danh mục sản phẩm
	Products   string // Tên collection cho sản phẩm
	Orders     string // Tên collection cho đơn hàng
	Counters   string // Tên collection cho bộ đếm số đơn hàng theo kỳ
}

// Các biến toàn cục
var Validate *validator.Validate                                              // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                             // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                                // Cấu hình của server
var MongoDB_ColNames StoreCollectionName = *new(StoreCollectionName)          // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
