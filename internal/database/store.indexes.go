// Package database - Index cho các collection của cửa hàng (unique slug/email/orderNumber,
// text search sản phẩm, quét tồn kho thấp).
package database

import (
	"context"
	"strings"

	"khn_commerce/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateStoreIndexes tạo các index cần thiết cho storefront.
// Gọi một lần khi khởi động, sau khi các collection đã được đăng ký.
func CreateStoreIndexes(ctx context.Context, db *mongo.Database) error {
	// store_users: email unique — chặn đăng ký trùng email ở tầng dữ liệu
	users := db.Collection(global.MongoDB_ColNames.Users)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("store_user_email").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// store_categories: slug unique
	categories := db.Collection(global.MongoDB_ColNames.Categories)
	if _, err := categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("store_category_slug").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// store_products: slug unique
	products := db.Collection(global.MongoDB_ColNames.Products)
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("store_product_slug").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// store_products: text index trên name/nameEn/description — phục vụ tìm kiếm
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: "text"},
			{Key: "nameEn", Value: "text"},
			{Key: "description", Value: "text"},
		},
		Options: options.Index().SetName("store_product_text"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// store_products: (category, featured) — lọc theo danh mục và sản phẩm nổi bật
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "featured", Value: 1},
		},
		Options: options.Index().SetName("store_product_category_featured"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// store_products: stock — quét tồn kho thấp cho dashboard
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "stock", Value: 1}},
		Options: options.Index().SetName("store_product_stock"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// store_orders: orderNumber unique
	orders := db.Collection(global.MongoDB_ColNames.Orders)
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderNumber", Value: 1}},
		Options: options.Index().SetName("store_order_number").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// store_orders: (user, createdAt desc) — danh sách đơn của một khách, mới nhất trước
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("store_order_user_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// store_orders: (status, createdAt desc) — danh sách admin lọc theo trạng thái
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("store_order_status_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// store_orders: (paymentStatus, createdAt) — aggregate doanh thu theo tháng
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "paymentStatus", Value: 1},
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("store_order_payment_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
