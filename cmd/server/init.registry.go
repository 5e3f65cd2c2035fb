package main

import (
	"context"

	"khn_commerce/config"
	"khn_commerce/internal/api/middleware"
	"khn_commerce/internal/database"
	"khn_commerce/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {

	logrus.Info("Initialized registry") // Ghi log thông báo đã khởi tạo registry

	// Khởi tạo registry và đăng ký các collections
	err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")

	// Đăng ký subscriber xóa cache user khi collection user thay đổi
	middleware.RegisterUserCacheInvalidation()
	logrus.Info("Registered user cache invalidation subscriber")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.Categories,
		global.MongoDB_ColNames.Products,
		global.MongoDB_ColNames.Orders,
		global.MongoDB_ColNames.Counters,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}

	}

	// Tạo các index cho storefront (unique email/slug/orderNumber, text search, tồn kho)
	if err := database.CreateStoreIndexes(context.TODO(), db); err != nil {
		logrus.Errorf("Failed to create store indexes: %v", err)
		return err
	}
	logrus.Info("Created store indexes")

	return nil
}
