package main

import (
	"context"
	"time"

	authmodels "khn_commerce/internal/api/auth/models"
	authsvc "khn_commerce/internal/api/auth/service"
	"khn_commerce/internal/global"
	"khn_commerce/internal/logger"
	"khn_commerce/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
)

func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Tạo tài khoản admin mặc định từ env (nếu có config)
	// Nếu không có ADMIN_EMAIL/ADMIN_PASSWORD thì bỏ qua, admin được tạo thủ công
	cfg := global.MongoDB_ServerConfig
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		log.Info("✅ [INIT] InitDefaultData completed successfully")
		return
	}

	log.Info("🔄 [INIT] Step 1: Initializing default admin account...")
	userService, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to initialize user service: %v", err)
	}

	email := authsvc.NormalizeEmail(cfg.AdminEmail)
	exists, err := userService.DocumentExists(ctx, bson.M{"email": email})
	if err != nil {
		log.Fatalf("Failed to check admin account: %v", err)
	}
	if exists {
		log.Info("✅ [INIT] Step 1: Admin account already exists, nothing to do")
		log.Info("✅ [INIT] InitDefaultData completed successfully")
		return
	}

	hashed, err := utility.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := authmodels.User{
		Email:     email,
		Password:  hashed,
		Name:      "Administrator",
		Role:      authmodels.RoleAdmin,
		Addresses: []authmodels.Address{},
	}
	created, err := userService.InsertOne(ctx, admin)
	if err != nil {
		log.Warnf("Failed to create admin account: %v", err)
	} else {
		log.Infof("✅ [INIT] Step 1: Admin account created successfully (ID: %s)", created.ID.Hex())
	}

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
