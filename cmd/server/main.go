package main

import (
	"log"

	"github.com/blues/els/internal/chain"
	"github.com/blues/els/internal/config"
	"github.com/blues/els/internal/database"
	"github.com/blues/els/internal/escrow"
	"github.com/blues/els/internal/logger"
	"github.com/blues/els/internal/router"
	"github.com/blues/els/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(fileLogger)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化转账能力
	transfer, err := chain.Init(cfg.Chain)
	if err != nil {
		logger.Fatal("Failed to initialize chain transfer: %v", err)
	}

	// 初始化托管核心
	platform, err := escrow.New(cfg.Platform.OwnerAddress, cfg.Platform.FeeRateBps, nil, transfer)
	if err != nil {
		logger.Fatal("Failed to initialize escrow platform: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(platform, db, cfg)

	// 启动定时任务
	manager := task.Start(platform, db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
