package main

import (
	"context"
	"fmt"
	"log"

	"cloudhub/internal/api"
	"cloudhub/internal/middleware"
	"cloudhub/internal/repository"
	"cloudhub/internal/service"
	"cloudhub/internal/storage"
	"cloudhub/pkg/config"
	"cloudhub/pkg/db"
	"cloudhub/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitLogger(config.GlobalConfig.Log.Level, config.GlobalConfig.Log.Production); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := db.InitDB(config.GlobalConfig.Database.DSN); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	blobStore, err := storage.NewMinioStore(context.Background(), config.GlobalConfig.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	userRepo := repository.NewUserRepository()
	fileRepo := repository.NewFileRepository()
	shareRepo := repository.NewShareLinkRepository()

	authService := service.NewAuthService(userRepo)
	fileService := service.NewFileService(fileRepo, shareRepo, blobStore)
	shareService := service.NewShareService(fileRepo, shareRepo)
	accessService := service.NewAccessService(fileRepo, shareRepo, blobStore)

	authHandler := api.NewAuthHandler(authService)
	fileHandler := api.NewFileHandler(fileService)
	shareHandler := api.NewShareHandler(shareService, accessService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.GinZapLogger())

	// Public routes
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/share/:share_id", shareHandler.ResolveShareLink)

	// Owner routes
	protected := r.Group("/api", middleware.AuthMiddleware())
	{
		protected.POST("/files", fileHandler.UploadFile)
		protected.GET("/files", fileHandler.ListFiles)
		protected.GET("/files/stats", fileHandler.GetStats)
		protected.DELETE("/files/:file_id", fileHandler.DeleteFile)
		protected.POST("/shares", shareHandler.CreateShareLink)
	}

	addr := fmt.Sprintf(":%d", config.GlobalConfig.Server.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
