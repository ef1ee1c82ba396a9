package main

import (
	"context"
	"os"
	"time"

	"quoteforge/internal/api"
	"quoteforge/internal/auth"
	"quoteforge/internal/config"
	"quoteforge/internal/redis"
	"quoteforge/internal/service/generator"
	"quoteforge/internal/service/library"
	"quoteforge/internal/service/settings"
	"quoteforge/internal/storage"
	"quoteforge/internal/uploads"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "quoteforge",
	})

	cfgPath := os.Getenv("QUOTEFORGE_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("load config", "err", err)
	}

	dbType := os.Getenv("QUOTEFORGE_DB")
	if dbType == "" {
		dbType = "sqlite3"
	}
	logger.Info("opening database", "driver", dbType)
	db, err := storage.Open(dbType, cfg)
	if err != nil {
		logger.Fatal("open database", "err", err)
	}
	defer db.Close()
	rdb, err := redis.NewClient(cfg)
	if err != nil {
		logger.Fatal("create redis client", "err", err)
	}
	defer rdb.Close()

	// Create necessary tables: users, user_tokens, quotes
	if err := storage.Migrate(db, dbType); err != nil {
		logger.Fatal("migrate database", "err", err)
	}

	libraryService := library.NewService(db)
	authService := auth.NewService(db, rdb, 24*time.Hour)
	settingsStore := settings.NewStore(rdb, logger)

	// Keep the interface nil when no key is configured; a typed nil client
	// would defeat the unavailable-upstream check.
	var chat generator.ChatClient
	if client := generator.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL); client != nil {
		chat = client
	} else {
		logger.Warn("OPENAI_API_KEY not set, generation will fall back")
	}
	generatorService := generator.NewService(chat, nil, logger)

	uploader := uploads.NewService(cfg.Uploads.BaseDir, cfg.Uploads.PublicBaseURL, logger)
	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	defer janitorCancel()
	uploader.StartJanitor(janitorCtx, time.Duration(cfg.Uploads.RetentionHours)*time.Hour, time.Hour)

	handlers := api.NewHandler(libraryService, authService, generatorService, settingsStore, uploader, logger)

	router := gin.Default()
	handlers.RegisterRoutes(router)
	router.Static("/files", cfg.Uploads.BaseDir)

	addr := cfg.BasicConfig.ServerAddress
	if addr == "" {
		addr = ":8090"
	}
	logger.Info("listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}
