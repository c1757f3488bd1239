package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/quangtran/lichviet/internal/assistant"
	"github.com/quangtran/lichviet/internal/auth"
	"github.com/quangtran/lichviet/internal/llm"
	"github.com/quangtran/lichviet/internal/nlp"
	"github.com/quangtran/lichviet/internal/server"
	"github.com/quangtran/lichviet/internal/storage"
	"github.com/quangtran/lichviet/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig, logger)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize the optional Ollama collaborator
	var collaborator assistant.Collaborator
	if cfg.Ollama.Enabled {
		logger.Info("Ollama analysis enabled",
			zap.String("base_url", cfg.Ollama.BaseURL),
			zap.String("model", cfg.Ollama.Model))
		collaborator = llm.NewClient(
			cfg.Ollama.BaseURL,
			cfg.Ollama.Model,
			cfg.Ollama.MaxTokens,
			cfg.Ollama.Temperature,
			time.Duration(cfg.Ollama.Timeout)*time.Second,
			logger,
		)
	} else {
		logger.Info("Ollama analysis disabled, using rule-based analysis only")
	}

	// Initialize the assistant
	engine := nlp.NewEngine(logger)
	asst := assistant.New(store, engine, collaborator, logger)

	// Initialize auth
	authMgr := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	// Start the HTTP server
	srv := server.New(store, asst, authMgr, logger)
	if err := srv.Run(cfg.Server.Host, cfg.Server.Port); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
