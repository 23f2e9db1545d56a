package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BerylCAtieno/ad-copy-agent/internal/api"
	"github.com/BerylCAtieno/ad-copy-agent/internal/assistant"
	"github.com/BerylCAtieno/ad-copy-agent/internal/config"
	"github.com/BerylCAtieno/ad-copy-agent/internal/generator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger level comes from config, so fall back to a default logger here.
		zap.Must(zap.NewProduction()).Fatal("load config", zap.Error(err))
	}

	logger := newLogger(cfg.Log.Level)
	defer logger.Sync()

	client, closeClient, err := newAssistantClient(cfg)
	if err != nil {
		logger.Fatal("assistant client", zap.String("provider", cfg.Provider), zap.Error(err))
	}
	defer closeClient()

	gen := generator.New(client, logger.Named("generator"), generator.Options{
		PollInterval:        cfg.Generation.PollInterval,
		MaxAttempts:         cfg.Generation.MaxPollAttempts,
		MaxCompletionTokens: cfg.Generation.MaxCompletionTokens,
	})

	gin.SetMode(cfg.Server.GinMode)
	router := api.NewRouter(api.RouterConfig{
		Generator:          gen,
		Logger:             logger,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("ad copy agent listening",
			zap.String("port", cfg.Server.Port),
			zap.String("provider", client.Provider()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Generations can take up to a minute of polling.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 70*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newAssistantClient(cfg *config.Config) (assistant.Client, func(), error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		client, err := assistant.NewGeminiClient(&cfg.Gemini)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		client, err := assistant.NewOpenAIClient(&cfg.OpenAI)
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil
	}
}

func newLogger(level string) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zap.Must(zapCfg.Build())
}
