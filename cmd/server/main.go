package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/app"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/config"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/logging"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/transport/rest"
)

// @title Chatbot Sentiment API
// @version 1.0
// @description Chat backend with per-message sentiment and mood-trend analytics
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Init(cfg.Debug)

	logrus.WithFields(logrus.Fields{
		"store":         cfg.StoreDriver,
		"llm_provider":  cfg.AI.Provider,
		"llm_enabled":   cfg.AI.IsEnabled(),
		"classifier":    cfg.Sentiment.IsEnabled(),
		"cache_enabled": cfg.CacheEnabled(),
	}).Info("Starting chatbot sentiment server")

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialise application: %v", err)
	}

	if err := a.Scheduler.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           rest.NewRouter(a.Container()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}
	if err := a.Close(shutdownCtx); err != nil {
		logrus.Errorf("Failed to close application: %v", err)
	}

	logrus.Info("Server exited")
}
