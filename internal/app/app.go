// Package app wires configuration into stores, caches and services.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/cache"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/config"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/repository"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/scheduler"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/service"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/transport/rest"
)

// App holds every long-lived dependency of the server
type App struct {
	Config *config.Config
	Store  *repository.Store
	Redis  *redis.Client

	AuthService     *service.AuthService
	UserService     *service.UserService
	AnalysisService *service.AnalysisService
	ChatService     *service.ChatService
	MoodService     *service.MoodService
	Scheduler       *scheduler.Service
}

// OpenStore opens the backend selected by cfg.StoreDriver
func OpenStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		return repository.OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return repository.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	}
}

// New opens the store and Redis and builds the services. A Redis that
// cannot be reached disables caching instead of failing startup.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Store: store}

	analysisCache := cache.NewNoopAnalysisCache()
	historyCache := cache.NewNoopHistoryCache()
	if cfg.CacheEnabled() {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, caching disabled")
		} else {
			logrus.WithField("addr", cfg.RedisAddr).Info("Connected to Redis")
			a.Redis = rdb
			analysisCache = cache.NewAnalysisCache(rdb, cfg.CacheTTL)
			historyCache = cache.NewHistoryCache(rdb, cfg.HistoryMaxMessages, cfg.CacheTTL)
		}
	}

	classifier := service.NewClassifier(cfg.Sentiment)
	llm := service.NewLLM(cfg.AI)

	a.AuthService = service.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret)
	a.UserService = service.NewUserService(store.Users, a.AuthService)
	a.AnalysisService = service.NewAnalysisService(store.Messages, store.Analyses, analysisCache, classifier)
	a.ChatService = service.NewChatService(store.Users, store.Messages, a.AnalysisService, historyCache, llm, cfg.HistoryMaxMessages)
	a.MoodService = service.NewMoodService(store.Users, store.Messages, store.Analyses, a.AnalysisService, llm, cfg.Trend, cfg.AI.SummaryTimeout)
	a.Scheduler = scheduler.NewService(a.AnalysisService, cfg.BackfillSchedule, cfg.BackfillBatch)

	return a, nil
}

// Container returns the router dependencies for the app
func (a *App) Container() *rest.Container {
	return &rest.Container{
		AuthService:     a.AuthService,
		UserService:     a.UserService,
		ChatService:     a.ChatService,
		AnalysisService: a.AnalysisService,
		MoodService:     a.MoodService,
		BackfillBatch:   a.Config.BackfillBatch,
		CORS: rest.CORSConfig{
			AllowedOrigins: a.Config.CORSAllowedOrigins,
			AllowedMethods: a.Config.CORSAllowedMethods,
			AllowedHeaders: a.Config.CORSAllowedHeaders,
		},
	}
}

// Close stops the scheduler and releases Redis and the store
func (a *App) Close(ctx context.Context) error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close Redis client")
		}
	}
	if err := a.Store.Close(ctx); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
