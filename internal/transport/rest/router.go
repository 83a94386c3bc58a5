package rest

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/swaggo/swag"

	_ "github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/docs"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/logging"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/service"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/transport/rest/handler"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	UserService     *service.UserService
	ChatService     *service.ChatService
	AnalysisService *service.AnalysisService
	MoodService     *service.MoodService
	BackfillBatch   int
	CORS            CORSConfig
}

// CORSConfig holds the values of the CORS response headers
type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	userHandler := handler.NewUserHandler(c.UserService)
	chatHandler := handler.NewChatHandler(c.ChatService, c.AuthService)
	messageHandler := handler.NewMessageHandler(c.AnalysisService, c.AuthService)
	analyticsHandler := handler.NewAnalyticsHandler(c.MoodService, c.AuthService)
	adminHandler := handler.NewAdminHandler(c.AnalysisService, c.BackfillBatch)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", serveSwaggerDoc).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.Handle("/users", authMW.OptionalAuth(http.HandlerFunc(userHandler.Create))).Methods("POST", "OPTIONS")

	// Routes for admin and user tokens; per-user access is checked in the handlers
	authed := v1.NewRoute().Subrouter()
	authed.Use(authMW.RequireAuth)

	authed.HandleFunc("/chat", chatHandler.Send).Methods("POST", "OPTIONS")
	authed.HandleFunc("/messages/{id:[0-9]+}/analysis", messageHandler.GetAnalysis).Methods("GET", "OPTIONS")
	authed.HandleFunc("/messages/user/{userId}", messageHandler.ListByUser).Methods("GET", "OPTIONS")
	authed.HandleFunc("/analytics/user/{userId}/sentiment", analyticsHandler.Sentiment).Methods("GET", "OPTIONS")
	authed.HandleFunc("/analytics/user/{userId}/mood_trend", analyticsHandler.MoodTrend).Methods("GET", "OPTIONS")

	// Admin routes
	admin := v1.PathPrefix("/admin").Subrouter()
	admin.Use(authMW.RequireAdmin)

	admin.HandleFunc("/backfill", adminHandler.Backfill).Methods("POST", "OPTIONS")

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(logrus.StandardLogger()),
		handlers.PrintRecoveryStack(false),
	)
	return handlers.CombinedLoggingHandler(logging.AccessWriter(), recovery(r))
}

func serveSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		logrus.WithError(err).Error("Failed to render swagger document")
		http.Error(w, `{"error":"swagger document unavailable"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

func corsMiddleware(cfg CORSConfig) mux.MiddlewareFunc {
	if cfg.AllowedOrigins == "" {
		cfg.AllowedOrigins = "*"
	}
	if cfg.AllowedMethods == "" {
		cfg.AllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	}
	if cfg.AllowedHeaders == "" {
		cfg.AllowedHeaders = "Content-Type, Authorization"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
