package server

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/valuesearchapp/backend/internal/handlers"
	"github.com/valuesearchapp/backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	ValueHandler      *handlers.ValueHandler
	HistoryHandler    *handlers.HistoryHandler
	PreferenceHandler *handlers.PreferenceHandler
}

func allowedOrigins() []string {
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOW_ORIGINS")); raw != "" {
		parts := strings.Split(raw, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		return origins
	}
	return []string{
		"http://localhost:3000",
		"https://valuesearch.app",
		"https://www.valuesearch.app",
	}
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.GET("/values", cfg.ValueHandler.ListValues)
		api.GET("/value-by-symbol", cfg.ValueHandler.GetBySymbol)
		api.GET("/search-suggestions", cfg.ValueHandler.Suggestions)
		api.GET("/value-history", cfg.HistoryHandler.GetHistory)

		api.POST("/create-account-request", cfg.AuthHandler.CreateAccountRequest)
		api.POST("/create-account", cfg.AuthHandler.CreateAccount)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/reset-password-request", cfg.AuthHandler.ResetPasswordRequest)
		api.POST("/reset-password", cfg.AuthHandler.ResetPassword)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Portfolio
	protected.GET("/user-stock-data", cfg.PreferenceHandler.GetStockData)
	protected.PATCH("/user-stock-data", cfg.PreferenceHandler.UpdateStockData)
	protected.GET("/user-stock-counts", cfg.PreferenceHandler.StockCounts)
	protected.GET("/user-stocks-by-status", cfg.PreferenceHandler.StocksByStatus)

	return router
}
