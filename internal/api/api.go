// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/beniamp/orders-tracking/internal/api/handlers"
	"github.com/beniamp/orders-tracking/internal/api/middleware"
	"github.com/beniamp/orders-tracking/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	OrderTracking *service.OrderTrackingService
	Balance       *service.BalanceService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.OrderTracking != nil {
			ordersHandler := handlers.NewOrdersHandler(services.OrderTracking)
			ordersGroup := apiGroup.Group("/orders")
			{
				ordersGroup.GET("/summary", ordersHandler.GetSummary)
				ordersGroup.GET("/trend", ordersHandler.GetTrend)
				ordersGroup.GET("/daily", ordersHandler.GetDaily)
				ordersGroup.GET("/products", ordersHandler.GetProducts)
				ordersGroup.GET("/categories", ordersHandler.GetCategories)
				ordersGroup.GET("/available_dates", ordersHandler.GetAvailableDates)
			}

			if services.Balance != nil {
				balanceHandler := handlers.NewBalanceHandler(services.Balance, services.OrderTracking)
				balanceGroup := apiGroup.Group("/balance")
				{
					balanceGroup.GET("/dashboard", balanceHandler.GetDashboard)
					balanceGroup.GET("/products", balanceHandler.GetProducts)
					balanceGroup.GET("/export", balanceHandler.Export)
				}
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
