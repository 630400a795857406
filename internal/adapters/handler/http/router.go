package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/comitanigiacomo/kanso-weekly-engine/docs"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/adapters/handler/http/middleware"
)

type RouterDependencies struct {
	WeeklyHandler  *WeeklyHandler
	HistoryHandler *HistoryHandler
	PoolHandler    *PoolHandler
	// AuthHandler and TokenValidator are only used when AuthEnabled is set.
	AuthHandler    *AuthHandler
	TokenValidator middleware.TokenValidator
	AuthEnabled    bool
	// DB is nil unless the postgres backend is active.
	DB        *sqlx.DB
	Redis     *redis.Client
	RateLimit int
	StartTime time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, 1*time.Minute))
	}

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "disabled"
		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.PingContext(c.Request.Context()); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := cache.Ping(c.Request.Context(), deps.Redis); err != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	if deps.AuthEnabled {
		deps.AuthHandler.RegisterRoutes(apiV1)
		protected.Use(middleware.AuthMiddleware(deps.TokenValidator))
	}
	{
		deps.WeeklyHandler.RegisterRoutes(protected)
		deps.HistoryHandler.RegisterRoutes(protected)
		if deps.PoolHandler != nil {
			deps.PoolHandler.RegisterRoutes(protected)
		}
	}

	return router
}
