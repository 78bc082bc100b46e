package rest

import (
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/api/rest/handlers"
	restmiddleware "github.com/ShinkDEV/appdaoracaov2-sub000/internal/api/rest/middleware"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/middleware"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries everything the router needs, wired in main.
type RouterConfig struct {
	Log      *logger.Logger
	Registry *prometheus.Registry
	Auth     *middleware.JWTMiddleware

	Donations     *handlers.DonationHandler
	Subscriptions *handlers.SubscriptionHandler
	Profiles      *handlers.ProfileHandler
	Prayers       *handlers.PrayerHandler
}

// SetupRouter configures the Gin router with routes and middleware
func SetupRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()

	r.Use(restmiddleware.LoggerMiddleware(cfg.Log))
	r.Use(restmiddleware.CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	{
		donations := v1.Group("/donations")
		{
			donations.POST("", cfg.Auth.RequireAuth(), cfg.Donations.Donate)
		}

		subscriptions := v1.Group("/subscriptions")
		subscriptions.Use(cfg.Auth.RequireAuth())
		{
			subscriptions.GET("", cfg.Subscriptions.List)
			subscriptions.POST("/cancel", cfg.Subscriptions.Cancel)
		}

		profile := v1.Group("/profile")
		profile.Use(cfg.Auth.RequireAuth())
		{
			profile.GET("", cfg.Profiles.GetProfile)
			profile.POST("/avatar", cfg.Profiles.UploadAvatar)
		}

		prayers := v1.Group("/prayer-requests")
		{
			prayers.GET("", cfg.Prayers.List)
			prayers.POST("", cfg.Auth.RequireAuth(), cfg.Prayers.Create)
			prayers.GET("/mine", cfg.Auth.RequireAuth(), cfg.Prayers.ListMine)
			prayers.POST("/:id/pray", cfg.Auth.RequireAuth(), cfg.Prayers.PrayFor)
			prayers.DELETE("/:id", cfg.Auth.RequireAuth(middleware.ScopeAdmin), cfg.Prayers.Remove)
		}
	}

	return r
}
