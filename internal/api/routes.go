package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Yaara40/academic-department-website-sub000/internal/auth"
	"github.com/Yaara40/academic-department-website-sub000/internal/config"
	"github.com/Yaara40/academic-department-website-sub000/internal/websocket"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Events     *EventController
	Activities *ActivityController
	Contents   *ContentController
	Auth       *AuthController
}

// SetupRoutes builds the full router: middleware chain, public site
// endpoints, the admin panel group behind JWT, and the operational
// endpoints.
func SetupRoutes(cfg *config.Config, db *gorm.DB, tokens *auth.TokenService, hub *websocket.Hub, ctrls Controllers) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	router.Use(TimeoutMiddleware(time.Duration(cfg.Server.RequestTimeout) * time.Second))
	router.Use(ErrorHandlerMiddleware())

	healthController := NewHealthController(db)
	router.GET("/health", healthController.Check)
	router.GET("/metrics", MetricsHandler)

	if hub != nil && tokens != nil {
		router.GET("/ws/admin", websocket.Handler(hub, tokens))
	}

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", ctrls.Auth.Login)

		// Public site endpoints.
		events := v1.Group("/events")
		{
			events.GET("", ctrls.Events.List)
			events.GET("/upcoming", ctrls.Events.Upcoming)
			events.GET("/open", ctrls.Events.Open)
			events.GET("/:id", ctrls.Events.Get)
			events.POST("/:id/register", ctrls.Events.Register)
			events.POST("/:id/unregister", ctrls.Events.Unregister)
		}

		activities := v1.Group("/activities")
		{
			activities.POST("", ctrls.Activities.Log)
			activities.POST("/quick", ctrls.Activities.QuickLog)
		}

		v1.GET("/content/:key", ctrls.Contents.Get)

		// Admin panel endpoints.
		admin := v1.Group("/admin")
		admin.Use(AdminRequired(tokens))
		{
			admin.POST("/events", ctrls.Events.Create)
			admin.PUT("/events/:id", ctrls.Events.Update)
			admin.DELETE("/events/:id", ctrls.Events.Delete)
			admin.POST("/events/sweep", ctrls.Events.Sweep)

			admin.GET("/activities/:userId", ctrls.Activities.Recent)
			admin.GET("/activities/:userId/by-type", ctrls.Activities.ByType)
			admin.GET("/activities/:userId/stats", ctrls.Activities.Stats)

			admin.GET("/content", ctrls.Contents.Keys)
			admin.PUT("/content/:key", ctrls.Contents.Save)
			admin.DELETE("/content/:key", ctrls.Contents.Delete)
		}
	}

	// Unmatched routes answer JSON, not HTML.
	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "route not found")
	})

	return router
}
