package app

import (
	"time"

	"cyberhub_backend/docs"
	"cyberhub_backend/internal/config"
	"cyberhub_backend/internal/middleware"
	"cyberhub_backend/internal/model"
	"cyberhub_backend/pkg/monitoring"
	"cyberhub_backend/pkg/security"
	"cyberhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.Use(middleware.Identity(cfg, repos.user, repos.student))
	{
		api.GET("/health", c.health.Check)

		// Learning surface. Reads are open; grading needs a resolved student.
		api.GET("/themes", c.theme.List)
		api.GET("/themes/:id", c.theme.Get)
		api.GET("/exercises/:id", c.exercise.Get)
		api.GET("/exercises/:id/questions", c.exercise.Questions)
		api.POST("/exercises/:id/submit", middleware.RequireStudent(), c.exercise.Submit)

		api.POST("/students/register", c.student.Register)
		api.GET("/students/:code/stats", c.student.Stats)
		api.GET("/scoreboard", c.scoreboard.List)

		// Lab sessions. The status callback belongs to the orchestrator, not
		// to browsers.
		labs := api.Group("/labs")
		{
			labs.POST("/start", middleware.RequireStudent(), c.lab.Start)
			labs.GET("/:id", c.lab.Get)
			labs.DELETE("/:id", c.lab.Stop)
			labs.PUT("/:id/status", middleware.RequireOrchestratorKey(cfg), c.lab.UpdateStatus)
		}

		// Back office.
		admin := api.Group("/admin")
		{
			admin.POST("/login", c.auth.Login)

			authorized := admin.Group("")
			authorized.Use(middleware.RequireUser())
			{
				authorized.POST("/logout", c.auth.Logout)
				authorized.GET("/me", c.auth.Me)
				authorized.GET("/dashboard", c.admin.DashboardCounts)

				authorized.GET("/exercises", c.adminExercise.List)
				authorized.GET("/exercises/:id", c.adminExercise.Get)
				authorized.POST("/exercises", c.adminExercise.Create)
				authorized.PUT("/exercises/:id", c.adminExercise.Update)
				authorized.DELETE("/exercises/:id", c.adminExercise.Delete)

				authorized.POST("/uploads", c.upload.Upload)

				superadmin := authorized.Group("")
				superadmin.Use(middleware.RequireRole(model.SuperAdmin))
				{
					superadmin.POST("/themes", c.theme.Create)
					superadmin.GET("/editors", c.admin.ListEditors)
					superadmin.GET("/activity", c.admin.ListActivity)
					superadmin.GET("/students", c.student.AdminList)
				}
			}
		}
	}
}
