package app

import (
	"progress_charts/internal/config"
	"progress_charts/internal/middleware"
	"progress_charts/internal/util"
	"progress_charts/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(util.RoleEditor))
	{
		authGroup.POST("/charts/render", c.chart.Render)
		authGroup.POST("/surfaces", c.surface.Register)
		authGroup.DELETE("/surfaces/:id", c.surface.Remove)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		charts := public.Group("/charts")
		{
			charts.GET("/defaults", c.chart.GetDefaults)
			charts.POST("/configs", c.chart.BuildConfigs)
		}

		surfaces := public.Group("/surfaces")
		{
			surfaces.GET("", c.surface.List)
			surfaces.GET("/:id", c.surface.Get)
			surfaces.GET("/:id/image", c.surface.GetImage)
		}
	}
}
