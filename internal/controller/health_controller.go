package controller

import (
	"net/http"
	"progress_charts/internal/repository"
	"progress_charts/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Surfaces repository.SurfaceStore
}

func NewHealthController(surfaces repository.SurfaceStore) *HealthController {
	return &HealthController{Surfaces: surfaces}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查渲染目标存储
	if err := c.Surfaces.Ping(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Surface store unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"surfaces": "up",
		},
	})
}
