package controller

import (
	"errors"
	"io"
	"net/http"
	"progress_charts/internal/service"
	"progress_charts/internal/util"
	"progress_charts/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SurfaceController 管理渲染目标
type SurfaceController struct {
	SurfaceService *service.SurfaceService
}

func NewSurfaceController(surfaceService *service.SurfaceService) *SurfaceController {
	return &SurfaceController{SurfaceService: surfaceService}
}

// @Summary 渲染目标列表
// @Tags 渲染目标
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/surfaces [get]
func (c *SurfaceController) List(ctx *gin.Context) {
	surfaces, err := c.SurfaceService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.ListResponse{
		List:  surfaces,
		Total: len(surfaces),
	})
}

// @Summary 渲染目标详情
// @Tags 渲染目标
// @Produce json
// @Param id path string true "渲染目标ID"
// @Success 200 {object} util.Response
// @Router /api/surfaces/{id} [get]
func (c *SurfaceController) Get(ctx *gin.Context) {
	surface, err := c.SurfaceService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleSurfaceError(ctx, err)
		return
	}

	util.Success(ctx, surface)
}

// @Summary 获取渲染结果
// @Description 返回渲染目标最近一次渲染的图片
// @Tags 渲染目标
// @Produce png
// @Param id path string true "渲染目标ID"
// @Success 200 {file} binary
// @Router /api/surfaces/{id}/image [get]
func (c *SurfaceController) GetImage(ctx *gin.Context) {
	rc, contentType, err := c.SurfaceService.OpenImage(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleSurfaceError(ctx, err)
		return
	}
	defer rc.Close()

	ctx.Status(http.StatusOK)
	ctx.Header("Content-Type", contentType)
	ctx.Header("Cache-Control", "no-cache")
	if _, err := io.Copy(ctx.Writer, rc); err != nil {
		logger.Log.Warn("Failed to stream surface image",
			zap.String("surface", ctx.Param("id")),
			zap.Error(err))
	}
}

// @Summary 登记渲染目标
// @Tags 渲染目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param surface body service.RegisterSurfaceRequest true "渲染目标"
// @Success 201 {object} util.Response
// @Router /api/surfaces [post]
func (c *SurfaceController) Register(ctx *gin.Context) {
	var req service.RegisterSurfaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	surface, err := c.SurfaceService.Register(ctx.Request.Context(), req)
	if err != nil {
		handleSurfaceError(ctx, err)
		return
	}

	util.Created(ctx, surface)
}

// @Summary 删除渲染目标
// @Tags 渲染目标
// @Produce json
// @Security BearerAuth
// @Param id path string true "渲染目标ID"
// @Success 200 {object} util.Response
// @Router /api/surfaces/{id} [delete]
func (c *SurfaceController) Remove(ctx *gin.Context) {
	if err := c.SurfaceService.Remove(ctx.Request.Context(), ctx.Param("id")); err != nil {
		handleSurfaceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

func handleSurfaceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSurfaceNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrImageNotRendered):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrSurfaceExists):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidSurfaceID),
		errors.Is(err, util.ErrInvalidFormat),
		errors.Is(err, util.ErrInvalidSize):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
