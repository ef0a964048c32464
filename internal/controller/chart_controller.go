package controller

import (
	"errors"
	"io"
	"progress_charts/internal/model"
	"progress_charts/internal/service"
	"progress_charts/internal/util"

	"github.com/gin-gonic/gin"
)

// ChartController 处理学习进度图表的API请求
type ChartController struct {
	ChartService *service.ChartService
}

func NewChartController(chartService *service.ChartService) *ChartController {
	return &ChartController{ChartService: chartService}
}

// ChartConfigItem 单个图表的 Chart.js 配置
type ChartConfigItem struct {
	TargetID string              `json:"targetId"`
	Kind     model.ChartKind     `json:"kind"`
	Config   model.ChartJSConfig `json:"config"`
}

// @Summary 默认图表配置
// @Description 未提供统计数据时使用的三个图表配置
// @Tags 图表
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/charts/defaults [get]
func (c *ChartController) GetDefaults(ctx *gin.Context) {
	specs := c.ChartService.BuildConfigs(ctx.Request.Context(), nil)
	util.Success(ctx, toConfigItems(specs))
}

// @Summary 生成图表配置
// @Description 根据学习统计生成每日单词、掌握情况、学习趋势三个图表配置
// @Tags 图表
// @Accept json
// @Produce json
// @Param stats body model.StatsInput false "学习统计"
// @Success 200 {object} util.Response
// @Router /api/charts/configs [post]
func (c *ChartController) BuildConfigs(ctx *gin.Context) {
	stats, ok := bindStats(ctx)
	if !ok {
		return
	}

	specs := c.ChartService.BuildConfigs(ctx.Request.Context(), stats)
	util.Success(ctx, toConfigItems(specs))
}

// @Summary 渲染图表
// @Description 把三个图表渲染到已登记的渲染目标上，未登记的目标直接跳过
// @Tags 图表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param stats body model.StatsInput false "学习统计"
// @Success 200 {object} util.Response
// @Router /api/charts/render [post]
func (c *ChartController) Render(ctx *gin.Context) {
	stats, ok := bindStats(ctx)
	if !ok {
		return
	}

	rendered, err := c.ChartService.RenderProgressCharts(ctx.Request.Context(), stats)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.ListResponse{
		List:  rendered,
		Total: len(rendered),
	})
}

// bindStats 空请求体视为空统计
func bindStats(ctx *gin.Context) (*model.StatsInput, bool) {
	var stats model.StatsInput
	if err := ctx.ShouldBindJSON(&stats); err != nil && !errors.Is(err, io.EOF) {
		util.BadRequest(ctx, err.Error())
		return nil, false
	}

	if err := service.ValidateStats(&stats); err != nil {
		util.BadRequest(ctx, err.Error())
		return nil, false
	}
	return &stats, true
}

func toConfigItems(specs []model.ChartSpec) []ChartConfigItem {
	items := make([]ChartConfigItem, len(specs))
	for i, spec := range specs {
		items[i] = ChartConfigItem{
			TargetID: spec.TargetID,
			Kind:     spec.Kind,
			Config:   spec.ChartJS(),
		}
	}
	return items
}
