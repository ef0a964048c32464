package service

import (
	"context"
	"errors"
	"fmt"
	"progress_charts/internal/model"
	"progress_charts/pkg/monitoring"
	"progress_charts/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// ChartRenderer 把一个图表画到指定的渲染目标上，返回图片地址
type ChartRenderer interface {
	Render(ctx context.Context, surfaceID string, spec model.ChartSpec) (string, error)
}

// SurfaceChecker 判断渲染目标是否存在
type SurfaceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type RenderedChart struct {
	TargetID string          `json:"targetId"`
	Kind     model.ChartKind `json:"kind"`
	ImageURL string          `json:"imageUrl"`
}

type ChartService struct {
	Renderer ChartRenderer
	Surfaces SurfaceChecker
}

func NewChartService(renderer ChartRenderer, surfaces SurfaceChecker) *ChartService {
	return &ChartService{
		Renderer: renderer,
		Surfaces: surfaces,
	}
}

// BuildConfigs 构建三个图表配置
func (s *ChartService) BuildConfigs(ctx context.Context, stats *model.StatsInput) []model.ChartSpec {
	_, span := tracing.StartSpan(ctx, "charts.build")
	defer span.End()

	specs := BuildProgressCharts(stats)
	for _, spec := range specs {
		monitoring.ChartsBuilt.WithLabelValues(string(spec.Kind)).Inc()
	}
	return specs
}

// RenderProgressCharts 构建并渲染到已存在的渲染目标上
func (s *ChartService) RenderProgressCharts(ctx context.Context, stats *model.StatsInput) ([]RenderedChart, error) {
	return s.RenderCharts(ctx, s.BuildConfigs(ctx, stats))
}

// RenderCharts 渲染目标不存在时直接跳过；某个图表失败不影响其余图表，错误合并后返回
func (s *ChartService) RenderCharts(ctx context.Context, specs []model.ChartSpec) ([]RenderedChart, error) {
	rendered := make([]RenderedChart, 0, len(specs))
	var errs []error

	for _, spec := range specs {
		exists, err := s.Surfaces.Exists(ctx, spec.TargetID)
		if err != nil {
			errs = append(errs, fmt.Errorf("lookup surface %s: %w", spec.TargetID, err))
			continue
		}
		if !exists {
			continue
		}

		url, err := s.render(ctx, spec)
		if err != nil {
			monitoring.RenderFailures.WithLabelValues(string(spec.Kind)).Inc()
			errs = append(errs, fmt.Errorf("render %s: %w", spec.TargetID, err))
			continue
		}

		rendered = append(rendered, RenderedChart{
			TargetID: spec.TargetID,
			Kind:     spec.Kind,
			ImageURL: url,
		})
	}

	return rendered, errors.Join(errs...)
}

func (s *ChartService) render(ctx context.Context, spec model.ChartSpec) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "charts.render",
		attribute.String("chart.target", spec.TargetID),
		attribute.String("chart.kind", string(spec.Kind)),
	)
	defer span.End()

	start := time.Now()
	url, err := s.Renderer.Render(ctx, spec.TargetID, spec)
	monitoring.RenderDuration.WithLabelValues(string(spec.Kind)).Observe(time.Since(start).Seconds())
	tracing.RecordError(span, err)
	return url, err
}
