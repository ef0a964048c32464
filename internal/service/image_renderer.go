package service

import (
	"bytes"
	"context"
	"fmt"
	"progress_charts/internal/model"
	"progress_charts/internal/repository"
	"progress_charts/pkg/chartrender"
	"progress_charts/pkg/logger"
	"progress_charts/pkg/monitoring"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ImageRenderer 用 go-chart 画图，存到对象存储，并记录到渲染目标上
type ImageRenderer struct {
	Surfaces repository.SurfaceStore
	Storage  StorageProvider

	mu       sync.RWMutex
	defaults chartrender.Settings
}

func NewImageRenderer(surfaces repository.SurfaceStore, storage StorageProvider, defaults chartrender.Settings) *ImageRenderer {
	return &ImageRenderer{
		Surfaces: surfaces,
		Storage:  storage,
		defaults: defaults,
	}
}

// SetDefaults 配置热更新时替换默认尺寸、格式和字体
func (r *ImageRenderer) SetDefaults(s chartrender.Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults = s
}

func (r *ImageRenderer) Defaults() chartrender.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults
}

func (r *ImageRenderer) Render(ctx context.Context, surfaceID string, spec model.ChartSpec) (string, error) {
	surface, err := r.Surfaces.FindByID(ctx, surfaceID)
	if err != nil {
		return "", err
	}

	// 登记时的格式保持不变，未指定时下次渲染仍跟随默认值
	settings := r.settingsFor(surface)

	var buf bytes.Buffer
	if err := chartrender.Draw(&buf, spec, settings); err != nil {
		return "", fmt.Errorf("draw: %w", err)
	}

	name := model.ImageObjectName(surface.ID, settings.Format)
	url, err := r.Storage.Upload(ctx, name, &buf, int64(buf.Len()), chartrender.ContentType(settings.Format))
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	stale := ""
	if surface.ImageURL != "" && surface.OutputFormat() != settings.Format {
		stale = surface.ImageName()
	}

	now := time.Now()
	surface.ImageURL = url
	surface.RenderedFormat = settings.Format
	surface.RenderedAt = &now
	if err := r.Surfaces.Update(ctx, surface); err != nil {
		return "", err
	}

	if stale != "" {
		if err := r.Storage.Delete(ctx, stale); err != nil {
			logger.Log.Warn("Failed to delete previous surface image",
				zap.String("surface", surface.ID),
				zap.String("object", stale),
				zap.Error(err))
		}
	}

	monitoring.ChartsRendered.WithLabelValues(string(spec.Kind), string(settings.Format)).Inc()
	return url, nil
}

// settingsFor 渲染目标未指定的属性取默认值
func (r *ImageRenderer) settingsFor(surface *model.Surface) chartrender.Settings {
	s := r.Defaults()
	if surface.Format != "" {
		s.Format = surface.Format
	}
	if surface.Width > 0 {
		s.Width = surface.Width
	}
	if surface.Height > 0 {
		s.Height = surface.Height
	}
	return s
}
