package service

import (
	"context"
	"io"
	"progress_charts/internal/model"
	"progress_charts/internal/repository"
	"progress_charts/internal/util"
	"progress_charts/pkg/chartrender"
	"progress_charts/pkg/logger"
	"regexp"

	"go.uber.org/zap"
)

var surfaceIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)

// RegisterSurfaceRequest 登记渲染目标，格式和尺寸留空时渲染时取默认值
type RegisterSurfaceRequest struct {
	ID     string            `json:"id" binding:"required"`
	Format model.ImageFormat `json:"format"`
	Width  int               `json:"width"`
	Height int               `json:"height"`
}

type SurfaceService struct {
	Repo    repository.SurfaceStore
	Storage StorageProvider
}

func NewSurfaceService(repo repository.SurfaceStore, storage StorageProvider) *SurfaceService {
	return &SurfaceService{
		Repo:    repo,
		Storage: storage,
	}
}

func (s *SurfaceService) Register(ctx context.Context, req RegisterSurfaceRequest) (*model.Surface, error) {
	if !surfaceIDPattern.MatchString(req.ID) {
		return nil, util.ErrInvalidSurfaceID
	}
	switch req.Format {
	case "", model.FormatPNG, model.FormatSVG:
	default:
		return nil, util.ErrInvalidFormat
	}
	if !validSize(req.Width) || !validSize(req.Height) {
		return nil, util.ErrInvalidSize
	}

	surface := &model.Surface{
		ID:     req.ID,
		Format: req.Format,
		Width:  req.Width,
		Height: req.Height,
	}
	if err := s.Repo.Create(ctx, surface); err != nil {
		return nil, err
	}
	return surface, nil
}

func (s *SurfaceService) Get(ctx context.Context, id string) (*model.Surface, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *SurfaceService) List(ctx context.Context) ([]model.Surface, error) {
	return s.Repo.List(ctx)
}

// Remove 删除登记记录，同时清理已渲染的图片
func (s *SurfaceService) Remove(ctx context.Context, id string) error {
	surface, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	if surface.ImageURL != "" {
		if err := s.Storage.Delete(ctx, surface.ImageName()); err != nil {
			// 图片残留不影响删除结果
			logger.Log.Warn("Failed to delete surface image",
				zap.String("surface", id),
				zap.Error(err))
		}
	}
	return nil
}

// OpenImage 返回最近一次渲染的图片及其 Content-Type
func (s *SurfaceService) OpenImage(ctx context.Context, id string) (io.ReadCloser, string, error) {
	surface, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if surface.ImageURL == "" {
		return nil, "", util.ErrImageNotRendered
	}

	rc, err := s.Storage.Open(ctx, surface.ImageName())
	if err != nil {
		return nil, "", err
	}

	return rc, chartrender.ContentType(surface.OutputFormat()), nil
}

// 0 表示使用默认尺寸
func validSize(v int) bool {
	return v == 0 || (v >= util.MinSurfaceSize && v <= util.MaxSurfaceSize)
}
