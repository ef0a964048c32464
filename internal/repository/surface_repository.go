package repository

import (
	"context"
	"errors"
	"progress_charts/internal/model"
	"progress_charts/internal/util"

	sqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL 1062: Duplicate entry
const mysqlDuplicateEntry = 1062

// SurfaceStore 渲染目标登记表
type SurfaceStore interface {
	Create(ctx context.Context, surface *model.Surface) error
	FindByID(ctx context.Context, id string) (*model.Surface, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]model.Surface, error)
	Update(ctx context.Context, surface *model.Surface) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// SurfaceRepository MySQL 实现
type SurfaceRepository struct {
	DB *gorm.DB
}

func NewSurfaceRepository(db *gorm.DB) *SurfaceRepository {
	return &SurfaceRepository{DB: db}
}

func (r *SurfaceRepository) Create(ctx context.Context, surface *model.Surface) error {
	exists, err := r.Exists(ctx, surface.ID)
	if err != nil {
		return err
	}
	if exists {
		return util.ErrSurfaceExists
	}
	// 检查与插入之间可能有并发登记，靠主键约束兜底
	return translateCreateError(r.DB.WithContext(ctx).Create(surface).Error)
}

func translateCreateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrSurfaceExists
	}
	var myErr *sqldriver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return util.ErrSurfaceExists
	}
	return err
}

func (r *SurfaceRepository) FindByID(ctx context.Context, id string) (*model.Surface, error) {
	var surface model.Surface
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&surface).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSurfaceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &surface, nil
}

func (r *SurfaceRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Surface{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *SurfaceRepository) List(ctx context.Context) ([]model.Surface, error) {
	var surfaces []model.Surface
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&surfaces).Error
	return surfaces, err
}

func (r *SurfaceRepository) Update(ctx context.Context, surface *model.Surface) error {
	result := r.DB.WithContext(ctx).Model(&model.Surface{}).Where("id = ?", surface.ID).Updates(map[string]interface{}{
		"format":          surface.Format,
		"width":           surface.Width,
		"height":          surface.Height,
		"image_url":       surface.ImageURL,
		"rendered_format": surface.RenderedFormat,
		"rendered_at":     surface.RenderedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrSurfaceNotFound
	}
	return nil
}

func (r *SurfaceRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Surface{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrSurfaceNotFound
	}
	return nil
}

func (r *SurfaceRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
