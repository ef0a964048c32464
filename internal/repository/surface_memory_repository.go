package repository

import (
	"context"
	"progress_charts/internal/model"
	"progress_charts/internal/util"
	"sort"
	"sync"
	"time"
)

// MemorySurfaceRepository 进程内实现，重启后清空
type MemorySurfaceRepository struct {
	mu       sync.RWMutex
	surfaces map[string]model.Surface
}

func NewMemorySurfaceRepository() *MemorySurfaceRepository {
	return &MemorySurfaceRepository{surfaces: make(map[string]model.Surface)}
}

func (r *MemorySurfaceRepository) Create(ctx context.Context, surface *model.Surface) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.surfaces[surface.ID]; ok {
		return util.ErrSurfaceExists
	}
	now := time.Now()
	surface.CreatedAt = now
	surface.UpdatedAt = now
	r.surfaces[surface.ID] = *surface
	return nil
}

func (r *MemorySurfaceRepository) FindByID(ctx context.Context, id string) (*model.Surface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	surface, ok := r.surfaces[id]
	if !ok {
		return nil, util.ErrSurfaceNotFound
	}
	return &surface, nil
}

func (r *MemorySurfaceRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.surfaces[id]
	return ok, nil
}

func (r *MemorySurfaceRepository) List(ctx context.Context) ([]model.Surface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	surfaces := make([]model.Surface, 0, len(r.surfaces))
	for _, s := range r.surfaces {
		surfaces = append(surfaces, s)
	}
	sort.Slice(surfaces, func(i, j int) bool { return surfaces[i].ID < surfaces[j].ID })
	return surfaces, nil
}

func (r *MemorySurfaceRepository) Update(ctx context.Context, surface *model.Surface) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.surfaces[surface.ID]
	if !ok {
		return util.ErrSurfaceNotFound
	}
	surface.CreatedAt = old.CreatedAt
	surface.UpdatedAt = time.Now()
	r.surfaces[surface.ID] = *surface
	return nil
}

func (r *MemorySurfaceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.surfaces[id]; !ok {
		return util.ErrSurfaceNotFound
	}
	delete(r.surfaces, id)
	return nil
}

func (r *MemorySurfaceRepository) Ping(ctx context.Context) error {
	return nil
}
