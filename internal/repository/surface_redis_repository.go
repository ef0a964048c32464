package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"progress_charts/internal/model"
	"progress_charts/internal/util"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisSurfaceRepository 每个渲染目标存为一个 JSON 字符串，另用一个集合做索引
type RedisSurfaceRepository struct {
	Redis  *redis.Client
	Prefix string
}

func NewRedisSurfaceRepository(rdb *redis.Client, prefix string) *RedisSurfaceRepository {
	return &RedisSurfaceRepository{Redis: rdb, Prefix: prefix}
}

func (r *RedisSurfaceRepository) key(id string) string {
	return fmt.Sprintf("%s:%s", r.Prefix, id)
}

func (r *RedisSurfaceRepository) indexKey() string {
	return r.Prefix + ":index"
}

func (r *RedisSurfaceRepository) Create(ctx context.Context, surface *model.Surface) error {
	now := time.Now()
	surface.CreatedAt = now
	surface.UpdatedAt = now

	data, err := json.Marshal(surface)
	if err != nil {
		return err
	}

	ok, err := r.Redis.SetNX(ctx, r.key(surface.ID), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrSurfaceExists
	}
	return r.Redis.SAdd(ctx, r.indexKey(), surface.ID).Err()
}

func (r *RedisSurfaceRepository) FindByID(ctx context.Context, id string) (*model.Surface, error) {
	data, err := r.Redis.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return nil, util.ErrSurfaceNotFound
	}
	if err != nil {
		return nil, err
	}

	var surface model.Surface
	if err := json.Unmarshal(data, &surface); err != nil {
		return nil, err
	}
	return &surface, nil
}

func (r *RedisSurfaceRepository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.Redis.Exists(ctx, r.key(id)).Result()
	return n > 0, err
}

func (r *RedisSurfaceRepository) List(ctx context.Context) ([]model.Surface, error) {
	ids, err := r.Redis.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.Surface{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	values, err := r.Redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	surfaces := make([]model.Surface, 0, len(values))
	for _, v := range values {
		// 索引里残留但键已过期/删除
		str, ok := v.(string)
		if !ok {
			continue
		}
		var surface model.Surface
		if err := json.Unmarshal([]byte(str), &surface); err != nil {
			return nil, err
		}
		surfaces = append(surfaces, surface)
	}
	sort.Slice(surfaces, func(i, j int) bool { return surfaces[i].ID < surfaces[j].ID })
	return surfaces, nil
}

func (r *RedisSurfaceRepository) Update(ctx context.Context, surface *model.Surface) error {
	old, err := r.FindByID(ctx, surface.ID)
	if err != nil {
		return err
	}
	surface.CreatedAt = old.CreatedAt
	surface.UpdatedAt = time.Now()

	data, err := json.Marshal(surface)
	if err != nil {
		return err
	}
	ok, err := r.Redis.SetXX(ctx, r.key(surface.ID), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrSurfaceNotFound
	}
	return nil
}

func (r *RedisSurfaceRepository) Delete(ctx context.Context, id string) error {
	pipe := r.Redis.TxPipeline()
	del := pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return util.ErrSurfaceNotFound
	}
	return nil
}

func (r *RedisSurfaceRepository) Ping(ctx context.Context) error {
	return r.Redis.Ping(ctx).Err()
}
