package repository

import (
	"context"
	"progress_charts/internal/model"
	"progress_charts/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySurfaceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySurfaceRepository()

	require.NoError(t, repo.Create(ctx, &model.Surface{ID: "mastery-chart", Format: model.FormatPNG, Width: 400, Height: 300}))
	require.NoError(t, repo.Create(ctx, &model.Surface{ID: "daily-words-chart", Format: model.FormatSVG, Width: 800, Height: 400}))

	err := repo.Create(ctx, &model.Surface{ID: "mastery-chart"})
	assert.ErrorIs(t, err, util.ErrSurfaceExists)

	exists, err := repo.Exists(ctx, "mastery-chart")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "learning-trend-chart")
	require.NoError(t, err)
	assert.False(t, exists)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "daily-words-chart", list[0].ID)
	assert.Equal(t, "mastery-chart", list[1].ID)

	s, err := repo.FindByID(ctx, "mastery-chart")
	require.NoError(t, err)
	created := s.CreatedAt
	s.ImageURL = "/uploads/charts/mastery-chart.png"
	require.NoError(t, repo.Update(ctx, s))

	s, err = repo.FindByID(ctx, "mastery-chart")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/charts/mastery-chart.png", s.ImageURL)
	assert.Equal(t, created, s.CreatedAt)

	assert.ErrorIs(t, repo.Update(ctx, &model.Surface{ID: "missing"}), util.ErrSurfaceNotFound)

	require.NoError(t, repo.Delete(ctx, "mastery-chart"))
	assert.ErrorIs(t, repo.Delete(ctx, "mastery-chart"), util.ErrSurfaceNotFound)

	_, err = repo.FindByID(ctx, "mastery-chart")
	assert.ErrorIs(t, err, util.ErrSurfaceNotFound)
}

func TestMemorySurfaceRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySurfaceRepository()
	require.NoError(t, repo.Create(ctx, &model.Surface{ID: "mastery-chart", Width: 400, Height: 300}))

	s, err := repo.FindByID(ctx, "mastery-chart")
	require.NoError(t, err)
	s.Width = 1

	again, err := repo.FindByID(ctx, "mastery-chart")
	require.NoError(t, err)
	assert.Equal(t, 400, again.Width)
}
