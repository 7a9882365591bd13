package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/application/usecase"
	"github.com/bnema/adshield/internal/domain/entity"
	repomocks "github.com/bnema/adshield/internal/domain/repository/mocks"
)

func TestBlockStatsUseCase_Execute(t *testing.T) {
	t.Run("all time with defaults", func(t *testing.T) {
		repo := repomocks.NewMockBlockEventRepository(t)
		stats := &entity.BlockStats{Total: 3, Trackers: 2, Banners: 1}
		repo.EXPECT().Stats(mock.Anything, time.Time{}, usecase.DefaultTopHosts).Return(stats, nil)

		out, err := usecase.NewBlockStatsUseCase(repo).Execute(testContext(), usecase.StatsInput{})

		require.NoError(t, err)
		assert.Same(t, stats, out.Stats)
		assert.True(t, out.Since.IsZero())
		assert.Empty(t, out.Recent)
	})

	t.Run("window and recent events", func(t *testing.T) {
		repo := repomocks.NewMockBlockEventRepository(t)
		repo.EXPECT().Stats(mock.Anything, mock.MatchedBy(func(since time.Time) bool {
			return time.Since(since) >= 24*time.Hour && time.Since(since) < 25*time.Hour
		}), 5).Return(&entity.BlockStats{}, nil)
		repo.EXPECT().Recent(mock.Anything, 3).Return([]*entity.BlockEvent{{URL: trackerURL}}, nil)

		out, err := usecase.NewBlockStatsUseCase(repo).Execute(testContext(), usecase.StatsInput{
			Since:  24 * time.Hour,
			Top:    5,
			Recent: 3,
		})

		require.NoError(t, err)
		require.Len(t, out.Recent, 1)
		assert.False(t, out.Since.IsZero())
	})

	t.Run("repository error", func(t *testing.T) {
		repo := repomocks.NewMockBlockEventRepository(t)
		repo.EXPECT().Stats(mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		_, err := usecase.NewBlockStatsUseCase(repo).Execute(testContext(), usecase.StatsInput{})
		assert.Error(t, err)
	})
}

func TestBlockStatsUseCase_Prune(t *testing.T) {
	t.Run("zero retention keeps everything", func(t *testing.T) {
		removed, err := usecase.NewBlockStatsUseCase(repomocks.NewMockBlockEventRepository(t)).Prune(testContext(), 0)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("deletes older events", func(t *testing.T) {
		repo := repomocks.NewMockBlockEventRepository(t)
		repo.EXPECT().Prune(mock.Anything, mock.MatchedBy(func(before time.Time) bool {
			age := time.Since(before)
			return age > 29*24*time.Hour && age < 31*24*time.Hour
		})).Return(int64(42), nil)

		removed, err := usecase.NewBlockStatsUseCase(repo).Prune(testContext(), 30)
		require.NoError(t, err)
		assert.Equal(t, int64(42), removed)
	})
}
