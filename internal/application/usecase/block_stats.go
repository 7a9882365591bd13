package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/repository"
	"github.com/bnema/adshield/internal/logging"
)

const (
	DefaultTopHosts     = 10
	DefaultRecentEvents = 20
)

// BlockStatsUseCase reports and prunes recorded block events.
type BlockStatsUseCase struct {
	repo repository.BlockEventRepository
	now  func() time.Time
}

// NewBlockStatsUseCase creates a new BlockStatsUseCase.
func NewBlockStatsUseCase(repo repository.BlockEventRepository) *BlockStatsUseCase {
	return &BlockStatsUseCase{repo: repo, now: time.Now}
}

// StatsInput selects the reporting window.
type StatsInput struct {
	// Since is how far back to look; zero means all events.
	Since time.Duration
	// Top bounds the per-host ranking.
	Top int
	// Recent is how many latest events to include.
	Recent int
}

// StatsOutput is the aggregated report.
type StatsOutput struct {
	Stats  *entity.BlockStats
	Recent []*entity.BlockEvent
	Since  time.Time
}

// Execute builds the report.
func (uc *BlockStatsUseCase) Execute(ctx context.Context, input StatsInput) (*StatsOutput, error) {
	if input.Top <= 0 {
		input.Top = DefaultTopHosts
	}
	if input.Recent < 0 {
		input.Recent = 0
	}

	var since time.Time
	if input.Since > 0 {
		since = uc.now().Add(-input.Since)
	}

	stats, err := uc.repo.Stats(ctx, since, input.Top)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate block events: %w", err)
	}

	out := &StatsOutput{Stats: stats, Since: since}
	if input.Recent > 0 {
		out.Recent, err = uc.repo.Recent(ctx, input.Recent)
		if err != nil {
			return nil, fmt.Errorf("failed to list recent block events: %w", err)
		}
	}
	return out, nil
}

// Prune deletes events older than retentionDays. Zero keeps everything.
func (uc *BlockStatsUseCase) Prune(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := uc.now().AddDate(0, 0, -retentionDays)
	removed, err := uc.repo.Prune(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune block events: %w", err)
	}
	if removed > 0 {
		logging.FromContext(ctx).Info().Int64("removed", removed).Time("before", cutoff).Msg("pruned block events")
	}
	return removed, nil
}
