package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/repository"
	"github.com/bnema/adshield/internal/infrastructure/persistence/sqlite/sqlc"
	"github.com/bnema/adshield/internal/logging"
)

type blockEventRepo struct {
	queries *sqlc.Queries
	now     func() time.Time
}

// NewBlockEventRepository creates a SQLite-backed block event repository.
func NewBlockEventRepository(db *sql.DB) repository.BlockEventRepository {
	return &blockEventRepo{queries: sqlc.New(db), now: time.Now}
}

func (r *blockEventRepo) Record(ctx context.Context, event *entity.BlockEvent) error {
	if event == nil {
		return fmt.Errorf("block event is nil")
	}
	if err := event.Validate(); err != nil {
		return err
	}
	if event.Host == "" {
		event.Host = entity.HostOf(event.URL)
	}
	if event.ResourceType == "" {
		event.ResourceType = entity.ResourceOther
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now()
	}

	id, err := r.queries.InsertBlockEvent(ctx, sqlc.InsertBlockEventParams{
		Url:          event.URL,
		Host:         event.Host,
		PageHost:     event.PageHost,
		Verdict:      event.Verdict.String(),
		ResourceType: string(event.ResourceType),
		Source:       string(event.Source),
		CreatedAt:    event.CreatedAt.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to record block event: %w", err)
	}
	event.ID = id
	logging.FromContext(ctx).Debug().Int64("id", id).Str("host", event.Host).Msg("block event recorded")
	return nil
}

func (r *blockEventRepo) Stats(ctx context.Context, since time.Time, limit int) (*entity.BlockStats, error) {
	counts, err := r.queries.CountBlockEventsByVerdict(ctx, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to count block events: %w", err)
	}

	stats := &entity.BlockStats{TopHosts: []entity.HostCount{}}
	for _, c := range counts {
		stats.Total += c.Count
		switch v, _ := entity.ParseVerdict(c.Verdict); v {
		case entity.VerdictBlockedTracker:
			stats.Trackers += c.Count
		case entity.VerdictBlockedBanner:
			stats.Banners += c.Count
		}
	}

	if limit > 0 {
		hosts, err := r.queries.TopBlockedHosts(ctx, sqlc.TopBlockedHostsParams{
			CreatedAt: since.UnixMilli(),
			Limit:     int64(limit),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to rank blocked hosts: %w", err)
		}
		for _, h := range hosts {
			stats.TopHosts = append(stats.TopHosts, entity.HostCount{Host: h.Host, Count: h.Count})
		}
	}
	return stats, nil
}

func (r *blockEventRepo) Recent(ctx context.Context, limit int) ([]*entity.BlockEvent, error) {
	rows, err := r.queries.RecentBlockEvents(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list block events: %w", err)
	}
	out := make([]*entity.BlockEvent, 0, len(rows))
	for _, row := range rows {
		verdict, _ := entity.ParseVerdict(row.Verdict)
		out = append(out, &entity.BlockEvent{
			ID:           row.ID,
			URL:          row.Url,
			Host:         row.Host,
			PageHost:     row.PageHost,
			Verdict:      verdict,
			ResourceType: entity.ResourceType(row.ResourceType),
			Source:       entity.BlockSource(row.Source),
			CreatedAt:    time.UnixMilli(row.CreatedAt),
		})
	}
	return out, nil
}

func (r *blockEventRepo) Prune(ctx context.Context, before time.Time) (int64, error) {
	n, err := r.queries.DeleteBlockEventsBefore(ctx, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune block events: %w", err)
	}
	return n, nil
}
