package repository

import (
	"context"
	"time"

	"github.com/bnema/adshield/internal/domain/entity"
)

// SiteBypassRepository persists page hosts on which the shield is disabled.
type SiteBypassRepository interface {
	// Add disables the shield for host (idempotent).
	Add(ctx context.Context, bypass *entity.SiteBypass) error

	// Remove re-enables the shield for host.
	Remove(ctx context.Context, host string) error

	// Contains reports whether host or one of its parent domains is bypassed.
	Contains(ctx context.Context, host string) (bool, error)

	// GetAll lists every bypass, newest first.
	GetAll(ctx context.Context) ([]*entity.SiteBypass, error)
}

// BlockEventRepository persists blocked requests for statistics.
type BlockEventRepository interface {
	// Record stores one event and fills its ID.
	Record(ctx context.Context, event *entity.BlockEvent) error

	// Stats aggregates events created at or after since; limit bounds TopHosts.
	Stats(ctx context.Context, since time.Time, limit int) (*entity.BlockStats, error)

	// Recent returns the latest events, newest first.
	Recent(ctx context.Context, limit int) ([]*entity.BlockEvent, error)

	// Prune deletes events older than before and returns how many were removed.
	Prune(ctx context.Context, before time.Time) (int64, error)
}
