package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/repository"
	"github.com/bnema/adshield/internal/infrastructure/persistence/sqlite/sqlc"
	"github.com/bnema/adshield/internal/logging"
)

type siteBypassRepo struct {
	queries *sqlc.Queries
}

// NewSiteBypassRepository creates a SQLite-backed site bypass repository.
func NewSiteBypassRepository(db *sql.DB) repository.SiteBypassRepository {
	return &siteBypassRepo{queries: sqlc.New(db)}
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
}

func (r *siteBypassRepo) Add(ctx context.Context, bypass *entity.SiteBypass) error {
	if bypass == nil {
		return fmt.Errorf("site bypass is nil")
	}
	host := normalizeHost(bypass.Host)
	if host == "" {
		return fmt.Errorf("site bypass host is required")
	}
	if bypass.CreatedAt.IsZero() {
		bypass.CreatedAt = time.Now()
	}
	bypass.Host = host

	logging.FromContext(ctx).Debug().Str("host", host).Msg("disabling shield for site")
	return r.queries.UpsertSiteBypass(ctx, sqlc.UpsertSiteBypassParams{
		Host:      host,
		Reason:    bypass.Reason,
		CreatedAt: bypass.CreatedAt.UnixMilli(),
	})
}

func (r *siteBypassRepo) Remove(ctx context.Context, host string) error {
	return r.queries.DeleteSiteBypass(ctx, normalizeHost(host))
}

// Contains checks host and each parent domain.
func (r *siteBypassRepo) Contains(ctx context.Context, host string) (bool, error) {
	host = normalizeHost(host)
	for host != "" {
		count, err := r.queries.CountSiteBypass(ctx, host)
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
		i := strings.IndexByte(host, '.')
		if i < 0 {
			break
		}
		host = host[i+1:]
	}
	return false, nil
}

func (r *siteBypassRepo) GetAll(ctx context.Context) ([]*entity.SiteBypass, error) {
	rows, err := r.queries.ListSiteBypass(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.SiteBypass, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.SiteBypass{
			Host:      row.Host,
			Reason:    row.Reason,
			CreatedAt: time.UnixMilli(row.CreatedAt),
		})
	}
	return out, nil
}
