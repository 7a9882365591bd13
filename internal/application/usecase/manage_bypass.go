package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/repository"
	urlutil "github.com/bnema/adshield/internal/domain/url"
	"github.com/bnema/adshield/internal/logging"
)

// ManageBypassUseCase maintains the list of sites where the shield is off.
type ManageBypassUseCase struct {
	repo repository.SiteBypassRepository
	now  func() time.Time
}

// NewManageBypassUseCase creates a new ManageBypassUseCase.
func NewManageBypassUseCase(repo repository.SiteBypassRepository) *ManageBypassUseCase {
	return &ManageBypassUseCase{repo: repo, now: time.Now}
}

// Add disables the shield on host. host may be a bare hostname or a URL.
func (uc *ManageBypassUseCase) Add(ctx context.Context, host, reason string) (*entity.SiteBypass, error) {
	h, err := bypassHost(host)
	if err != nil {
		return nil, err
	}
	bypass := &entity.SiteBypass{
		Host:      h,
		Reason:    strings.TrimSpace(reason),
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Add(ctx, bypass); err != nil {
		return nil, fmt.Errorf("failed to add bypass for %s: %w", h, err)
	}
	logging.FromContext(ctx).Info().Str("host", h).Msg("shield disabled for site")
	return bypass, nil
}

// Remove re-enables the shield on host.
func (uc *ManageBypassUseCase) Remove(ctx context.Context, host string) error {
	h, err := bypassHost(host)
	if err != nil {
		return err
	}
	if err := uc.repo.Remove(ctx, h); err != nil {
		return fmt.Errorf("failed to remove bypass for %s: %w", h, err)
	}
	logging.FromContext(ctx).Info().Str("host", h).Msg("shield enabled for site")
	return nil
}

// List returns every bypassed site, newest first.
func (uc *ManageBypassUseCase) List(ctx context.Context) ([]*entity.SiteBypass, error) {
	return uc.repo.GetAll(ctx)
}

// IsBypassed reports whether the shield is off for host or a parent domain.
func (uc *ManageBypassUseCase) IsBypassed(ctx context.Context, host string) (bool, error) {
	h, err := bypassHost(host)
	if err != nil {
		return false, err
	}
	return uc.repo.Contains(ctx, h)
}

func bypassHost(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("host is required")
	}
	host := raw
	if u := urlutil.Normalize(raw); urlutil.HasScheme(u) {
		host = entity.HostOf(u)
	}
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSuffix(host, ".")), "www.")
	if host == "" || strings.ContainsAny(host, "/ ") {
		return "", fmt.Errorf("invalid host %q", raw)
	}
	return host, nil
}
