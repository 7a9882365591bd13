package usecase

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/repository"
	"github.com/bnema/adshield/internal/domain/service"
	"github.com/bnema/adshield/internal/filtering"
	"github.com/bnema/adshield/internal/logging"
)

const (
	// DefaultSiteCacheSize bounds the per-site bypass lookup cache.
	DefaultSiteCacheSize = 4096
	// siteCacheTTL bounds how stale a cached bypass answer may be, so
	// `bypass add` from another process reaches a running proxy.
	siteCacheTTL = 30 * time.Second
)

type siteEntry struct {
	bypassed bool
	expires  time.Time
}

// FilterRequestUseCase is the network-layer hook: it classifies requests
// outside the page realm and cancels trackers.
type FilterRequestUseCase struct {
	classifier   *service.Classifier
	specialHosts []string
	source       entity.BlockSource

	once   *filtering.BypassRegistry
	sites  repository.SiteBypassRepository
	events repository.BlockEventRepository
	cache  *lru.Cache
	now    func() time.Time
}

// FilterRequestOption configures a FilterRequestUseCase.
type FilterRequestOption func(*FilterRequestUseCase)

// WithOneTimeBypass lets requests armed in reg through once.
func WithOneTimeBypass(reg *filtering.BypassRegistry) FilterRequestOption {
	return func(uc *FilterRequestUseCase) { uc.once = reg }
}

// WithSiteBypass consults repo for pages on which the shield is disabled.
func WithSiteBypass(repo repository.SiteBypassRepository, cacheSize int) FilterRequestOption {
	return func(uc *FilterRequestUseCase) {
		uc.sites = repo
		if cacheSize <= 0 {
			cacheSize = DefaultSiteCacheSize
		}
		// lru.New only fails on a non-positive size.
		uc.cache, _ = lru.New(cacheSize)
	}
}

// WithEventRecorder persists every canceled request.
func WithEventRecorder(repo repository.BlockEventRepository) FilterRequestOption {
	return func(uc *FilterRequestUseCase) { uc.events = repo }
}

// WithBlockSource tags recorded events (default entity.SourceProxy).
func WithBlockSource(src entity.BlockSource) FilterRequestOption {
	return func(uc *FilterRequestUseCase) { uc.source = src }
}

// WithFilterClock replaces the time source used for events and cache expiry.
func WithFilterClock(now func() time.Time) FilterRequestOption {
	return func(uc *FilterRequestUseCase) { uc.now = now }
}

// NewFilterRequestUseCase creates the network-layer hook.
func NewFilterRequestUseCase(classifier *service.Classifier, specialHosts []string, opts ...FilterRequestOption) *FilterRequestUseCase {
	uc := &FilterRequestUseCase{
		classifier:   classifier,
		specialHosts: append([]string(nil), specialHosts...),
		source:       entity.SourceProxy,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ShouldCancel reports whether req must not reach the network. Only
// tracker verdicts cancel; banner verdicts are left to the page guard.
func (uc *FilterRequestUseCase) ShouldCancel(ctx context.Context, req entity.InterceptedRequest) bool {
	log := logging.FromContext(ctx)

	if uc.once != nil && uc.once.Consume(req.RawURL) {
		log.Debug().Str("url", req.RawURL).Msg("one-time bypass consumed")
		return false
	}

	pageHost := entity.HostOf(req.Referrer)
	if pageHost == "" {
		pageHost = entity.HostOf(req.RawURL)
	}
	if uc.siteBypassed(ctx, pageHost) {
		return false
	}

	site := entity.NewSiteContext(pageHost, entity.ReadyStateComplete, uc.specialHosts)
	verdict := uc.classifier.Classify(req.RawURL, site)
	if verdict != entity.VerdictBlockedTracker {
		return false
	}

	log.Debug().
		Str("url", req.RawURL).
		Str("page_host", pageHost).
		Str("type", string(req.ResourceType)).
		Msg("request canceled")
	uc.record(ctx, req, pageHost, verdict)
	return true
}

func (uc *FilterRequestUseCase) siteBypassed(ctx context.Context, host string) bool {
	if uc.sites == nil || host == "" {
		return false
	}
	now := uc.now()
	if v, ok := uc.cache.Get(host); ok {
		if entry, ok := v.(siteEntry); ok && now.Before(entry.expires) {
			return entry.bypassed
		}
	}

	bypassed, err := uc.sites.Contains(ctx, host)
	if err != nil {
		// Fail closed: keep filtering when the list is unreadable.
		logging.FromContext(ctx).Warn().Err(err).Str("host", host).Msg("site bypass lookup failed")
		return false
	}
	uc.cache.Add(host, siteEntry{bypassed: bypassed, expires: now.Add(siteCacheTTL)})
	return bypassed
}

// ForgetSites drops cached bypass answers.
func (uc *FilterRequestUseCase) ForgetSites() {
	if uc.cache != nil {
		uc.cache.Purge()
	}
}

func (uc *FilterRequestUseCase) record(ctx context.Context, req entity.InterceptedRequest, pageHost string, verdict entity.Verdict) {
	if uc.events == nil {
		return
	}
	event := &entity.BlockEvent{
		URL:          req.RawURL,
		Host:         entity.HostOf(req.RawURL),
		PageHost:     pageHost,
		Verdict:      verdict,
		ResourceType: req.ResourceType,
		Source:       uc.source,
		CreatedAt:    uc.now(),
	}
	if err := uc.events.Record(ctx, event); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("url", req.RawURL).Msg("failed to record block event")
	}
}
