package cli

import (
	"context"
	"sync/atomic"

	"github.com/bnema/adshield/internal/application/usecase"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/payload"
	"github.com/bnema/adshield/internal/infrastructure/config"
	"github.com/bnema/adshield/internal/infrastructure/proxy"
)

type proxyRuntime struct {
	enabled  bool
	filter   *usecase.FilterRequestUseCase
	payload  *payload.Sanitizer
	sanitize *usecase.SanitizeDocumentUseCase
}

// LiveShield serves the proxy hooks from the latest configuration. A
// reload swaps the whole engine at once; in-flight requests finish on
// the engine they started with.
type LiveShield struct {
	current atomic.Pointer[proxyRuntime]
	build   func(*config.Config) *proxyRuntime
}

var (
	_ proxy.RequestFilter    = (*LiveShield)(nil)
	_ proxy.PayloadSanitizer = (*LiveShield)(nil)
	_ proxy.HTMLSanitizer    = (*LiveShield)(nil)
)

// LiveShield returns proxy hooks built from the app's configuration.
func (a *App) LiveShield() *LiveShield {
	l := &LiveShield{
		build: func(cfg *config.Config) *proxyRuntime {
			shield := NewShield(cfg, a.logger)
			var injectOpts []usecase.InjectOption
			injectOpts = append(injectOpts, usecase.WithSiteBypassList(a.Sites))
			filterOpts := []usecase.FilterRequestOption{
				usecase.WithSiteBypass(a.Sites, cfg.Shield.SiteCacheSize),
				usecase.WithBlockSource(entity.SourceProxy),
			}
			if cfg.Database.RecordEvents {
				filterOpts = append(filterOpts, usecase.WithEventRecorder(a.Events))
			}
			inject := usecase.NewInjectShieldUseCase(shield.Classifier, shield.Stylesheet, shield.Registry, shield.Payload, shield.Settings, injectOpts...)
			return &proxyRuntime{
				enabled:  cfg.Shield.Enabled,
				filter:   usecase.NewFilterRequestUseCase(shield.Classifier, cfg.Shield.SpecialHosts, filterOpts...),
				payload:  shield.Payload,
				sanitize: usecase.NewSanitizeDocumentUseCase(shield.Classifier, shield.Stylesheet, shield.Payload, shield.Settings, inject),
			}
		},
	}
	l.Reload(a.Config)
	return l
}

// Reload rebuilds the engine from cfg.
func (l *LiveShield) Reload(cfg *config.Config) {
	l.current.Store(l.build(cfg))
}

// ShouldCancel implements proxy.RequestFilter.
func (l *LiveShield) ShouldCancel(ctx context.Context, req entity.InterceptedRequest) bool {
	rt := l.current.Load()
	if !rt.enabled {
		return false
	}
	return rt.filter.ShouldCancel(ctx, req)
}

// IsPlayerEndpoint implements proxy.PayloadSanitizer.
func (l *LiveShield) IsPlayerEndpoint(rawURL string) bool {
	return l.current.Load().payload.IsPlayerEndpoint(rawURL)
}

// SanitizeBody implements proxy.PayloadSanitizer.
func (l *LiveShield) SanitizeBody(raw []byte) ([]byte, bool) {
	rt := l.current.Load()
	if !rt.enabled {
		return raw, false
	}
	return rt.payload.SanitizeBody(raw)
}

// SanitizeHTML implements proxy.HTMLSanitizer.
func (l *LiveShield) SanitizeHTML(ctx context.Context, pageURL string, body []byte) ([]byte, bool, error) {
	return l.current.Load().sanitize.SanitizeHTML(ctx, pageURL, body)
}
