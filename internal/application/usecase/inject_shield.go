package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/repository"
	"github.com/bnema/adshield/internal/domain/service"
	urlutil "github.com/bnema/adshield/internal/domain/url"
	"github.com/bnema/adshield/internal/filtering"
	"github.com/bnema/adshield/internal/filtering/cosmetic"
	"github.com/bnema/adshield/internal/filtering/countermeasure"
	"github.com/bnema/adshield/internal/filtering/domguard"
	"github.com/bnema/adshield/internal/filtering/netguard"
	"github.com/bnema/adshield/internal/filtering/payload"
	"github.com/bnema/adshield/internal/filtering/videoad"
	"github.com/bnema/adshield/internal/logging"
)

// ShieldSettings is the per-process shield configuration.
type ShieldSettings struct {
	Enabled      bool
	SpecialHosts []string
	// BypassHosts are matched as substrings of the lower-cased page URL.
	BypassHosts []string

	Guard          domguard.Config
	VideoAd        bool
	VideoAdOptions []videoad.Option

	Countermeasures bool
	BaitClasses     []string
}

// InjectInput is one page handed to the shield. Any of the environments
// may be nil when the host cannot provide it; the matching components
// are skipped.
type InjectInput struct {
	URL        string
	ReadyState entity.ReadyState
	DOM        port.DOMEnv
	Network    port.NetworkEnv
	Realm      port.Realm
	Scheduler  port.Scheduler
}

// InjectShieldUseCase installs the page shield components in order:
// network interceptor, DOM guard (and the video ad machine on the
// special site), countermeasures, then the payload hooks.
type InjectShieldUseCase struct {
	classifier *service.Classifier
	sheet      *cosmetic.Stylesheet
	registry   *countermeasure.Registry
	payload    *payload.Sanitizer
	settings   ShieldSettings

	sites  repository.SiteBypassRepository
	events repository.BlockEventRepository
}

// InjectOption configures an InjectShieldUseCase.
type InjectOption func(*InjectShieldUseCase)

// WithSiteBypassList skips pages whose host is in repo.
func WithSiteBypassList(repo repository.SiteBypassRepository) InjectOption {
	return func(uc *InjectShieldUseCase) { uc.sites = repo }
}

// WithBlockEvents records what the page components block.
func WithBlockEvents(repo repository.BlockEventRepository) InjectOption {
	return func(uc *InjectShieldUseCase) { uc.events = repo }
}

// NewInjectShieldUseCase creates the injection orchestrator.
func NewInjectShieldUseCase(
	classifier *service.Classifier,
	sheet *cosmetic.Stylesheet,
	registry *countermeasure.Registry,
	sanitizer *payload.Sanitizer,
	settings ShieldSettings,
	opts ...InjectOption,
) *InjectShieldUseCase {
	uc := &InjectShieldUseCase{
		classifier: classifier,
		sheet:      sheet,
		registry:   registry,
		payload:    sanitizer,
		settings:   settings,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Inject installs the shield into one page. Pages the shield must not
// touch get an inactive session whose Err explains why.
func (uc *InjectShieldUseCase) Inject(ctx context.Context, input InjectInput) (*Session, error) {
	site := entity.SiteFromURL(input.URL, input.ReadyState, uc.settings.SpecialHosts)
	sess := newSession(site)
	ctx = logging.WithSession(logging.WithURL(ctx, input.URL), sess.ID)
	log := logging.FromContext(ctx)

	if reason := uc.skipReason(ctx, input.URL, site); reason != nil {
		log.Debug().Err(reason).Msg("shield not installed")
		sess.err = reason
		return sess, nil
	}
	if input.Scheduler == nil {
		return nil, fmt.Errorf("inject %s: scheduler is required", input.URL)
	}

	logger := log.With().Str("host", site.Hostname).Logger()
	onBlock := uc.blockHandler(ctx, sess, site)

	if input.Network != nil {
		ng := netguard.New(uc.classifier, site, input.Scheduler, logger, netguard.WithBlockHandler(onBlock))
		if err := ng.Install(input.Network); err != nil {
			sess.Close()
			return nil, fmt.Errorf("failed to install network interceptor: %w", err)
		}
		sess.onClose(ng.Uninstall)
	}

	var installer *countermeasure.Installer
	if uc.settings.Countermeasures && uc.registry != nil {
		var opts []countermeasure.InstallerOption
		if len(uc.settings.BaitClasses) > 0 {
			opts = append(opts, countermeasure.WithBaitClasses(uc.settings.BaitClasses))
		}
		installer = countermeasure.NewInstaller(uc.registry, logger, opts...)
	}

	if input.DOM != nil {
		guardOpts := []domguard.Option{
			domguard.WithConfig(uc.settings.Guard),
			domguard.WithBlockHandler(onBlock),
		}
		if installer != nil {
			guardOpts = append(guardOpts, domguard.WithBaitCheck(installer.IsBait))
		}
		guard := domguard.New(uc.classifier, site, input.Scheduler, uc.sheet, logger, guardOpts...)
		if err := guard.Install(input.DOM); err != nil {
			sess.Close()
			return nil, fmt.Errorf("failed to install dom guard: %w", err)
		}
		sess.setGuard(guard)
		sess.onClose(guard.Uninstall)

		if site.IsSpecialSite && uc.settings.VideoAd {
			machine := videoad.New(input.Scheduler, logger, uc.settings.VideoAdOptions...)
			if err := machine.Install(input.DOM); err != nil {
				sess.Close()
				return nil, fmt.Errorf("failed to install video ad machine: %w", err)
			}
			sess.onClose(machine.Uninstall)
		}
	}

	if installer != nil {
		var doc port.Document
		if input.DOM != nil {
			doc = input.DOM.Document()
		}
		// Partial stub failures leave the rest of the catalog in place.
		if err := installer.Install(input.Realm, doc, site); err != nil {
			log.Debug().Err(err).Msg("some countermeasures not installed")
		}
	}

	if site.IsSpecialSite && uc.payload != nil {
		uc.installPayloadHooks(ctx, sess, input)
	}

	sess.activate()
	log.Debug().Bool("special", site.IsSpecialSite).Msg("shield installed")
	return sess, nil
}

func (uc *InjectShieldUseCase) installPayloadHooks(ctx context.Context, sess *Session, input InjectInput) {
	log := logging.FromContext(ctx)

	if env := input.Network; env != nil {
		if prev := env.Fetcher(); prev != nil {
			env.SetFetcher(uc.payload.FetchHook(prev))
			sess.onClose(func() { env.SetFetcher(prev) })
		}
		if prev := env.XHRFactory(); prev != nil {
			env.SetXHRFactory(uc.payload.XHRHook(prev))
			sess.onClose(func() { env.SetXHRFactory(prev) })
		}
	}
	if input.Realm != nil {
		if err := uc.payload.TrapGlobals(input.Realm); err != nil {
			log.Debug().Err(err).Msg("player globals not trapped")
		}
	}
}

func (uc *InjectShieldUseCase) skipReason(ctx context.Context, rawURL string, site entity.SiteContext) error {
	if !uc.settings.Enabled {
		return filtering.ErrShieldDisabled
	}
	if urlutil.IsLocalScheme(rawURL) {
		return fmt.Errorf("%w: %s page", filtering.ErrShieldDisabled, urlutil.Scheme(rawURL))
	}
	lower := strings.ToLower(strings.TrimSpace(rawURL))
	for _, h := range uc.settings.BypassHosts {
		if h != "" && strings.Contains(lower, h) {
			return fmt.Errorf("%w: bypass host %s", filtering.ErrShieldDisabled, h)
		}
	}
	if uc.sites != nil && site.Hostname != "" {
		bypassed, err := uc.sites.Contains(ctx, site.Hostname)
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("site bypass lookup failed")
		} else if bypassed {
			return fmt.Errorf("%w: site bypass for %s", filtering.ErrShieldDisabled, site.Hostname)
		}
	}
	return nil
}

func (uc *InjectShieldUseCase) blockHandler(ctx context.Context, sess *Session, site entity.SiteContext) filtering.BlockHandler {
	recordCtx := context.WithoutCancel(ctx)
	return func(rawURL string, rt entity.ResourceType, verdict entity.Verdict) {
		sess.countBlock()
		if uc.events == nil {
			return
		}
		event := &entity.BlockEvent{
			URL:          rawURL,
			Host:         entity.HostOf(rawURL),
			PageHost:     site.Hostname,
			Verdict:      verdict,
			ResourceType: rt,
			Source:       entity.SourcePage,
		}
		if err := uc.events.Record(recordCtx, event); err != nil {
			logging.FromContext(recordCtx).Warn().Err(err).Str("url", rawURL).Msg("failed to record block event")
		}
	}
}

// Session is one installed shield. Close tears the components down in
// reverse install order.
type Session struct {
	ID   string
	Site entity.SiteContext

	mu       sync.Mutex
	active   bool
	err      error
	guard    *domguard.Guard
	teardown []func()
	blocked  int
}

func newSession(site entity.SiteContext) *Session {
	return &Session{ID: uuid.NewString(), Site: site}
}

func (s *Session) onClose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardown = append(s.teardown, fn)
}

func (s *Session) setGuard(g *domguard.Guard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guard = g
}

func (s *Session) activate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
}

func (s *Session) countBlock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked++
}

// Active reports whether the shield is installed.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Err is why an inactive session was skipped. It wraps
// filtering.ErrShieldDisabled.
func (s *Session) Err() error {
	return s.err
}

// Blocked is the number of requests and elements blocked so far.
func (s *Session) Blocked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocked
}

// Sweep runs one DOM guard pass immediately.
func (s *Session) Sweep() {
	s.mu.Lock()
	guard := s.guard
	s.mu.Unlock()
	if guard != nil {
		guard.Sweep()
	}
}

// Close uninstalls every component. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	teardown := s.teardown
	s.teardown = nil
	s.active = false
	s.guard = nil
	s.mu.Unlock()

	for i := len(teardown) - 1; i >= 0; i-- {
		teardown[i]()
	}
}

// IsSkipped reports whether err marks a page the shield left alone.
func IsSkipped(err error) bool {
	return errors.Is(err, filtering.ErrShieldDisabled)
}
