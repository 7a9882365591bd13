// Package netguard makes blocked page requests fail like real network errors.
package netguard

import (
	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/service"
	"github.com/bnema/adshield/internal/filtering"
)

// ErrNetwork is the error blocked fetches settle with.
var ErrNetwork = filtering.ErrNetwork

// BlockHandler is notified of every request the interceptor suppresses.
type BlockHandler = filtering.BlockHandler

// Interceptor wraps the page's fetch, XHR, beacon and window.open primitives.
type Interceptor struct {
	classifier *service.Classifier
	site       entity.SiteContext
	sched      port.Scheduler
	logger     zerolog.Logger
	onBlock    BlockHandler

	env        port.NetworkEnv
	origFetch  port.Fetcher
	origXHR    port.XHRFactory
	origBeacon port.Beacon
	origOpener port.Opener
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithBlockHandler registers a callback for suppressed requests.
func WithBlockHandler(h BlockHandler) Option {
	return func(i *Interceptor) { i.onBlock = h }
}

// New creates an interceptor for one page.
func New(classifier *service.Classifier, site entity.SiteContext, sched port.Scheduler, logger zerolog.Logger, opts ...Option) *Interceptor {
	i := &Interceptor{
		classifier: classifier,
		site:       site,
		sched:      sched,
		logger:     logger.With().Str("component", "netguard").Logger(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Blocked classifies rawURL and reports whether the request must not reach
// the network. Only tracker verdicts block; banner verdicts are cosmetic.
func (i *Interceptor) Blocked(rawURL string, rt entity.ResourceType) bool {
	verdict := i.classifier.Classify(rawURL, i.site)
	if verdict != entity.VerdictBlockedTracker {
		return false
	}
	i.logger.Debug().Str("url", rawURL).Str("type", string(rt)).Msg("blocked request")
	if i.onBlock != nil {
		i.onBlock(rawURL, rt, verdict)
	}
	return true
}

// Install swaps the wrappers into env. Primitives the page lacks are skipped.
func (i *Interceptor) Install(env port.NetworkEnv) error {
	if i.env != nil {
		return filtering.ErrAlreadyInstalled
	}
	i.env = env

	if f := env.Fetcher(); f != nil {
		i.origFetch = f
		env.SetFetcher(port.FetcherFunc(i.fetch))
	}
	if x := env.XHRFactory(); x != nil {
		i.origXHR = x
		env.SetXHRFactory(func() port.XHR {
			return &guardedXHR{XHR: x(), guard: i}
		})
	}
	if b := env.Beacon(); b != nil {
		i.origBeacon = b
		env.SetBeacon(i.beacon)
	}
	if o := env.Opener(); o != nil {
		i.origOpener = o
		env.SetOpener(i.open)
	}
	return nil
}

// Uninstall restores the original primitives.
func (i *Interceptor) Uninstall() {
	if i.env == nil {
		return
	}
	if i.origFetch != nil {
		i.env.SetFetcher(i.origFetch)
	}
	if i.origXHR != nil {
		i.env.SetXHRFactory(i.origXHR)
	}
	if i.origBeacon != nil {
		i.env.SetBeacon(i.origBeacon)
	}
	if i.origOpener != nil {
		i.env.SetOpener(i.origOpener)
	}
	i.env = nil
	i.origFetch, i.origXHR, i.origBeacon, i.origOpener = nil, nil, nil, nil
}

func (i *Interceptor) fetch(req *port.Request, done port.FetchCallback) error {
	if req != nil && i.Blocked(req.URL, entity.ResourceFetch) {
		i.sched.SetTimeout(func() { done(nil, ErrNetwork) }, 0)
		return nil
	}
	return i.origFetch.Fetch(req, done)
}

func (i *Interceptor) beacon(rawURL string, data []byte) (bool, error) {
	if i.Blocked(rawURL, entity.ResourceBeacon) {
		return true, nil
	}
	return i.origBeacon(rawURL, data)
}

func (i *Interceptor) open(rawURL, target string) (port.Window, error) {
	if rawURL == "" || i.Blocked(rawURL, entity.ResourceDocument) {
		return nil, nil
	}
	return i.origOpener(rawURL, target)
}

// guardedXHR skips the real open for blocked URLs and fails send on a later task.
type guardedXHR struct {
	port.XHR
	guard   *Interceptor
	blocked bool
}

func (x *guardedXHR) Open(method, rawURL string) error {
	x.blocked = x.guard.Blocked(rawURL, entity.ResourceXHR)
	if x.blocked {
		return nil
	}
	return x.XHR.Open(method, rawURL)
}

func (x *guardedXHR) Send(body []byte) error {
	if !x.blocked {
		return x.XHR.Send(body)
	}
	x.guard.sched.SetTimeout(func() {
		x.XHR.DispatchEvent("error")
		x.XHR.DispatchEvent("loadend")
	}, 0)
	return nil
}
