// Package domguard neutralizes ad elements as they enter the page and
// periodically sweeps what slipped through.
package domguard

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/domain/service"
	"github.com/bnema/adshield/internal/filtering"
	"github.com/bnema/adshield/internal/filtering/cosmetic"
)

// BlockedScriptType disables a script element without detaching it.
const BlockedScriptType = "text/blocked"

// BaitCheck reports whether an element is countermeasure bait.
type BaitCheck func(el port.Element) bool

// Guard watches one page's DOM.
type Guard struct {
	classifier *service.Classifier
	site       entity.SiteContext
	sched      port.Scheduler
	sheet      *cosmetic.Stylesheet
	cfg        Config
	logger     zerolog.Logger
	bait       BaitCheck
	onBlock    filtering.BlockHandler
	now        func() time.Time

	// selector is the stylesheet's selectors for the site as one group.
	selector string

	env      port.DOMEnv
	restores []func()
}

// Option configures a Guard.
type Option func(*Guard)

// WithConfig overrides the timings and heuristics. Zero fields keep
// their defaults.
func WithConfig(cfg Config) Option {
	return func(g *Guard) { g.cfg = cfg.withDefaults() }
}

// WithBaitCheck exempts countermeasure bait from burying.
func WithBaitCheck(fn BaitCheck) Option {
	return func(g *Guard) { g.bait = fn }
}

// WithBlockHandler registers a callback for neutralized resources.
func WithBlockHandler(h filtering.BlockHandler) Option {
	return func(g *Guard) { g.onBlock = h }
}

// WithClock replaces the wall clock used for the observer budget.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// New creates a guard for one page. sheet may be nil, in which case
// no cosmetic selectors are applied.
func New(classifier *service.Classifier, site entity.SiteContext, sched port.Scheduler, sheet *cosmetic.Stylesheet, logger zerolog.Logger, opts ...Option) *Guard {
	g := &Guard{
		classifier: classifier,
		site:       site,
		sched:      sched,
		sheet:      sheet,
		cfg:        DefaultConfig(),
		logger:     logger.With().Str("component", "domguard").Logger(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if sheet != nil {
		g.selector = strings.Join(sheet.Selectors(site), ", ")
	}
	return g
}

// SweepInterval is the sweep period for the guard's site.
func (g *Guard) SweepInterval() time.Duration {
	if g.site.IsSpecialSite {
		return g.cfg.SpecialSweepInterval
	}
	return g.cfg.SweepInterval
}

// Install hooks the element setters and node insertion, starts the
// mutation observer and the sweep, and injects the stylesheet once the
// document is ready. Hooks the page refuses are skipped; the observer
// and the sweep still cover those elements.
func (g *Guard) Install(env port.DOMEnv) error {
	if g.env != nil {
		return filtering.ErrAlreadyInstalled
	}
	g.env = env

	g.hookSetter(env, "IMG", func(v entity.Verdict) bool { return v.Blocked() })
	g.hookSetter(env, "SCRIPT", isTracker)
	g.hookSetter(env, "IFRAME", isTracker)

	if restore, err := env.InterceptInsertion(g.insertionHook); err != nil {
		g.logger.Debug().Err(err).Msg("insertion hook unavailable")
	} else {
		g.restores = append(g.restores, restore)
	}

	doc := env.Document()
	if root := doc.DocumentElement(); root != nil {
		disconnect, err := env.Observe(root, port.ObserveOptions{ChildList: true, Subtree: true}, g.observe)
		if err != nil {
			g.logger.Debug().Err(err).Msg("mutation observer unavailable")
		} else {
			g.restores = append(g.restores, disconnect)
		}
	}

	id := g.sched.SetInterval(g.Sweep, g.SweepInterval())
	g.restores = append(g.restores, func() { g.sched.ClearTimer(id) })

	doc.OnReady(func() {
		if g.env != env {
			return
		}
		g.ready(doc)
	})
	return nil
}

// Uninstall removes every hook in reverse install order.
func (g *Guard) Uninstall() {
	for i := len(g.restores) - 1; i >= 0; i-- {
		g.restores[i]()
	}
	g.restores = nil
	g.env = nil
}

func (g *Guard) ready(doc port.Document) {
	if g.sheet != nil {
		g.safely("inject stylesheet", func() {
			if _, err := g.sheet.Inject(doc, g.site); err != nil {
				g.logger.Debug().Err(err).Msg("stylesheet not injected")
			}
		})
	}
	if body := doc.Body(); body != nil {
		g.safely("initial pass", func() { g.neutralizeTree(body, nil) })
	}
	g.Sweep()
}

func isTracker(v entity.Verdict) bool { return v == entity.VerdictBlockedTracker }

func (g *Guard) hookSetter(env port.DOMEnv, tag string, blocks func(entity.Verdict) bool) {
	restore, err := env.InterceptProperty(tag, "src", func(el port.Element, value string, commit func(string) error) error {
		verdict := g.classifier.Classify(value, g.site)
		if !blocks(verdict) {
			return commit(value)
		}
		g.report(value, tag, verdict)
		if tag != "SCRIPT" {
			g.Bury(el)
		}
		g.fail(el)
		return nil
	})
	if err != nil {
		g.logger.Debug().Err(err).Str("tag", tag).Msg("src setter not hookable")
		return
	}
	g.restores = append(g.restores, restore)
}

func (g *Guard) insertionHook(parent, child port.Element, insert func() (port.Element, error)) (port.Element, error) {
	g.safely("neutralize inserted node", func() { g.neutralizeTree(child, nil) })
	return insert()
}

// observe handles one batch of mutation records within the budget.
func (g *Guard) observe(records []port.MutationRecord) {
	deadline := g.now().Add(g.cfg.ObserverBudget)
	for _, rec := range records {
		for _, el := range rec.Added {
			if g.now().After(deadline) {
				g.logger.Debug().Msg("observer budget exhausted, leaving the rest to the sweep")
				return
			}
			g.safely("observe added node", func() {
				g.neutralizeTree(el, nil)
				g.buryMatches(el, nil)
			})
		}
	}
}

// fail fires the element's error event on a later task, as a failed
// load would.
func (g *Guard) fail(el port.Element) {
	g.sched.SetTimeout(func() {
		g.safely("dispatch error", func() { el.DispatchEvent("error") })
	}, 0)
}

func (g *Guard) report(rawURL, tag string, verdict entity.Verdict) {
	g.logger.Debug().Str("url", rawURL).Str("tag", tag).Stringer("verdict", verdict).Msg("neutralized element")
	if g.onBlock != nil {
		g.onBlock(rawURL, entity.ResourceTypeFromTag(tag), verdict)
	}
}

func (g *Guard) isBait(el port.Element) bool {
	return g.bait != nil && g.bait(el)
}

// safely runs fn, logging instead of propagating a panic from page code.
func (g *Guard) safely(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Debug().Interface("panic", r).Str("op", what).Msg("dom operation failed")
		}
	}()
	fn()
}
