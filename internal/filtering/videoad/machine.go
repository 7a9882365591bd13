// Package videoad skips inline video ads on the special site.
package videoad

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/filtering"
	"github.com/bnema/adshield/internal/filtering/domguard"
	"github.com/bnema/adshield/internal/filtering/rules"
)

// DefaultPollInterval is how often the player is checked for an ad.
const DefaultPollInterval = 50 * time.Millisecond

// endSlack is how close to the end an ad counts as finished.
const endSlack = 0.5

// State is the ad state of the player.
type State int

const (
	NoAd State = iota
	AdShowing
)

func (s State) String() string {
	if s == AdShowing {
		return "ad_showing"
	}
	return "no_ad"
}

// playback is the user's media state captured when an ad starts.
type playback struct {
	muted  bool
	volume float64
	rate   float64
}

// Machine tracks the player's ad state and gets ads out of the way:
// skip control, then the player's skipAd, then a jump to the end, then
// mute and acceleration. Leaving the ad restores the captured playback.
type Machine struct {
	sched  port.Scheduler
	logger zerolog.Logger
	poll   time.Duration

	env      port.DOMEnv
	restores []func()

	state    State
	video    port.Element
	captured *playback

	observed  port.Element
	unobserve func()
	adMarkers string
}

// Option configures a Machine.
type Option func(*Machine)

// WithPollInterval overrides DefaultPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.poll = d
		}
	}
}

// New creates a machine in the NoAd state.
func New(sched port.Scheduler, logger zerolog.Logger, opts ...Option) *Machine {
	m := &Machine{
		sched:     sched,
		logger:    logger.With().Str("component", "videoad").Logger(),
		poll:      DefaultPollInterval,
		adMarkers: strings.Join(rules.AdMarkerSelectors, ", "),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Install starts polling the page and watching the player's class.
func (m *Machine) Install(env port.DOMEnv) error {
	if m.env != nil {
		return filtering.ErrAlreadyInstalled
	}
	m.env = env
	id := m.sched.SetInterval(m.Check, m.poll)
	m.restores = append(m.restores, func() { m.sched.ClearTimer(id) })
	m.Check()
	return nil
}

// Uninstall stops the machine. Playback captured for a running ad is
// restored.
func (m *Machine) Uninstall() {
	if m.state == AdShowing {
		m.exit()
	}
	for i := len(m.restores) - 1; i >= 0; i-- {
		m.restores[i]()
	}
	m.restores = nil
	if m.unobserve != nil {
		m.unobserve()
		m.unobserve, m.observed = nil, nil
	}
	m.env = nil
}

// Check evaluates the player once and runs the transition it implies.
func (m *Machine) Check() {
	if m.env == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Debug().Interface("panic", r).Msg("video ad check failed")
		}
	}()

	doc := m.env.Document()
	player, _ := doc.QuerySelector(rules.PlayerSelector)
	m.watch(player)

	if !m.adShowing(doc, player) {
		if m.state == AdShowing {
			m.exit()
		}
		return
	}
	if m.state == NoAd {
		m.state = AdShowing
		m.logger.Debug().Msg("ad started")
	}
	m.handle(doc, player)
}

// watch observes the player's class so transitions do not wait for the
// next poll.
func (m *Machine) watch(player port.Element) {
	if player == m.observed {
		return
	}
	if m.unobserve != nil {
		m.unobserve()
		m.unobserve = nil
	}
	m.observed = player
	if player == nil {
		return
	}
	disconnect, err := m.env.Observe(player, port.ObserveOptions{
		Attributes:      true,
		AttributeFilter: []string{"class"},
	}, func([]port.MutationRecord) { m.Check() })
	if err != nil {
		m.logger.Debug().Err(err).Msg("player observer unavailable")
		return
	}
	m.unobserve = disconnect
}

func (m *Machine) adShowing(doc port.Document, player port.Element) bool {
	if player != nil {
		for _, class := range rules.AdShowingClasses {
			if player.HasClass(class) {
				return true
			}
		}
	}
	marker, err := doc.QuerySelector(m.adMarkers)
	return err == nil && marker != nil
}

func (m *Machine) findVideo(doc port.Document, player port.Element) port.Element {
	if player != nil {
		if v, err := player.QuerySelector(rules.VideoSelector); err == nil && v != nil {
			return v
		}
	}
	v, _ := doc.QuerySelector(rules.VideoSelector)
	return v
}

func (m *Machine) handle(doc port.Document, player port.Element) {
	m.closeOverlays(doc)

	video := m.findVideo(doc, player)
	var media port.Media
	if video != nil {
		media, _ = video.Media()
	}
	if media != nil && m.captured == nil {
		m.video = video
		m.captured = &playback{muted: media.Muted(), volume: media.Volume(), rate: media.PlaybackRate()}
	}

	if m.clickSkip(doc) || m.callSkipAd(player) {
		return
	}
	if media == nil {
		return
	}
	if d := media.Duration(); d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0) {
		if media.CurrentTime() < d-endSlack {
			if err := media.SetCurrentTime(d); err != nil {
				m.logger.Debug().Err(err).Msg("failed to seek past ad")
			}
		}
		return
	}
	m.accelerate(media)
}

func (m *Machine) clickSkip(doc port.Document) bool {
	buttons, err := doc.QuerySelectorAll(rules.SkipButtonSelector)
	if err != nil {
		return false
	}
	for _, b := range buttons {
		if !available(b) {
			continue
		}
		if err := b.Click(); err != nil {
			m.logger.Debug().Err(err).Msg("skip click failed")
			continue
		}
		return true
	}
	return false
}

func (m *Machine) callSkipAd(player port.Element) bool {
	if player == nil {
		return false
	}
	if _, err := player.Call("skipAd"); err != nil {
		if !errors.Is(err, port.ErrNoMethod) {
			m.logger.Debug().Err(err).Msg("player skipAd failed")
		}
		return false
	}
	return true
}

func (m *Machine) accelerate(media port.Media) {
	if !media.Muted() {
		if err := media.SetMuted(true); err != nil {
			m.logger.Debug().Err(err).Msg("failed to mute ad")
		}
	}
	for _, rate := range rules.AccelerationRates {
		if media.PlaybackRate() == rate {
			return
		}
		if err := media.SetPlaybackRate(rate); err == nil {
			return
		}
	}
}

func (m *Machine) closeOverlays(doc port.Document) {
	buttons, err := doc.QuerySelectorAll(rules.OverlayCloseSelector)
	if err != nil {
		return
	}
	for _, b := range buttons {
		if err := b.Click(); err != nil {
			m.logger.Debug().Err(err).Msg("overlay close failed")
		}
	}
}

// exit restores the captured playback and returns to NoAd.
func (m *Machine) exit() {
	if m.captured != nil && m.video != nil {
		if media, ok := m.video.Media(); ok {
			m.restore(media, *m.captured)
		}
	}
	m.state = NoAd
	m.captured = nil
	m.video = nil
	m.logger.Debug().Msg("ad ended")
}

func (m *Machine) restore(media port.Media, p playback) {
	if err := media.SetPlaybackRate(p.rate); err != nil {
		m.logger.Debug().Err(err).Msg("failed to restore playback rate")
	}
	if err := media.SetVolume(p.volume); err != nil {
		m.logger.Debug().Err(err).Msg("failed to restore volume")
	}
	if err := media.SetMuted(p.muted); err != nil {
		m.logger.Debug().Err(err).Msg("failed to restore mute")
	}
}

// available reports whether the player shows el. Ancestors buried by
// the guard do not count: they hide the ad, not the control.
func available(el port.Element) bool {
	if _, disabled := el.Attr("disabled"); disabled {
		return false
	}
	for p := el; p != nil; p = p.Parent() {
		if domguard.Buried(p) {
			return true
		}
		if _, hidden := p.Attr("hidden"); hidden {
			return false
		}
		st := p.Style()
		if strings.EqualFold(st.Property("display"), "none") || strings.EqualFold(st.Property("visibility"), "hidden") {
			return false
		}
	}
	return true
}
