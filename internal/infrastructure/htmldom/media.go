package htmldom

import (
	"errors"
	"fmt"
	"math"
)

// ErrRateNotSupported is returned when a playback rate exceeds the maximum.
var ErrRateNotSupported = errors.New("playback rate not supported")

// Media is the playback state of a VIDEO or AUDIO element.
type Media struct {
	currentTime float64
	duration    float64
	muted       bool
	volume      float64
	rate        float64
	paused      bool
	maxRate     float64
}

func newMedia(maxRate float64) *Media {
	return &Media{
		duration: math.NaN(),
		volume:   1,
		rate:     1,
		paused:   true,
		maxRate:  maxRate,
	}
}

// CurrentTime implements port.Media.
func (m *Media) CurrentTime() float64 { return m.currentTime }

// SetCurrentTime implements port.Media, clamping to a known duration.
func (m *Media) SetCurrentTime(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("invalid current time %v", t)
	}
	if t < 0 {
		t = 0
	}
	if !math.IsNaN(m.duration) && !math.IsInf(m.duration, 0) && t > m.duration {
		t = m.duration
	}
	m.currentTime = t
	return nil
}

// Duration implements port.Media. It is NaN until metadata is known.
func (m *Media) Duration() float64 { return m.duration }

// SetDuration sets the loaded media length.
func (m *Media) SetDuration(d float64) { m.duration = d }

// Muted implements port.Media.
func (m *Media) Muted() bool { return m.muted }

// SetMuted implements port.Media.
func (m *Media) SetMuted(muted bool) error {
	m.muted = muted
	return nil
}

// Volume implements port.Media.
func (m *Media) Volume() float64 { return m.volume }

// SetVolume implements port.Media.
func (m *Media) SetVolume(v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return fmt.Errorf("volume %v outside [0, 1]", v)
	}
	m.volume = v
	return nil
}

// PlaybackRate implements port.Media.
func (m *Media) PlaybackRate() float64 { return m.rate }

// SetPlaybackRate implements port.Media.
func (m *Media) SetPlaybackRate(rate float64) error {
	if rate <= 0 || math.IsNaN(rate) {
		return fmt.Errorf("invalid playback rate %v", rate)
	}
	if m.maxRate > 0 && rate > m.maxRate {
		return fmt.Errorf("%vx: %w", rate, ErrRateNotSupported)
	}
	m.rate = rate
	return nil
}

// Paused implements port.Media.
func (m *Media) Paused() bool { return m.paused }

// SetPaused forces the paused flag.
func (m *Media) SetPaused(paused bool) { m.paused = paused }

// Play implements port.Media.
func (m *Media) Play() error {
	m.paused = false
	return nil
}
