package domguard

import (
	"time"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/rules"
)

const (
	DefaultSweepInterval        = 200 * time.Millisecond
	DefaultSpecialSweepInterval = 100 * time.Millisecond
	DefaultObserverBudget       = 5 * time.Millisecond
	DefaultBannerTolerance      = 5.0
	DefaultMaxLabelLength       = 30
)

// Config holds the guard's timings and heuristics.
type Config struct {
	// SweepInterval is the sweep period on generic sites.
	SweepInterval time.Duration
	// SpecialSweepInterval is the sweep period on the special site.
	SpecialSweepInterval time.Duration
	// ObserverBudget bounds the wall-clock time of one observer callback.
	// Elements left over are handled by the next sweep.
	ObserverBudget time.Duration

	BannerSizes     []entity.BannerSize
	BannerTolerance float64

	// AdLabels are matched against the whole lower-cased text of short
	// div and span elements.
	AdLabels       []string
	MaxLabelLength int
}

// DefaultConfig returns the built-in guard configuration.
func DefaultConfig() Config {
	return Config{
		SweepInterval:        DefaultSweepInterval,
		SpecialSweepInterval: DefaultSpecialSweepInterval,
		ObserverBudget:       DefaultObserverBudget,
		BannerSizes:          entity.DefaultBannerSizes(),
		BannerTolerance:      DefaultBannerTolerance,
		AdLabels:             append([]string(nil), rules.AdLabels...),
		MaxLabelLength:       DefaultMaxLabelLength,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SweepInterval <= 0 {
		c.SweepInterval = d.SweepInterval
	}
	if c.SpecialSweepInterval <= 0 {
		c.SpecialSweepInterval = d.SpecialSweepInterval
	}
	if c.ObserverBudget <= 0 {
		c.ObserverBudget = d.ObserverBudget
	}
	if c.BannerSizes == nil {
		c.BannerSizes = d.BannerSizes
	}
	if c.BannerTolerance <= 0 {
		c.BannerTolerance = d.BannerTolerance
	}
	if c.AdLabels == nil {
		c.AdLabels = d.AdLabels
	}
	if c.MaxLabelLength <= 0 {
		c.MaxLabelLength = d.MaxLabelLength
	}
	return c
}
