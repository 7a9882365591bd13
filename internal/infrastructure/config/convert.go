package config

import (
	"time"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/domguard"
	"github.com/bnema/adshield/internal/filtering/payload"
	"github.com/bnema/adshield/internal/filtering/rules"
	"github.com/bnema/adshield/internal/filtering/videoad"
	"github.com/bnema/adshield/internal/infrastructure/proxy"
	"github.com/bnema/adshield/internal/logging"
)

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// RuleSet returns the built-in rules merged with the configured extras.
func (c *Config) RuleSet() *entity.RuleSet {
	return rules.Default().Merge(entity.RuleTables{
		Domains:        c.Shield.Rules.ExtraDomains,
		Paths:          c.Shield.Rules.ExtraPaths,
		BannerKeywords: c.Shield.Rules.ExtraBannerKeywords,
		Allow:          c.Shield.Rules.ExtraAllow,
	})
}

// GuardConfig maps the guard section onto domguard.Config.
func (c *Config) GuardConfig() domguard.Config {
	g := c.Shield.Guard
	return domguard.Config{
		SweepInterval:        millis(g.SweepIntervalMs),
		SpecialSweepInterval: millis(g.SpecialSweepIntervalMs),
		ObserverBudget:       millis(g.ObserverBudgetMs),
		BannerSizes:          append([]entity.BannerSize(nil), g.BannerSizes...),
		BannerTolerance:      g.BannerTolerance,
		AdLabels:             append([]string(nil), g.AdLabels...),
		MaxLabelLength:       g.MaxLabelLength,
	}
}

// PayloadOptions returns the payload sanitizer options.
func (c *Config) PayloadOptions() []payload.Option {
	return []payload.Option{
		payload.WithMaxDepth(c.Shield.Payload.MaxDepth),
		payload.WithEndpoints(c.Shield.Payload.Endpoints),
	}
}

// VideoAdOptions returns the video ad machine options.
func (c *Config) VideoAdOptions() []videoad.Option {
	return []videoad.Option{videoad.WithPollInterval(millis(c.Shield.VideoAd.PollIntervalMs))}
}

// ProxyConfig maps the proxy section onto proxy.Config.
func (c *Config) ProxyConfig() proxy.Config {
	return proxy.Config{
		Listen:       c.Proxy.Listen,
		MITM:         c.Proxy.MITM,
		SanitizeHTML: c.Proxy.SanitizeHTML,
		MaxBodyBytes: c.Proxy.MaxBodyBytes,
	}
}

// LoggerConfig maps the logging section onto the logging package.
func (c *Config) LoggerConfig() (logging.Config, logging.FileConfig) {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.Logging.Level)
	if c.Logging.Format != "" {
		cfg.Format = c.Logging.Format
	}
	return cfg, logging.FileConfig{
		Enabled:       c.Logging.EnableFileLog,
		LogDir:        c.Logging.LogDir,
		MaxSizeMB:     c.Logging.MaxSizeMB,
		MaxBackups:    c.Logging.MaxBackups,
		MaxAgeDays:    c.Logging.MaxAgeDays,
		Compress:      c.Logging.Compress,
		WriteToStderr: true,
	}
}
