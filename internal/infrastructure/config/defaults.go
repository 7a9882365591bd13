package config

import (
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/domguard"
	"github.com/bnema/adshield/internal/filtering/payload"
	"github.com/bnema/adshield/internal/filtering/rules"
	"github.com/bnema/adshield/internal/filtering/videoad"
	"github.com/bnema/adshield/internal/infrastructure/proxy"
)

// Default configuration constants
const (
	// Logging defaults
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultMaxLogSizeMB  = 10
	defaultMaxLogBackups = 3
	defaultMaxLogAgeDays = 7 // days

	// Database defaults
	defaultRetentionDays = 30

	// Shield defaults
	defaultSiteCacheSize = 4096

	// Upper bounds accepted by validation
	maxIntervalMs   = 60_000
	maxPayloadDepth = 64
)

// getDefaultLogDir returns the default log directory, falls back to empty string on error
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *Config {
	guard := domguard.DefaultConfig()

	return &Config{
		Logging: LoggingConfig{
			Level:         defaultLogLevel,
			Format:        defaultLogFormat,
			EnableFileLog: false,
			LogDir:        getDefaultLogDir(),
			MaxSizeMB:     defaultMaxLogSizeMB,
			MaxBackups:    defaultMaxLogBackups,
			MaxAgeDays:    defaultMaxLogAgeDays,
			Compress:      true,
		},
		Database: DatabaseConfig{
			Path:          "",
			RecordEvents:  true,
			RetentionDays: defaultRetentionDays,
		},
		Shield: ShieldConfig{
			Enabled:       true,
			SpecialHosts:  append([]string(nil), rules.DefaultSpecialHosts...),
			BypassHosts:   append([]string(nil), rules.DefaultBypassHosts...),
			SiteCacheSize: defaultSiteCacheSize,
			Rules: RulesConfig{
				ExtraDomains:        []string{},
				ExtraPaths:          []string{},
				ExtraBannerKeywords: []string{},
				ExtraAllow:          []string{},
			},
			Guard: GuardConfig{
				SweepIntervalMs:        int(guard.SweepInterval.Milliseconds()),
				SpecialSweepIntervalMs: int(guard.SpecialSweepInterval.Milliseconds()),
				ObserverBudgetMs:       int(guard.ObserverBudget.Milliseconds()),
				BannerSizes:            entity.DefaultBannerSizes(),
				BannerTolerance:        guard.BannerTolerance,
				AdLabels:               guard.AdLabels,
				MaxLabelLength:         guard.MaxLabelLength,
			},
			Payload: PayloadConfig{
				MaxDepth:  payload.DefaultMaxDepth,
				Endpoints: append([]string(nil), rules.PlayerEndpoints...),
			},
			VideoAd: VideoAdConfig{
				Enabled:        true,
				PollIntervalMs: int(videoad.DefaultPollInterval.Milliseconds()),
			},
			Countermeasures: CountermeasureConfig{
				Enabled:     true,
				BaitClasses: append([]string(nil), rules.BaitClasses...),
			},
		},
		Proxy: ProxyConfig{
			Listen:       proxy.DefaultListen,
			MITM:         false,
			SanitizeHTML: false,
			MaxBodyBytes: proxy.DefaultMaxBodyBytes,
		},
	}
}
