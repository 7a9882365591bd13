package config

import (
	"fmt"
	"net"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateDatabase(config)...)
	validationErrors = append(validationErrors, validateShield(config)...)
	validationErrors = append(validationErrors, validateGuard(config)...)
	validationErrors = append(validationErrors, validateProxy(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

// Validate reports every invalid value in cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	return validateConfig(cfg)
}

func validateLogging(config *Config) []string {
	var validationErrors []string

	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q is not a known level", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json", "pretty", "":
	default:
		validationErrors = append(validationErrors, "logging.format must be one of: console, json, pretty")
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}

func validateDatabase(config *Config) []string {
	if config.Database.RetentionDays < 0 {
		return []string{"database.retention_days must be non-negative"}
	}
	return nil
}

func validateShield(config *Config) []string {
	var validationErrors []string
	s := config.Shield

	if len(s.SpecialHosts) == 0 {
		validationErrors = append(validationErrors, "shield.special_hosts must list at least one host")
	}
	for _, h := range s.SpecialHosts {
		if strings.ContainsAny(h, "/: ") {
			validationErrors = append(validationErrors, fmt.Sprintf("shield.special_hosts entry %q must be a bare host", h))
		}
	}
	if s.SiteCacheSize < 0 {
		validationErrors = append(validationErrors, "shield.site_cache_size must be non-negative")
	}
	if s.Payload.MaxDepth < 1 || s.Payload.MaxDepth > maxPayloadDepth {
		validationErrors = append(validationErrors, fmt.Sprintf("shield.payload.max_depth must be between 1 and %d", maxPayloadDepth))
	}
	for _, ep := range s.Payload.Endpoints {
		if !strings.HasPrefix(ep, "/") {
			validationErrors = append(validationErrors, fmt.Sprintf("shield.payload.endpoints entry %q must start with /", ep))
		}
	}
	if s.VideoAd.PollIntervalMs < 1 || s.VideoAd.PollIntervalMs > maxIntervalMs {
		validationErrors = append(validationErrors, fmt.Sprintf("shield.video_ad.poll_interval_ms must be between 1 and %d", maxIntervalMs))
	}
	for _, c := range s.Countermeasures.BaitClasses {
		if c == "" || strings.ContainsAny(c, " .#") {
			validationErrors = append(validationErrors, fmt.Sprintf("shield.countermeasures.bait_classes entry %q is not a class name", c))
		}
	}
	return validationErrors
}

func validateGuard(config *Config) []string {
	var validationErrors []string
	g := config.Shield.Guard

	intervals := []struct {
		key string
		ms  int
	}{
		{"shield.guard.sweep_interval_ms", g.SweepIntervalMs},
		{"shield.guard.special_sweep_interval_ms", g.SpecialSweepIntervalMs},
		{"shield.guard.observer_budget_ms", g.ObserverBudgetMs},
	}
	for _, iv := range intervals {
		if iv.ms < 1 || iv.ms > maxIntervalMs {
			validationErrors = append(validationErrors, fmt.Sprintf("%s must be between 1 and %d", iv.key, maxIntervalMs))
		}
	}
	for _, size := range g.BannerSizes {
		if size.Width <= 0 || size.Height <= 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("shield.guard.banner_sizes entry %dx%d must be positive", size.Width, size.Height))
		}
	}
	if g.BannerTolerance < 0 {
		validationErrors = append(validationErrors, "shield.guard.banner_tolerance must be non-negative")
	}
	if g.MaxLabelLength < 1 {
		validationErrors = append(validationErrors, "shield.guard.max_label_length must be positive")
	}
	return validationErrors
}

func validateProxy(config *Config) []string {
	var validationErrors []string

	if _, _, err := net.SplitHostPort(config.Proxy.Listen); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("proxy.listen %q must be host:port", config.Proxy.Listen))
	}
	if config.Proxy.MaxBodyBytes <= 0 {
		validationErrors = append(validationErrors, "proxy.max_body_bytes must be positive")
	}
	return validationErrors
}
