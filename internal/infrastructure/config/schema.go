package config

import "github.com/bnema/adshield/internal/domain/entity"

// Config represents the complete configuration for adshield.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database" toml:"database" json:"database"`
	// Shield controls the classifier and the in-page guards.
	Shield ShieldConfig `mapstructure:"shield" yaml:"shield" toml:"shield" json:"shield"`
	// Proxy controls the process-level filtering proxy.
	Proxy ProxyConfig `mapstructure:"proxy" yaml:"proxy" toml:"proxy" json:"proxy"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,enum=pretty"`

	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" json:"max_backups"`
	MaxAgeDays    int    `mapstructure:"max_age_days" yaml:"max_age_days" toml:"max_age_days" json:"max_age_days"`
	Compress      bool   `mapstructure:"compress" yaml:"compress" toml:"compress" json:"compress"`
}

// DatabaseConfig holds the block event store settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path" toml:"path" json:"path"`
	// RecordEvents stores every blocked request for the stats command.
	RecordEvents bool `mapstructure:"record_events" yaml:"record_events" toml:"record_events" json:"record_events"`
	// RetentionDays prunes older events on startup (0 keeps everything).
	RetentionDays int `mapstructure:"retention_days" yaml:"retention_days" toml:"retention_days" json:"retention_days"`
}

// ShieldConfig controls classification and page-level enforcement.
type ShieldConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	// SpecialHosts get the video-ad handling and payload sanitization.
	SpecialHosts []string `mapstructure:"special_hosts" yaml:"special_hosts" toml:"special_hosts" json:"special_hosts"`
	// BypassHosts are hosts (or host substrings) where the shield never installs.
	BypassHosts []string `mapstructure:"bypass_hosts" yaml:"bypass_hosts" toml:"bypass_hosts" json:"bypass_hosts"`
	// SiteCacheSize bounds the cache of per-site bypass lookups.
	SiteCacheSize int `mapstructure:"site_cache_size" yaml:"site_cache_size" toml:"site_cache_size" json:"site_cache_size"`

	Rules           RulesConfig          `mapstructure:"rules" yaml:"rules" toml:"rules" json:"rules"`
	Guard           GuardConfig          `mapstructure:"guard" yaml:"guard" toml:"guard" json:"guard"`
	Payload         PayloadConfig        `mapstructure:"payload" yaml:"payload" toml:"payload" json:"payload"`
	VideoAd         VideoAdConfig        `mapstructure:"video_ad" yaml:"video_ad" toml:"video_ad" json:"video_ad"`
	Countermeasures CountermeasureConfig `mapstructure:"countermeasures" yaml:"countermeasures" toml:"countermeasures" json:"countermeasures"`
}

// RulesConfig extends the built-in rule tables. Entries are merged with
// the defaults, never replacing them.
type RulesConfig struct {
	ExtraDomains        []string `mapstructure:"extra_domains" yaml:"extra_domains" toml:"extra_domains" json:"extra_domains"`
	ExtraPaths          []string `mapstructure:"extra_paths" yaml:"extra_paths" toml:"extra_paths" json:"extra_paths"`
	ExtraBannerKeywords []string `mapstructure:"extra_banner_keywords" yaml:"extra_banner_keywords" toml:"extra_banner_keywords" json:"extra_banner_keywords"`
	ExtraAllow          []string `mapstructure:"extra_allow" yaml:"extra_allow" toml:"extra_allow" json:"extra_allow"`
}

// GuardConfig tunes the DOM guard.
type GuardConfig struct {
	SweepIntervalMs        int `mapstructure:"sweep_interval_ms" yaml:"sweep_interval_ms" toml:"sweep_interval_ms" json:"sweep_interval_ms"`
	SpecialSweepIntervalMs int `mapstructure:"special_sweep_interval_ms" yaml:"special_sweep_interval_ms" toml:"special_sweep_interval_ms" json:"special_sweep_interval_ms"`
	ObserverBudgetMs       int `mapstructure:"observer_budget_ms" yaml:"observer_budget_ms" toml:"observer_budget_ms" json:"observer_budget_ms"`

	BannerSizes     []entity.BannerSize `mapstructure:"banner_sizes" yaml:"banner_sizes" toml:"banner_sizes" json:"banner_sizes"`
	BannerTolerance float64             `mapstructure:"banner_tolerance" yaml:"banner_tolerance" toml:"banner_tolerance" json:"banner_tolerance"`

	AdLabels       []string `mapstructure:"ad_labels" yaml:"ad_labels" toml:"ad_labels" json:"ad_labels"`
	MaxLabelLength int      `mapstructure:"max_label_length" yaml:"max_label_length" toml:"max_label_length" json:"max_label_length"`
}

// PayloadConfig tunes the player payload sanitizer.
type PayloadConfig struct {
	MaxDepth  int      `mapstructure:"max_depth" yaml:"max_depth" toml:"max_depth" json:"max_depth"`
	Endpoints []string `mapstructure:"endpoints" yaml:"endpoints" toml:"endpoints" json:"endpoints"`
}

// VideoAdConfig tunes the in-player ad state machine.
type VideoAdConfig struct {
	Enabled        bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	PollIntervalMs int  `mapstructure:"poll_interval_ms" yaml:"poll_interval_ms" toml:"poll_interval_ms" json:"poll_interval_ms"`
}

// CountermeasureConfig controls detector stubs and bait elements.
type CountermeasureConfig struct {
	Enabled     bool     `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	BaitClasses []string `mapstructure:"bait_classes" yaml:"bait_classes" toml:"bait_classes" json:"bait_classes"`
}

// ProxyConfig controls the filtering proxy.
type ProxyConfig struct {
	Listen string `mapstructure:"listen" yaml:"listen" toml:"listen" json:"listen"`
	// MITM intercepts TLS tunnels so HTTPS responses can be sanitized.
	MITM         bool  `mapstructure:"mitm" yaml:"mitm" toml:"mitm" json:"mitm"`
	SanitizeHTML bool  `mapstructure:"sanitize_html" yaml:"sanitize_html" toml:"sanitize_html" json:"sanitize_html"`
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" json:"max_body_bytes"`
}
