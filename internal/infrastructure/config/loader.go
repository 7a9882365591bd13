// Package config loads the adshield TOML configuration through viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/logging"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	configFile     string
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithConfigFile pins the manager to an explicit file instead of the
// XDG search path.
func WithConfigFile(path string) ManagerOption {
	return func(m *Manager) { m.configFile = path }
}

// NewManager creates a new configuration manager.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		viper:     viper.New(),
		callbacks: make([]func(*Config), 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	v := m.viper

	v.SetConfigType("toml")
	if m.configFile != "" {
		v.SetConfigFile(m.configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(configName, filepath.Ext(configName)))
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	// ADSHIELD_SHIELD_ENABLED, ADSHIELD_PROXY_LISTEN, ...
	v.SetEnvPrefix("ADSHIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Same variables the logging package reads before config is loaded.
	if err := v.BindEnv("logging.level", "ADSHIELD_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind ADSHIELD_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "ADSHIELD_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind ADSHIELD_LOG_FORMAT: %w", err)
	}

	return m, nil
}

// Load loads the configuration from file and environment variables.
// A missing file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.configFile == "" {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.path(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.path(),
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf(
			"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
			rereadErr,
		)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.path(),
			err,
		)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

// normalizeConfig canonicalizes user input that validation would
// otherwise reject for cosmetic reasons.
func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))

	config.Shield.SpecialHosts = normalizeHosts(config.Shield.SpecialHosts)
	config.Shield.BypassHosts = normalizeHosts(config.Shield.BypassHosts)
	config.Proxy.Listen = strings.TrimSpace(config.Proxy.Listen)
}

func normalizeHosts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, h := range in {
		h = strings.ToLower(strings.TrimSpace(h))
		h = strings.TrimPrefix(h, "www.")
		if h == "" || slices.Contains(out, h) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// Save validates cfg, writes it to disk and makes it current.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	bindConfig(cfg, m.viper.Set)

	if err := m.viper.WriteConfigAs(m.path()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	saved := *cfg
	m.config = &saved
	// The watcher sees our own write; the in-memory config is already current.
	if m.watching {
		m.skipNextReload = true
	}
	return nil
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.path()
}

func (m *Manager) path() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	if m.configFile != "" {
		return m.configFile
	}
	configFile, err := GetConfigFile()
	if err != nil {
		return configName
	}
	return configFile
}

// createDefaultConfig creates a default configuration file.
func (m *Manager) createDefaultConfig() error {
	configFile := m.path()

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}

	log := logging.NewFromEnv()
	log.Info().Str("file", configFile).Msg("created default configuration file")
	return nil
}

// setDefaults registers every key so env overrides and partial files
// resolve against the built-in values.
func (m *Manager) setDefaults() {
	bindConfig(DefaultConfig(), m.viper.SetDefault)
}

func bindConfig(cfg *Config, set func(key string, value any)) {
	setLoggingKeys(cfg, set)
	setDatabaseKeys(cfg, set)
	setShieldKeys(cfg, set)
	setGuardKeys(cfg, set)
	setProxyKeys(cfg, set)
}

func setLoggingKeys(cfg *Config, set func(string, any)) {
	set("logging.level", cfg.Logging.Level)
	set("logging.format", cfg.Logging.Format)
	set("logging.enable_file_log", cfg.Logging.EnableFileLog)
	set("logging.log_dir", cfg.Logging.LogDir)
	set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	set("logging.max_backups", cfg.Logging.MaxBackups)
	set("logging.max_age_days", cfg.Logging.MaxAgeDays)
	set("logging.compress", cfg.Logging.Compress)
}

func setDatabaseKeys(cfg *Config, set func(string, any)) {
	set("database.path", cfg.Database.Path)
	set("database.record_events", cfg.Database.RecordEvents)
	set("database.retention_days", cfg.Database.RetentionDays)
}

func setShieldKeys(cfg *Config, set func(string, any)) {
	s := cfg.Shield
	set("shield.enabled", s.Enabled)
	set("shield.special_hosts", s.SpecialHosts)
	set("shield.bypass_hosts", s.BypassHosts)
	set("shield.site_cache_size", s.SiteCacheSize)

	set("shield.rules.extra_domains", s.Rules.ExtraDomains)
	set("shield.rules.extra_paths", s.Rules.ExtraPaths)
	set("shield.rules.extra_banner_keywords", s.Rules.ExtraBannerKeywords)
	set("shield.rules.extra_allow", s.Rules.ExtraAllow)

	set("shield.payload.max_depth", s.Payload.MaxDepth)
	set("shield.payload.endpoints", s.Payload.Endpoints)

	set("shield.video_ad.enabled", s.VideoAd.Enabled)
	set("shield.video_ad.poll_interval_ms", s.VideoAd.PollIntervalMs)

	set("shield.countermeasures.enabled", s.Countermeasures.Enabled)
	set("shield.countermeasures.bait_classes", s.Countermeasures.BaitClasses)
}

func setGuardKeys(cfg *Config, set func(string, any)) {
	g := cfg.Shield.Guard
	set("shield.guard.sweep_interval_ms", g.SweepIntervalMs)
	set("shield.guard.special_sweep_interval_ms", g.SpecialSweepIntervalMs)
	set("shield.guard.observer_budget_ms", g.ObserverBudgetMs)
	set("shield.guard.banner_sizes", bannerSizeTables(g.BannerSizes))
	set("shield.guard.banner_tolerance", g.BannerTolerance)
	set("shield.guard.ad_labels", g.AdLabels)
	set("shield.guard.max_label_length", g.MaxLabelLength)
}

// bannerSizeTables flattens sizes into plain maps so viper writes them as
// an array of TOML tables.
func bannerSizeTables(sizes []entity.BannerSize) []map[string]any {
	out := make([]map[string]any, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, map[string]any{"width": s.Width, "height": s.Height})
	}
	return out
}

func setProxyKeys(cfg *Config, set func(string, any)) {
	set("proxy.listen", cfg.Proxy.Listen)
	set("proxy.mitm", cfg.Proxy.MITM)
	set("proxy.sanitize_html", cfg.Proxy.SanitizeHTML)
	set("proxy.max_body_bytes", cfg.Proxy.MaxBodyBytes)
}

// New returns a new default configuration instance.
func New() *Config {
	return DefaultConfig()
}

// Global configuration manager instance
var (
	globalManager     *Manager
	globalManagerOnce sync.Once
)

// Init initializes the global configuration manager.
func Init(opts ...ManagerOption) error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager(opts...)
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration.
func Get() *Config {
	if globalManager == nil {
		// Return defaults if not initialized
		return DefaultConfig()
	}
	return globalManager.Get()
}

// GetManager returns the global configuration manager.
func GetManager() *Manager {
	return globalManager
}
