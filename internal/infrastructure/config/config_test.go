package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/filtering/domguard"
	"github.com/bnema/adshield/internal/filtering/payload"
	"github.com/bnema/adshield/internal/infrastructure/proxy"
)

func newTestManager(t *testing.T, content string) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), configName)
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), filePerm))
	}
	mgr, err := NewManager(WithConfigFile(path))
	require.NoError(t, err)
	return mgr, path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestSetDefaults_RegistersKeys(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.True(t, mgr.viper.GetBool("shield.enabled"))
	assert.Equal(t, proxy.DefaultListen, mgr.viper.GetString("proxy.listen"))
	assert.Equal(t, 5, mgr.viper.GetInt("shield.guard.observer_budget_ms"))
}

func TestManager_LoadCreatesDefaultFile(t *testing.T) {
	mgr, path := newTestManager(t, "")
	require.NoError(t, mgr.Load())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "#:schema ./config.schema.json")
	assert.Contains(t, string(raw), "banner_sizes")

	cfg := mgr.Get()
	assert.True(t, cfg.Shield.Enabled)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, domguard.DefaultConfig(), cfg.GuardConfig())
	assert.Equal(t, path, mgr.GetConfigFile())
}

func TestManager_LoadReadsOverrides(t *testing.T) {
	mgr, _ := newTestManager(t, `
[shield]
enabled = false
special_hosts = ["WWW.Video.Example", " video.example ", "short.example"]

[shield.rules]
extra_domains = ["adnet.test"]

[shield.guard]
observer_budget_ms = 8

[[shield.guard.banner_sizes]]
width = 320
height = 50

[proxy]
listen = "127.0.0.1:9999"
sanitize_html = true
`)
	require.NoError(t, mgr.Load())
	cfg := mgr.Get()

	assert.False(t, cfg.Shield.Enabled)
	assert.Equal(t, []string{"video.example", "short.example"}, cfg.Shield.SpecialHosts)
	assert.Contains(t, cfg.RuleSet().Domains(), "adnet.test")
	assert.Contains(t, cfg.RuleSet().Domains(), "doubleclick.net", "extras merge with the built-in table")

	guard := cfg.GuardConfig()
	assert.Equal(t, 8*time.Millisecond, guard.ObserverBudget)
	require.Len(t, guard.BannerSizes, 1)
	assert.Equal(t, 320, guard.BannerSizes[0].Width)
	assert.Equal(t, domguard.DefaultSweepInterval, guard.SweepInterval, "unset keys fall back to defaults")

	assert.Equal(t, proxy.Config{
		Listen:       "127.0.0.1:9999",
		SanitizeHTML: true,
		MaxBodyBytes: proxy.DefaultMaxBodyBytes,
	}, cfg.ProxyConfig())
}

func TestManager_EnvOverrides(t *testing.T) {
	t.Setenv("ADSHIELD_PROXY_LISTEN", "127.0.0.1:7000")
	t.Setenv("ADSHIELD_LOG_LEVEL", "debug")

	mgr, _ := newTestManager(t, "")
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "127.0.0.1:7000", cfg.Proxy.Listen)
	assert.Equal(t, "debug", cfg.Logging.Level)

	logCfg, fileCfg := cfg.LoggerConfig()
	assert.Equal(t, zerolog.DebugLevel, logCfg.Level)
	assert.False(t, fileCfg.Enabled)
}

func TestManager_LoadRejectsInvalidValues(t *testing.T) {
	mgr, _ := newTestManager(t, `
[proxy]
listen = "nowhere"
max_body_bytes = 0

[shield.payload]
max_depth = 0
`)
	err := mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proxy.listen")
	assert.Contains(t, err.Error(), "proxy.max_body_bytes")
	assert.Contains(t, err.Error(), "shield.payload.max_depth")
}

func TestManager_SavePersists(t *testing.T) {
	mgr, path := newTestManager(t, "")
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Shield.BypassHosts = []string{"bank.example"}
	cfg.Proxy.MITM = true
	require.NoError(t, mgr.Save(cfg))
	assert.True(t, mgr.Get().Proxy.MITM)

	fresh, err := NewManager(WithConfigFile(path))
	require.NoError(t, err)
	require.NoError(t, fresh.Load())
	assert.True(t, fresh.Get().Proxy.MITM)
	assert.Equal(t, []string{"bank.example"}, fresh.Get().Shield.BypassHosts)

	bad := mgr.Get()
	bad.Proxy.MaxBodyBytes = -1
	assert.Error(t, mgr.Save(bad))
	assert.Error(t, mgr.Save(nil))
}

func TestManager_WatchReloadsOnExternalChange(t *testing.T) {
	mgr, path := newTestManager(t, "")
	require.NoError(t, mgr.Load())

	changed := make(chan *Config, 4)
	mgr.OnConfigChange(func(c *Config) { changed <- c })
	require.NoError(t, mgr.Watch())
	require.NoError(t, mgr.Watch(), "second Watch is a no-op")

	require.NoError(t, os.WriteFile(path, []byte("[shield]\nenabled = false\n"), filePerm))

	select {
	case c := <-changed:
		assert.False(t, c.Shield.Enabled)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}
	assert.False(t, mgr.Get().Shield.Enabled)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Format = "xml"
	cfg.Shield.SpecialHosts = []string{"https://video.example/"}
	cfg.Shield.Guard.SweepIntervalMs = 0
	cfg.Shield.Countermeasures.BaitClasses = []string{"ad box"}
	cfg.Shield.Payload.Endpoints = []string{"youtubei/v1/player"}

	err := Validate(cfg)
	require.Error(t, err)
	for _, key := range []string{
		"logging.format",
		"shield.special_hosts",
		"shield.guard.sweep_interval_ms",
		"shield.countermeasures.bait_classes",
		"shield.payload.endpoints",
	} {
		assert.Contains(t, err.Error(), key)
	}
	assert.Error(t, Validate(nil))
}

func TestSchema_DescribesSections(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)
	require.True(t, json.Valid(data))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, section := range []string{"logging", "database", "shield", "proxy"} {
		assert.Contains(t, props, section)
	}
	assert.Contains(t, string(data), "sweep_interval_ms")

	file, err := GenerateSchemaFile(filepath.Join(t.TempDir(), configName))
	require.NoError(t, err)
	assert.FileExists(t, file)
}

func TestPayloadOptions_ApplyToSanitizer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shield.Payload.Endpoints = []string{"/api/player"}

	s := payload.New(zerolog.Nop(), cfg.PayloadOptions()...)
	assert.True(t, s.IsPlayerEndpoint("https://video.example/api/player?x=1"))
	assert.False(t, s.IsPlayerEndpoint("https://video.example/youtubei/v1/player"))
}
