package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/domain/build"
)

// isolate points every XDG directory at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func resetFlags() {
	options.ConfigFile, options.LogLevel = "", "disabled"
	classifyPage, classifyJSON = "", false
	sanitizeURL, sanitizeKind, sanitizeOutput, sanitizeQuiet = "", "auto", "", false
	exportFormat, exportPage, exportOutput = "webkit", "", ""
	bypassReason = ""
	statsSince, statsTop, statsRecent, statsPrune = 0, 10, 20, false
	schemaWrite = false
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--log-level", "disabled"}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	// PersistentPostRun is skipped when RunE fails.
	if app != nil {
		_ = app.Close()
		app = nil
	}
	return out.String(), err
}

func TestVersion_SkipsAppInit(t *testing.T) {
	isolate(t)
	SetBuildInfo(build.Info{Version: "1.2.3", Commit: "abc123", GoVersion: "go1.25"})

	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "unknown", "unset build date is filled")
	assert.Equal(t, "1.2.3 (abc123)", rootCmd.Version)
	assert.Nil(t, GetApp())
}

func TestClassify_JSON(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "classify", "--json",
		"https://www.google-analytics.com/collect?v=1",
		"https://example.org/style.css")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first, second classifyResult
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "BLOCKED_TRACKER", first.Verdict)
	assert.NotEmpty(t, first.Pattern)
	assert.Equal(t, "ALLOWED", second.Verdict)
}

func TestClassify_RequiresURL(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "classify")
	assert.Error(t, err)
}

func TestSanitize_JSONFromStdin(t *testing.T) {
	isolate(t)

	payload := `{"adPlacements":[{"x":1}],"videoDetails":{"videoId":"abc"}}`
	out, err := run(t, payload, "sanitize", "--url", "https://www.youtube.com/watch?v=abc", "--kind", "json", "-q")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []any{}, doc["adPlacements"])
	assert.Contains(t, doc, "videoDetails")
}

func TestSanitize_UnknownKind(t *testing.T) {
	isolate(t)

	_, err := run(t, "<html></html>", "sanitize", "--url", "https://news.example/", "--kind", "pdf")
	assert.ErrorContains(t, err, "unknown document kind")
}

func TestRulesExport_Text(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "rules", "export", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "[Adblock Plus 2.0]")
	assert.Contains(t, out, "google-analytics.com")
}

func TestRulesExport_UnknownFormat(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "rules", "export", "--format", "pac")
	assert.Error(t, err)
}

func TestBypass_Lifecycle(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "bypass", "add", "https://www.bank.example/login", "--reason", "breaks checkout")
	require.NoError(t, err)

	out, err := run(t, "", "bypass", "check", "app.bank.example")
	require.NoError(t, err)
	assert.Contains(t, out, "Shield disabled")

	out, err = run(t, "", "bypass", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "bank.example")

	_, err = run(t, "", "bypass", "remove", "bank.example")
	require.NoError(t, err)

	out, err = run(t, "", "bypass", "check", "bank.example")
	require.NoError(t, err)
	assert.Contains(t, out, "Shield active")
}

func TestConfigPath_UsesXDGConfigHome(t *testing.T) {
	root := isolate(t)

	out, err := run(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "config", "adshield", "config.toml"), strings.TrimSpace(out))
}

func TestConfigSchema_PrintsJSON(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "config", "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Contains(t, out, "shield")
}

func TestStats_Empty(t *testing.T) {
	isolate(t)

	_, err := run(t, "", "stats", "--since", "24h")
	require.NoError(t, err)
}
