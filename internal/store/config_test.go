package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"DEBUG", "WEEKLY_PROVIDER", "WEEKLY_SYSTEM_INSTRUCTION", "LLM_MAX_TOKENS", "LLM_TIMEOUT_SECONDS",
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_API_ENDPOINT",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_API_ENDPOINT",
		"CLAUDE_API_KEY", "CLAUDE_MODEL", "CLAUDE_API_ENDPOINT",
		"WEEKLY_REPORT_EXT", "LOG_LEVEL", "LOG_FORMAT", "LOG_DETAILED", "LOG_TRACING_ENABLED", "LOG_FILE",
		"WEEKLY_PREFS",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "md", cfg.Reports.Extension)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 120*time.Second, cfg.Timeout())
	assert.False(t, bool(cfg.Debug))
}

func TestLoadConfigEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Provider().APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Provider().Model)
	assert.True(t, bool(cfg.Debug))
	assert.True(t, cfg.Log.Detailed)
}

func TestLoadConfigFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "weekly.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: Claude
  timeout_seconds: 30
claude:
  model: claude-from-file
reports:
  extension: .txt
`), 0o644))
	t.Setenv("CLAUDE_MODEL", "claude-from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderClaude, cfg.LLM.Provider)
	assert.Equal(t, "claude-from-env", cfg.Provider().Model)
	assert.Equal(t, "txt", cfg.Reports.Extension)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEEKLY_PROVIDER", "ollama")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.provider")
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDebugFlagValues(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"yes", true},
		{"on", true},
		{"1", true},
		{"TRUE", true},
		{"false", false},
		{"0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DEBUG", tt.value)

			cfg, err := LoadConfig("")
			require.NoError(t, err)
			assert.Equal(t, tt.want, bool(cfg.Debug))
			assert.Equal(t, tt.want, cfg.Log.Detailed)
		})
	}
}

func TestDebugFromYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "weekly.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: true\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, bool(cfg.Debug))
}

func TestPrefsPathFromEnvIgnoresOtherSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEEKLY_PROVIDER", "foo")
	t.Setenv("WEEKLY_PREFS", "/tmp/prefs.json")

	path, err := PrefsPathFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/prefs.json", path)

	_, err = LoadConfig("")
	assert.Error(t, err)
}
