package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("WEB_LISTEN_ADDR", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultListenAddr, cfg.Web.ListenAddr)
	assert.Equal(t, DefaultHistory, cfg.Web.HistorySize)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.LLM.DisableSearch)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopaudit.yaml")
	err := os.WriteFile(path, []byte(`
web:
  listen_addr: ":9000"
  history_size: 5
llm:
  provider: ollama
  model: llama3.1:8b
  baseUrl: http://localhost:11434
log:
  level: debug
`), 0o600)
	require.NoError(t, err)

	t.Setenv("LLM_MODEL", "qwen2.5:7b")
	t.Setenv("API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("WEB_LISTEN_ADDR", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Web.ListenAddr)
	assert.Equal(t, 5, cfg.Web.HistorySize)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "qwen2.5:7b", cfg.LLM.Model, "environment overrides the file")
	assert.Equal(t, "http://localhost:11434", cfg.LLM.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_APIKeyPrecedence(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("API_KEY", "api-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "api-key", cfg.LLM.ApiKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"gemini with key", func(c *Config) { c.LLM.ApiKey = "k" }, false},
		{"gemini without key", func(c *Config) {}, true},
		{"ollama with url", func(c *Config) { c.LLM.Provider = "ollama"; c.LLM.BaseURL = "http://x" }, false},
		{"ollama without url", func(c *Config) { c.LLM.Provider = "ollama" }, true},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "nope"; c.LLM.ApiKey = "k" }, true},
		{"empty listen addr", func(c *Config) { c.LLM.ApiKey = "k"; c.Web.ListenAddr = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
