package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied before the YAML file and the environment
const (
	DefaultListenAddr = ":8080"
	DefaultProvider   = "gemini"
	DefaultModel      = "gemini-2.5-flash"
	DefaultLogLevel   = "info"
	DefaultHistory    = 50
)

type Config struct {
	Web WebConfig `yaml:"web"`
	LLM LLMConfig `yaml:"llm"`
	Log LogConfig `yaml:"log"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini | openai | ollama | localai | lm-studio
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"baseUrl"`
	ApiKey   string `yaml:"apiKey"`

	// DisableSearch turns off Google Search grounding (gemini only)
	DisableSearch bool `yaml:"disableSearch"`
}

type WebConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	// HistorySize is how many finished audits /api/audits keeps
	HistorySize int `yaml:"history_size"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns a Config with every default set
func Default() *Config {
	return &Config{
		Web: WebConfig{
			ListenAddr:  DefaultListenAddr,
			HistorySize: DefaultHistory,
		},
		LLM: LLMConfig{
			Provider: DefaultProvider,
			Model:    DefaultModel,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Load builds the configuration: defaults, then the optional YAML file at path,
// then .env and process environment. A missing .env is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Web.ListenAddr, "WEB_LISTEN_ADDR")
	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	setString(&cfg.LLM.BaseURL, "LLM_URL")
	setString(&cfg.LLM.ApiKey, "GEMINI_API_KEY")
	setString(&cfg.LLM.ApiKey, "API_KEY")
	setBool(&cfg.LLM.DisableSearch, "LLM_DISABLE_SEARCH")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setBool(&cfg.Log.Development, "LOG_DEVELOPMENT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// Validate reports configuration that would only fail later, on the first request
func (c *Config) Validate() error {
	if c.Web.ListenAddr == "" {
		return errors.New("web listen address is required")
	}

	switch c.LLM.Provider {
	case "gemini":
		if c.LLM.ApiKey == "" {
			return errors.New("API_KEY is required for the gemini provider")
		}
	case "openai", "ollama", "localai", "lm-studio":
		if c.LLM.BaseURL == "" {
			return fmt.Errorf("LLM_URL is required for the %s provider", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unsupported provider: %s", c.LLM.Provider)
	}

	return nil
}
