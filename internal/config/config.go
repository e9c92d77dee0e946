package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"

	"github.com/tigerprompts/internal/aiconnectors"
	"github.com/tigerprompts/internal/prompts"
)

// EnvPrefix is the prefix of environment overrides. Nesting levels are
// separated by a double underscore, e.g. TIGERPROMPTS_LLM__API_KEY.
const EnvPrefix = "TIGERPROMPTS_"

// ProviderProxy selects the hosted chat-completions proxy instead of a
// direct provider connector.
const ProviderProxy = "proxy"

// Config represents the application configuration
type Config struct {
	General struct {
		Depth    string `koanf:"depth"`
		Explain  bool   `koanf:"explain"`
		ShowPQS  bool   `koanf:"show_pqs"`
		UseLLM   bool   `koanf:"use_llm"`
		Pro      bool   `koanf:"pro"`
		LogLevel string `koanf:"log_level"`
	} `koanf:"general"`

	Coding struct {
		Enabled         bool     `koanf:"enabled"`
		FileDefinitions string   `koanf:"file_definitions"`
		Languages       []string `koanf:"languages"`
		NeedsTesting    bool     `koanf:"needs_testing"`
		IsNewFeature    bool     `koanf:"is_new_feature"`
	} `koanf:"coding"`

	LLM struct {
		Provider       string  `koanf:"provider"`
		Endpoint       string  `koanf:"endpoint"`
		BaseURL        string  `koanf:"base_url"`
		APIKey         string  `koanf:"api_key"`
		Model          string  `koanf:"model"`
		MaxTokens      int     `koanf:"max_tokens"`
		Temperature    float64 `koanf:"temperature"`
		TimeoutSeconds int     `koanf:"timeout_seconds"`
	} `koanf:"llm"`

	Server struct {
		Port      int     `koanf:"port"`
		RateLimit float64 `koanf:"rate_limit"`
		Burst     int     `koanf:"burst"`
	} `koanf:"server"`

	History struct {
		Path  string `koanf:"path"`
		Limit int    `koanf:"limit"`
	} `koanf:"history"`
}

// Defaults are loaded before any file or environment source.
var Defaults = map[string]interface{}{
	"general.depth":       "light",
	"general.explain":     false,
	"general.show_pqs":    true,
	"general.use_llm":     false,
	"general.pro":         false,
	"general.log_level":   "info",
	"coding.enabled":      false,
	"llm.provider":        ProviderProxy,
	"llm.endpoint":        "http://localhost:8787/v1/chat/completions",
	"llm.model":           prompts.DefaultModel,
	"llm.max_tokens":      2000,
	"llm.temperature":     0.7,
	"llm.timeout_seconds": 60,
	"server.port":         8888,
	"server.rate_limit":   2.0,
	"server.burst":        5,
	"history.path":        "$HOME/.tigerprompts/history.db",
	"history.limit":       10,
}

// DefaultPaths are searched in order when no explicit config path is given.
var DefaultPaths = []string{"./tigerprompts.toml", "$HOME/.tigerprompts.toml"}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		for _, path := range DefaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					log.Debug().Str("path", path).Msg("loaded config file")
					break
				}
			}
		}
	}

	// Load from environment variables with prefix TIGERPROMPTS_
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	config.History.Path = os.ExpandEnv(config.History.Path)

	return &config, nil
}

// envKey maps TIGERPROMPTS_LLM__API_KEY to llm.api_key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# TigerPrompts Configuration

[general]
depth = "light"        # light | deep
explain = false
show_pqs = true
use_llm = false
pro = false
log_level = "info"

[coding]
enabled = false
file_definitions = ""  # comma separated, e.g. "main.go, handler.go"
languages = []
needs_testing = false
is_new_feature = false

[llm]
provider = "proxy"     # proxy | openai | anthropic | gemini | cohere | ollama
endpoint = "http://localhost:8787/v1/chat/completions"
base_url = ""
api_key = ""
model = "gpt-4o-mini"
max_tokens = 2000
temperature = 0.7
timeout_seconds = 60

[server]
port = 8888
rate_limit = 2.0       # LLM requests per second per client
burst = 5

[history]
path = "$HOME/.tigerprompts/history.db"
limit = 10
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	switch strings.ToLower(strings.TrimSpace(config.General.Depth)) {
	case "", "light", "deep":
	default:
		return fmt.Errorf("general.depth must be light or deep, got %q", config.General.Depth)
	}

	provider := strings.ToLower(strings.TrimSpace(config.LLM.Provider))
	if provider == ProviderProxy {
		if config.LLM.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required for the proxy provider")
		}
	} else if _, ok := aiconnectors.ParseProvider(provider); !ok {
		return fmt.Errorf("unsupported llm provider %q", config.LLM.Provider)
	}

	if config.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive")
	}
	if config.LLM.TimeoutSeconds < 0 {
		return fmt.Errorf("llm.timeout_seconds cannot be negative")
	}
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", config.Server.Port)
	}
	if config.Server.RateLimit < 0 || config.Server.Burst < 0 {
		return fmt.Errorf("server rate limit and burst cannot be negative")
	}
	if config.History.Limit <= 0 {
		return fmt.Errorf("history.limit must be positive")
	}

	// Custom model names are allowed.
	if config.LLM.Model != "" {
		if _, ok := prompts.Hint(config.LLM.Model); !ok {
			log.Warn().Str("model", config.LLM.Model).Msg("model has no usage hint; treating it as a custom model")
		}
	}

	return nil
}
