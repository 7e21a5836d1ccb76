package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Industry  IndustryConfig  `yaml:"industry" mapstructure:"industry"`
	Narrative NarrativeConfig `yaml:"narrative" mapstructure:"narrative"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Ollama    OllamaConfig    `yaml:"ollama" mapstructure:"ollama"`
	Pricing   PricingConfig   `yaml:"pricing" mapstructure:"pricing"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port               int      `yaml:"port" mapstructure:"port"`
	CORSOrigins        []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	RequestTimeoutSecs int      `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
}

// IndustryConfig points at optional industry table overrides.
type IndustryConfig struct {
	TablesFile string `yaml:"tables_file" mapstructure:"tables_file"`
}

// NarrativeConfig configures LLM narrative generation.
type NarrativeConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts       int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs  int     `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs      int     `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BreakerThreshold  int     `yaml:"breaker_threshold" mapstructure:"breaker_threshold"`
	BreakerResetSecs  int     `yaml:"breaker_reset_secs" mapstructure:"breaker_reset_secs"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
}

// OllamaConfig holds local Ollama server settings.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// PricingConfig overrides per-model LLM pricing. Entries replace the
// built-in rates for the same model.
type PricingConfig struct {
	Anthropic map[string]ModelPricing `yaml:"anthropic" mapstructure:"anthropic"`
}

// ModelPricing holds per-model token pricing (USD per million tokens).
type ModelPricing struct {
	Input         float64 `yaml:"input" mapstructure:"input"`
	Output        float64 `yaml:"output" mapstructure:"output"`
	CacheWriteMul float64 `yaml:"cache_write_mul" mapstructure:"cache_write_mul"`
	CacheReadMul  float64 `yaml:"cache_read_mul" mapstructure:"cache_read_mul"`
}

// Narrative providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderNone      = "none"
)

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GRC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.request_timeout_secs", 180)
	v.SetDefault("industry.tables_file", "")
	v.SetDefault("narrative.provider", ProviderAnthropic)
	v.SetDefault("narrative.timeout_secs", 60)
	v.SetDefault("narrative.max_attempts", 3)
	v.SetDefault("narrative.initial_backoff_ms", 500)
	v.SetDefault("narrative.max_backoff_ms", 10000)
	v.SetDefault("narrative.requests_per_second", 2)
	v.SetDefault("narrative.breaker_threshold", 5)
	v.SetDefault("narrative.breaker_reset_secs", 30)
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 6000)
	v.SetDefault("anthropic.base_url", "")
	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.model", "llama3.1:8b")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Modes: "report",
// "narrative", "serve", "mcp".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "report", "mcp":
	case "narrative":
		errs = append(errs, c.validateNarrative()...)
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if c.Server.RequestTimeoutSecs < 0 {
			errs = append(errs, "server.request_timeout_secs must be >= 0")
		}
		errs = append(errs, c.validateNarrative()...)
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateNarrative() []string {
	var errs []string
	n := c.Narrative
	switch n.Provider {
	case ProviderAnthropic:
		if c.Anthropic.Key == "" {
			errs = append(errs, "anthropic.key is required")
		}
		if c.Anthropic.Model == "" {
			errs = append(errs, "anthropic.model is required")
		}
	case ProviderOllama:
		if c.Ollama.BaseURL == "" {
			errs = append(errs, "ollama.base_url is required")
		}
	case ProviderNone:
	default:
		errs = append(errs, "narrative.provider must be one of anthropic, ollama, none")
	}
	if n.TimeoutSecs < 0 {
		errs = append(errs, "narrative.timeout_secs must be >= 0")
	}
	if n.MaxAttempts < 0 || n.MaxAttempts > 10 {
		errs = append(errs, "narrative.max_attempts must be between 0 and 10")
	}
	if n.RequestsPerSecond < 0 {
		errs = append(errs, "narrative.requests_per_second must be >= 0")
	}
	if n.BreakerThreshold < 0 {
		errs = append(errs, "narrative.breaker_threshold must be >= 0")
	}
	for model, p := range c.Pricing.Anthropic {
		if p.Input < 0 || p.Output < 0 || p.CacheWriteMul < 0 || p.CacheReadMul < 0 {
			errs = append(errs, fmt.Sprintf("pricing.anthropic.%s rates must be >= 0", model))
		}
	}
	return errs
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
