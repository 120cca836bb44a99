package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	LLM         LLMConfig         `mapstructure:"llm"`
	Ollama      OllamaConfig      `mapstructure:"ollama"`
	HuggingFace HuggingFaceConfig `mapstructure:"huggingface"`
	Sui         SuiConfig         `mapstructure:"sui"`
	Oracle      OracleConfig      `mapstructure:"oracle"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type LLMConfig struct {
	// Backend selects the report generator: "ollama", "huggingface" or "mock".
	Backend string `mapstructure:"backend"`
}

type OllamaConfig struct {
	URL         string        `mapstructure:"url"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type HuggingFaceConfig struct {
	APIToken    string        `mapstructure:"api_token"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type SuiConfig struct {
	RPCURL     string `mapstructure:"rpc_url"`
	Network    string `mapstructure:"network"`
	PackageID  string `mapstructure:"package_id"`
	ModuleName string `mapstructure:"module_name"`
	// Backend "memory" keeps shipment state in process for demos and tests;
	// "sui" builds real call descriptions (execution mocked until deployed).
	Backend string `mapstructure:"backend"`
}

type OracleConfig struct {
	// PrivateKey is the hex-encoded Ed25519 key. When empty an ephemeral
	// keypair is generated at startup and lost on exit.
	PrivateKey string `mapstructure:"private_key"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	RedisURL string        `mapstructure:"redis_url"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	// Write timeout must outlast the slowest LLM backend (ollama.timeout).
	v.SetDefault("server.write_timeout", "5m30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("llm.backend", "ollama")
	v.SetDefault("ollama.url", "http://localhost:11434")
	v.SetDefault("ollama.model", "qwen3:1.7b")
	v.SetDefault("ollama.max_tokens", 500)
	v.SetDefault("ollama.temperature", 0.5)
	v.SetDefault("ollama.timeout", "5m")
	v.SetDefault("huggingface.model", "Qwen/Qwen2.5-7B-Instruct")
	v.SetDefault("huggingface.max_tokens", 1000)
	v.SetDefault("huggingface.temperature", 0.7)
	v.SetDefault("huggingface.timeout", "30s")
	v.SetDefault("sui.rpc_url", "https://fullnode.testnet.sui.io:443")
	v.SetDefault("sui.network", "testnet")
	v.SetDefault("sui.module_name", "supply_chain")
	v.SetDefault("sui.backend", "sui")
	v.SetDefault("sui.package_id", "")
	v.SetDefault("oracle.private_key", "")
	v.SetDefault("huggingface.api_token", "")
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.redis_url", "redis://localhost:6379/0")
	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/cargolens/oracle")
	}

	// Environment variables override
	v.SetEnvPrefix("ORACLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings that cannot produce a working service. A missing
// HuggingFace token is deliberately not an error here; the client degrades
// per-request and main logs a warning instead.
func (c *Config) Validate() error {
	switch c.LLM.Backend {
	case "ollama", "huggingface", "mock":
	default:
		return fmt.Errorf("unknown llm backend %q (expected ollama, huggingface or mock)", c.LLM.Backend)
	}

	switch c.Sui.Backend {
	case "sui", "memory":
	default:
		return fmt.Errorf("unknown sui backend %q (expected sui or memory)", c.Sui.Backend)
	}

	return nil
}
