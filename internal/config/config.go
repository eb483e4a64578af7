package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the top-level configuration.
type Config struct {
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Scorer  ScorerConfig  `yaml:"scorer" mapstructure:"scorer"`
	Enrich  EnrichConfig  `yaml:"enrich" mapstructure:"enrich"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// BatchConfig controls how many documents or profiles are processed at once.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ScorerConfig points at an optional YAML field registry. Empty means the
// built-in registry.
type ScorerConfig struct {
	RegistryPath string `yaml:"registry_path" mapstructure:"registry_path"`
}

// EnrichConfig toggles enrichment during parsing.
type EnrichConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// CatalogConfig locates the existing focus group catalog.
type CatalogConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // "sqlite" or "json"
	Path   string `yaml:"path" mapstructure:"path"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("AUDIENCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("scorer.registry_path", "")
	v.SetDefault("enrich.enabled", false)
	v.SetDefault("catalog.driver", "sqlite")
	v.SetDefault("catalog.path", "audience.db")

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

// Validate checks the settings a command mode depends on. All problems are
// reported together.
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.Batch.Concurrency < 1 || c.Batch.Concurrency > 64 {
		errs = append(errs, "batch.concurrency must be between 1 and 64")
	}

	switch mode {
	case "parse", "score", "enrich":
	case "match", "reconcile", "catalog":
		errs = append(errs, c.validateCatalog()...)
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateCatalog() []string {
	var errs []string
	switch c.Catalog.Driver {
	case "sqlite", "json":
	default:
		errs = append(errs, fmt.Sprintf("catalog.driver must be sqlite or json, got %q", c.Catalog.Driver))
	}
	if strings.TrimSpace(c.Catalog.Path) == "" {
		errs = append(errs, "catalog.path is required")
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
