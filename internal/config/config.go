package config

import (
	"fmt"
	"strings"

	"github.com/limaJavier/sectioning/internal/catalog"
	"github.com/limaJavier/sectioning/internal/engine"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env        string
	Weights    WeightsConfig
	RequestCap int `mapstructure:"requestCap"`
	SampleSize int `mapstructure:"sampleSize"`
	Log        LogConfig
}

// WeightsConfig holds the per-tier objective weights. The strict ordering
// Core > Required > Requested > Recommended is enforced on load; the numeric
// values are free policy.
type WeightsConfig struct {
	Core        int
	Required    int
	Requested   int
	Recommended int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load resolves the configuration from defaults, an optional config file
// and SECTIONING_* environment overrides, in that order.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("weights.core", 100)
	v.SetDefault("weights.required", 90)
	v.SetDefault("weights.requested", 50)
	v.SetDefault("weights.recommended", 25)
	v.SetDefault("requestCap", 0)
	v.SetDefault("sampleSize", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config file: %v", err)
		}
	}

	v.SetEnvPrefix("SECTIONING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal config: %v", err)
	}

	weights := cfg.Weights
	if weights.Core <= weights.Required || weights.Required <= weights.Requested || weights.Requested <= weights.Recommended {
		return nil, fmt.Errorf("weights must be strictly ordered Core > Required > Requested > Recommended: %+v", weights)
	}
	if cfg.RequestCap < 0 {
		return nil, fmt.Errorf("request cap must be non-negative: %v", cfg.RequestCap)
	}
	if cfg.SampleSize < 0 {
		return nil, fmt.Errorf("sample size must be non-negative: %v", cfg.SampleSize)
	}

	return &cfg, nil
}

// Policy translates the configuration into the engine's solve policy
func (cfg *Config) Policy() engine.Policy {
	return engine.Policy{
		Weights: map[catalog.Priority]int{
			catalog.PriorityCore:        cfg.Weights.Core,
			catalog.PriorityRequired:    cfg.Weights.Required,
			catalog.PriorityRequested:   cfg.Weights.Requested,
			catalog.PriorityRecommended: cfg.Weights.Recommended,
		},
		RequestCap: cfg.RequestCap,
	}
}
