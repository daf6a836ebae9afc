package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lucax88x/clockface/internal/clockface"
	"github.com/lucax88x/clockface/internal/settings"
	"github.com/spf13/viper"
)

const (
	KeyConfigFile  = "config"
	KeyLogLevel    = "log_level"
	KeyDensity     = "density"
	KeyRedrawDelay = "redraw_delay"
	KeyFifo        = "fifo"
	KeyPidFile     = "pid_file"
	KeyStyle       = "style"
	KeyHTTPAddr    = "http.addr"
	KeyCacheSize   = "http.cache_size"
	KeyMaxDim      = "http.max_dimension"
)

type HTTP struct {
	Addr         string `mapstructure:"addr"`
	CacheSize    int    `mapstructure:"cache_size"`
	MaxDimension int    `mapstructure:"max_dimension"`
}

type Cfg struct {
	LogLevel    string            `mapstructure:"log_level"`
	Density     float64           `mapstructure:"density"`
	RedrawDelay time.Duration     `mapstructure:"redraw_delay"`
	Fifo        string            `mapstructure:"fifo"`
	PidFile     string            `mapstructure:"pid_file"`
	Style       map[string]string `mapstructure:"style"`
	HTTP        HTTP              `mapstructure:"http"`
}

// SetDefaults registers the built-in values and the environment binding.
func SetDefaults(v *viper.Viper) {
	s := settings.Clockface

	v.SetDefault(KeyLogLevel, s.LogLevel)
	v.SetDefault(KeyDensity, s.Density)
	v.SetDefault(KeyRedrawDelay, s.RedrawDelay)
	v.SetDefault(KeyFifo, "")
	v.SetDefault(KeyPidFile, s.PidFilePath)
	v.SetDefault(KeyHTTPAddr, s.Server.Addr)
	v.SetDefault(KeyCacheSize, s.Server.CacheSize)
	v.SetDefault(KeyMaxDim, s.Server.MaxDimension)

	v.SetEnvPrefix(s.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the optional config file and unmarshals everything viper knows.
// A missing default config file is fine; a missing explicit one is not.
func Load(v *viper.Viper) (*Cfg, error) {
	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(settings.Clockface.ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(settings.Clockface.ConfigDir)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: could not read file. %w", err)
		}
	}

	var cfg Cfg
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: could not unmarshal cfg. %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ClockStyle resolves the configured colors. Invalid entries keep their
// default and are reported in the error.
func (c *Cfg) ClockStyle() (clockface.Style, error) {
	style, err := clockface.ParseStyle(c.Style)
	if err != nil {
		return style, fmt.Errorf("config: invalid style. %w", err)
	}
	return style, nil
}

func validate(cfg *Cfg) error {
	if cfg.Density <= 0 {
		return fmt.Errorf("config: density must be positive, got %v", cfg.Density)
	}

	if cfg.RedrawDelay <= 0 {
		return fmt.Errorf("config: redraw_delay must be positive, got %v", cfg.RedrawDelay)
	}

	if cfg.HTTP.CacheSize <= 0 {
		return fmt.Errorf("config: http.cache_size must be positive, got %d", cfg.HTTP.CacheSize)
	}

	if cfg.HTTP.MaxDimension <= 0 {
		return fmt.Errorf("config: http.max_dimension must be positive, got %d", cfg.HTTP.MaxDimension)
	}

	return nil
}
