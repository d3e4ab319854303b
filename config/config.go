// Package config loads client settings from defaults, a familycoin.yaml file,
// FAMILYCOIN_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	FileName  = "familycoin"
	EnvPrefix = "familycoin"
)

type Config struct {
	Endpoint       string        `mapstructure:"endpoint"`
	KeyFile        string        `mapstructure:"key_file"`
	Timeout        time.Duration `mapstructure:"timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	CacheSize      int           `mapstructure:"cache_size"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	AuthHeuristics bool          `mapstructure:"auth_heuristics"`
}

// Defaults holds a value for every key so that each one can also be set from
// the environment.
var Defaults = map[string]any{
	"endpoint":        "http://localhost:8000",
	"key_file":        "",
	"timeout":         "15s",
	"log_level":       "warn",
	"cache_size":      0,
	"cache_ttl":       "60s",
	"auth_heuristics": false,
}

// Flags maps command line flag names to config keys.
var Flags = map[string]string{
	"endpoint":  "endpoint",
	"key-file":  "key_file",
	"timeout":   "timeout",
	"log-level": "log_level",
}

// Load resolves the configuration for cmd. If configFile is not empty it must
// exist; otherwise familycoin.yaml is looked up in the user config directory
// and the working directory and may be absent.
func Load(cmd *cobra.Command, configFile string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "familycoin"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("reading config: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if cmd != nil {
		for name, key := range Flags {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("parsing config: %w", err)
	}
	return c, c.Validate()
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", c.Endpoint)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size must not be negative, got %d", c.CacheSize)
	}
	return nil
}

// EndpointURL returns the parsed endpoint.
func (c Config) EndpointURL() (*url.URL, error) {
	return url.Parse(c.Endpoint)
}
