package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/pkgtrust/pkg/cache"
)

const (
	envPrefix       = "PKGTRUST"
	configName      = ".pkgtrust"
	defaultCacheTTL = 24 * time.Hour
)

// settings is the merged configuration of flags, environment and config
// file, in that order of precedence.
type settings struct {
	Verbose      bool          `mapstructure:"verbose"`
	LogFile      string        `mapstructure:"log-file"`
	LogLevel     string        `mapstructure:"log-level"`
	GitHubToken  string        `mapstructure:"github-token"`
	CacheBackend string        `mapstructure:"cache-backend"`
	CacheDSN     string        `mapstructure:"cache-dsn"`
	CacheDir     string        `mapstructure:"cache-dir"`
	CacheTTL     time.Duration `mapstructure:"cache-ttl"`
	Rate         float64       `mapstructure:"rate"`
	Concurrent   bool          `mapstructure:"concurrent"`
	Progress     bool          `mapstructure:"progress"`
	Profile      string        `mapstructure:"profile"`
	WorkDir      string        `mapstructure:"work-dir"`
}

// newViper returns a viper instance with the pkgtrust defaults, environment
// bindings and config search path.
func newViper(configFile string) *viper.Viper {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Unprefixed variables kept for compatibility with existing setups.
	_ = v.BindEnv("github-token", "GITHUB_TOKEN", envPrefix+"_GITHUB_TOKEN")
	_ = v.BindEnv("log-file", "LOG_FILE", envPrefix+"_LOG_FILE")
	_ = v.BindEnv("log-level", "LOG_LEVEL", envPrefix+"_LOG_LEVEL")

	v.SetDefault("cache-backend", string(cache.BackendNone))
	v.SetDefault("cache-ttl", defaultCacheTTL)
	v.SetDefault("rate", 0.0)
	return v
}

// loadSettings merges flags, environment and the optional config file.
func loadSettings(flags *pflag.FlagSet) (*settings, error) {
	configFile, _ := flags.GetString("config")
	v := newViper(configFile)
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *settings) validate() error {
	valid := false
	for _, b := range cache.Backends {
		if string(b) == s.CacheBackend {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid cache backend %q (must be one of %v)", s.CacheBackend, cache.Backends)
	}
	if s.Rate < 0 {
		return fmt.Errorf("rate must not be negative, got %v", s.Rate)
	}
	if s.CacheTTL < 0 {
		return fmt.Errorf("cache-ttl must not be negative, got %v", s.CacheTTL)
	}
	return nil
}

// cacheConfig returns the cache backend selection.
func (s *settings) cacheConfig() cache.Config {
	dir := s.CacheDir
	if dir == "" {
		if d, err := cacheDir(); err == nil {
			dir = d
		}
	}
	return cache.Config{Backend: cache.Backend(s.CacheBackend), Dir: dir, DSN: s.CacheDSN}
}
