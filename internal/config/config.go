// Package config loads twofa settings from flags, TWOFA_* environment
// variables and an optional dotenv file using Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every setting read from the environment,
// e.g. TWOFA_ACCOUNT or TWOFA_CACHE_TTL.
const EnvPrefix = "TWOFA"

// Store selectors accepted by the store setting.
const (
	StoreAuto     = "auto"
	StoreKeychain = "keychain"
	StorePass     = "pass"
	StoreEnv      = "env"
)

// Setting keys. These are also the CLI flag names.
const (
	KeyAccount  = "account"
	KeyService  = "service"
	KeyNum      = "num"
	KeyStore    = "store"
	KeyInterval = "interval"
	KeyOnce     = "once"
	KeyCacheTTL = "cache-ttl"
	KeyLogLevel = "log-level"
	KeyEnvFile  = "env-file"
)

// ErrInvalidConfig indicates a setting is out of range.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the resolved CLI configuration.
type Config struct {
	// Account is the account name within the credential store.
	Account string `mapstructure:"account"`
	// Service is the service name within the credential store.
	Service string `mapstructure:"service"`
	// Num is the number of codes to print per line (current plus upcoming).
	Num int `mapstructure:"num"`
	// Store selects the credential store: auto, keychain, pass or env.
	Store string `mapstructure:"store"`
	// Interval is how often the codes are reprinted.
	Interval time.Duration `mapstructure:"interval"`
	// Once prints a single line and exits.
	Once bool `mapstructure:"once"`
	// CacheTTL is how long a retrieved secret is kept in memory; 0 disables caching.
	CacheTTL time.Duration `mapstructure:"cache-ttl"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `mapstructure:"log-level"`
	// EnvFile is the dotenv file loaded before the environment is read.
	EnvFile string `mapstructure:"env-file"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAccount, "")
	v.SetDefault(KeyService, "")
	v.SetDefault(KeyNum, 1)
	v.SetDefault(KeyStore, StoreAuto)
	v.SetDefault(KeyInterval, time.Second)
	v.SetDefault(KeyOnce, false)
	v.SetDefault(KeyCacheTTL, 30*time.Second)
	v.SetDefault(KeyLogLevel, zerolog.LevelWarnValue)
	v.SetDefault(KeyEnvFile, ".env")
}

// Load builds and validates Config from v. Environment variables with the
// TWOFA_ prefix override defaults; flags bound to v override both.
func Load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations. Values are never clamped.
func (c *Config) Validate() error {
	if c.Num < 1 {
		return fmt.Errorf("%w: num must be a positive integer, got %d", ErrInvalidConfig, c.Num)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidConfig, c.Interval)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: cache-ttl must not be negative, got %s", ErrInvalidConfig, c.CacheTTL)
	}
	switch c.Store {
	case StoreAuto, StoreKeychain, StorePass, StoreEnv:
	default:
		return fmt.Errorf("%w: store must be one of auto, keychain, pass, env, got %q", ErrInvalidConfig, c.Store)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: log-level %q", ErrInvalidConfig, c.LogLevel)
	}
	return lvl, nil
}

// LoadEnvFile loads a dotenv file into the process environment so the env
// secret store and TWOFA_* settings can see it. Variables already set are
// left untouched. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	// Parse errors quote the offending line, which may hold a secret.
	return fmt.Errorf("%w: %s is not a valid dotenv file", ErrInvalidConfig, path)
}
