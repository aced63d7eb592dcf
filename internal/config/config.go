// Package config resolves runtime settings from an optional .env file,
// an optional YAML config file, environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Viper keys. Environment variables use the upper-cased key with dots
// replaced by underscores (e.g. snapshot.delay -> SNAPSHOT_DELAY).
const (
	KeyPort            = "port"
	KeyLogLevel        = "log_level"
	KeyGinMode         = "gin_mode"
	KeySnapshotDelay   = "snapshot.delay"
	KeyHeadlineDelay   = "headline.delay"
	KeyHeadlineCatalog = "headline.catalog"
	KeyGeminiAPIKey    = "gemini.api_key"
	KeyGeminiModel     = "gemini.model"
	KeyAPIURL          = "api_url"
)

type Config struct {
	Port            string
	LogLevel        string
	GinMode         string
	SnapshotDelay   time.Duration
	HeadlineDelay   time.Duration
	HeadlineCatalog string
	GeminiAPIKey    string
	GeminiModel     string
	APIURL          string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, "5001")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyGinMode, "release")
	v.SetDefault(KeySnapshotDelay, "1000ms")
	v.SetDefault(KeyHeadlineDelay, "800ms")
	v.SetDefault(KeyHeadlineCatalog, "")
	v.SetDefault(KeyGeminiAPIKey, "")
	v.SetDefault(KeyGeminiModel, "gemini-2.5-flash-lite")
	v.SetDefault(KeyAPIURL, "http://localhost:5001")
}

// New returns a viper instance wired for environment lookups with defaults set.
// envFiles are loaded with godotenv first; missing files are ignored.
func New(envFiles ...string) (*viper.Viper, error) {
	if err := loadDotenv(envFiles...); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v, nil
}

// ReadFile merges a YAML config file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Load resolves a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	snapshotDelay, err := duration(v, KeySnapshotDelay)
	if err != nil {
		return nil, err
	}
	headlineDelay, err := duration(v, KeyHeadlineDelay)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:            v.GetString(KeyPort),
		LogLevel:        v.GetString(KeyLogLevel),
		GinMode:         v.GetString(KeyGinMode),
		SnapshotDelay:   snapshotDelay,
		HeadlineDelay:   headlineDelay,
		HeadlineCatalog: v.GetString(KeyHeadlineCatalog),
		GeminiAPIKey:    v.GetString(KeyGeminiAPIKey),
		GeminiModel:     v.GetString(KeyGeminiModel),
		APIURL:          strings.TrimRight(v.GetString(KeyAPIURL), "/"),
	}
	if cfg.Port == "" {
		return nil, errors.New("port must not be empty")
	}
	return cfg, nil
}

// GeminiEnabled reports whether an AI headline source should be used.
func (c *Config) GeminiEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid duration for %s: must not be negative", key)
	}
	return d, nil
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
