// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/leadgen/internal/schemas"
	"github.com/jonathan/leadgen/internal/types"
	"gopkg.in/yaml.v3"
)

// Defaults applied when neither flags, config file nor environment set a value.
const (
	DefaultPort           = 8080
	DefaultRequestTimeout = "15s"
	DefaultCacheTTL       = "10m"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// EngineConfig holds the search-engine credentials for one platform.
type EngineConfig struct {
	APIKey      string `json:"api_key,omitempty"`      // Custom Search API key
	EngineID    string `json:"engine_id,omitempty"`    // Programmable Search Engine ID (cx)
	ImageSearch *bool  `json:"image_search,omitempty"` // Query in image-search mode; nil uses the platform default
}

// ImageSearchEnabled reports whether searches for p run in image-search mode.
// LinkedIn defaults to image search; every other platform defaults to web search.
func (e EngineConfig) ImageSearchEnabled(p types.Platform) bool {
	if e.ImageSearch != nil {
		return *e.ImageSearch
	}
	return p == types.PlatformLinkedIn
}

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	Port           int                     `json:"port,omitempty"`
	RequestTimeout string                  `json:"request_timeout,omitempty"` // Search API HTTP timeout, e.g. "15s"
	LogLevel       string                  `json:"log_level,omitempty"`
	LogFormat      string                  `json:"log_format,omitempty"` // "text" or "json"
	RedisURL       string                  `json:"redis_url,omitempty"`  // Enables the search page cache
	CacheTTL       string                  `json:"cache_ttl,omitempty"`
	UseBrowser     bool                    `json:"use_browser,omitempty"` // Headless browser fallback for enrichment
	Engines        map[string]EngineConfig `json:"engines,omitempty"`     // Keyed by platform id
}

// LoadConfig loads configuration from a JSON or YAML file (chosen by extension).
// The document is validated against the config schema before decoding.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("failed to parse config JSON: invalid document")
	}
	if err := schemas.ValidateConfig(data); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share one schema.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return json.Marshal(doc)
}

// FromEnv builds a Config from environment variables.
//
// Per-platform credentials use <PLATFORM>_API_KEY, <PLATFORM>_ENGINE_ID and
// <PLATFORM>_IMAGE_SEARCH; GOOGLE_API_KEY is the fallback key for every platform.
func FromEnv() Config {
	cfg := Config{
		Port:           getEnvInt("LEADGEN_PORT", 0),
		RequestTimeout: os.Getenv("LEADGEN_REQUEST_TIMEOUT"),
		LogLevel:       os.Getenv("LEADGEN_LOG_LEVEL"),
		LogFormat:      os.Getenv("LEADGEN_LOG_FORMAT"),
		RedisURL:       os.Getenv("REDIS_URL"),
		CacheTTL:       os.Getenv("CACHE_TTL"),
		UseBrowser:     getEnvBool("LEADGEN_USE_BROWSER", false),
		Engines:        make(map[string]EngineConfig),
	}

	fallbackKey := os.Getenv("GOOGLE_API_KEY")
	for _, p := range types.AllPlatforms() {
		prefix := strings.ToUpper(string(p))
		engine := EngineConfig{
			APIKey:      os.Getenv(prefix + "_API_KEY"),
			EngineID:    os.Getenv(prefix + "_ENGINE_ID"),
			ImageSearch: getEnvOptionalBool(prefix + "_IMAGE_SEARCH"),
		}
		if engine.APIKey == "" {
			engine.APIKey = fallbackKey
		}
		if engine != (EngineConfig{}) {
			cfg.Engines[string(p)] = engine
		}
	}

	return cfg
}

// Defaults returns the built-in defaults.
func Defaults() Config {
	return Config{
		Port:           DefaultPort,
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		CacheTTL:       DefaultCacheTTL,
	}
}

// Load resolves configuration with precedence config file > environment > defaults.
// path may be empty. CLI flags are applied on top by the caller.
func Load(path string) (*Config, error) {
	env := FromEnv()
	cfg := env.MergeWithDefaults(Defaults())

	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = file.MergeWithDefaults(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Missing engine credentials are not an error here; the search gateway reports them per platform.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RequestTimeout != "" {
		if d, err := time.ParseDuration(c.RequestTimeout); err != nil || d <= 0 {
			return fmt.Errorf("config error: invalid 'request_timeout' %q", c.RequestTimeout)
		}
	}
	if c.CacheTTL != "" {
		if d, err := time.ParseDuration(c.CacheTTL); err != nil || d <= 0 {
			return fmt.Errorf("config error: invalid 'cache_ttl' %q", c.CacheTTL)
		}
	}
	for name := range c.Engines {
		if _, err := types.ParsePlatform(name); err != nil {
			return fmt.Errorf("config error: engines: %w", err)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Engines merge per platform and per field.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RequestTimeout == "" {
		result.RequestTimeout = defaults.RequestTimeout
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.CacheTTL == "" {
		result.CacheTTL = defaults.CacheTTL
	}

	// Bool fields: cannot distinguish unset from false, so either source enables them
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser

	engines := make(map[string]EngineConfig, len(defaults.Engines)+len(c.Engines))
	for name, e := range defaults.Engines {
		engines[name] = e
	}
	for name, e := range c.Engines {
		base := engines[name]
		if e.APIKey != "" {
			base.APIKey = e.APIKey
		}
		if e.EngineID != "" {
			base.EngineID = e.EngineID
		}
		if e.ImageSearch != nil {
			base.ImageSearch = e.ImageSearch
		}
		engines[name] = base
	}
	result.Engines = engines

	return result
}

// Timeout returns the parsed request timeout, or the default when unset or invalid.
func (c *Config) Timeout() time.Duration {
	return parseDurationOr(c.RequestTimeout, DefaultRequestTimeout)
}

// CacheTTLDuration returns the parsed cache TTL, or the default when unset or invalid.
func (c *Config) CacheTTLDuration() time.Duration {
	return parseDurationOr(c.CacheTTL, DefaultCacheTTL)
}

// Engine returns the credentials configured for a platform.
func (c *Config) Engine(p types.Platform) (EngineConfig, bool) {
	e, ok := c.Engines[string(p)]
	if !ok || e.APIKey == "" || e.EngineID == "" {
		return EngineConfig{}, false
	}
	return e, true
}

func parseDurationOr(value string, fallback string) time.Duration {
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}
