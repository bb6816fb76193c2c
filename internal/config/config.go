// Package config loads the docsite configuration file.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "docsite.yaml"

// Config represents the complete docsite configuration.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Content    ContentConfig    `yaml:"content"`
	Navigation NavigationConfig `yaml:"navigation"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Export     ExportConfig     `yaml:"export"`
}

// SiteConfig holds presentation settings.
type SiteConfig struct {
	Title string `yaml:"title"`
	// BaseURL is the public origin of the site; links under it count as internal.
	BaseURL string `yaml:"base_url,omitempty"`
}

// ContentConfig describes the content store.
type ContentConfig struct {
	Root        string `yaml:"root"`
	Extension   string `yaml:"extension"`
	IndexName   string `yaml:"index_name"`
	DocsRoot    string `yaml:"docs_root"`
	MaxDepth    int    `yaml:"max_depth"`
	Concurrency int    `yaml:"concurrency"`
}

// NavigationConfig sizes the navigation caches.
type NavigationConfig struct {
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	CacheCapacity int           `yaml:"cache_capacity"`
	// SweepInterval is how often the daemon drops expired cache entries.
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// ServerConfig holds listener ports and response caching headers.
type ServerConfig struct {
	DocsPort             int           `yaml:"docs_port"`
	AdminPort            int           `yaml:"admin_port"`
	SharedCacheMaxAge    time.Duration `yaml:"shared_cache_max_age"`
	StaleWhileRevalidate time.Duration `yaml:"stale_while_revalidate"`
	ShutdownTimeout      time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// ExportConfig controls static generation.
type ExportConfig struct {
	Output     string `yaml:"output"`
	CheckLinks bool   `yaml:"check_links"`
}

// ContentOptions converts the content section into tree builder options.
func (c *Config) ContentOptions() content.Options {
	return content.Options{
		Extension:   c.Content.Extension,
		IndexName:   c.Content.IndexName,
		MaxDepth:    c.Content.MaxDepth,
		Concurrency: c.Content.Concurrency,
	}
}

// Load reads the configuration at path. Variables from .env files are
// loaded first and ${VAR} references in the file are expanded. Defaults
// fill unset fields and the result is validated.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read configuration file").
			WithContext("path", path).
			Build()
	}
	return Parse(data)
}

// Parse decodes, defaults and validates configuration YAML.
func Parse(data []byte) (*Config, error) {
	cfg := Config{Export: ExportConfig{CheckLinks: true}}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").Build()
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Export: ExportConfig{CheckLinks: true}}
	applyDefaults(cfg)
	return cfg
}

func (c *Config) normalize() error {
	level, err := logLevels.Parse(string(c.Logging.Level))
	if err != nil {
		return wrapConfig(err, "logging.level")
	}
	format, err := logFormats.Parse(string(c.Logging.Format))
	if err != nil {
		return wrapConfig(err, "logging.format")
	}
	c.Logging.Level = level
	c.Logging.Format = format
	return nil
}

func wrapConfig(err error, field string) error {
	return errors.WrapError(err, errors.CategoryConfig, "invalid configuration").
		WithContext("field", field).
		Build()
}
