package config

import (
	"time"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/navcache"
	"git.home.luguber.info/inful/docsite/internal/navigation"
)

const (
	DefaultTitle                = "Documentation"
	DefaultContentRoot          = "./content"
	DefaultDocsPort             = 3003
	DefaultAdminPort            = 3004
	DefaultSweepInterval        = time.Minute
	DefaultSharedCacheMaxAge    = time.Hour
	DefaultStaleWhileRevalidate = 24 * time.Hour
	DefaultShutdownTimeout      = 10 * time.Second
	DefaultExportOutput         = "./out"
)

func applyDefaults(cfg *Config) {
	if cfg.Site.Title == "" {
		cfg.Site.Title = DefaultTitle
	}

	c := &cfg.Content
	if c.Root == "" {
		c.Root = DefaultContentRoot
	}
	if c.Extension == "" {
		c.Extension = content.DefaultExtension
	}
	if c.IndexName == "" {
		c.IndexName = content.DefaultIndexName
	}
	if c.DocsRoot == "" {
		c.DocsRoot = navigation.DefaultDocsRoot
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = content.DefaultMaxDepth
	}
	if c.Concurrency == 0 {
		c.Concurrency = content.DefaultConcurrency
	}

	n := &cfg.Navigation
	if n.CacheTTL == 0 {
		n.CacheTTL = navcache.DefaultTTL
	}
	if n.CacheCapacity == 0 {
		n.CacheCapacity = navcache.DefaultCapacity
	}
	if n.SweepInterval == 0 {
		n.SweepInterval = DefaultSweepInterval
	}

	s := &cfg.Server
	if s.DocsPort == 0 {
		s.DocsPort = DefaultDocsPort
	}
	if s.AdminPort == 0 {
		s.AdminPort = DefaultAdminPort
	}
	if s.SharedCacheMaxAge == 0 {
		s.SharedCacheMaxAge = DefaultSharedCacheMaxAge
	}
	if s.StaleWhileRevalidate == 0 {
		s.StaleWhileRevalidate = DefaultStaleWhileRevalidate
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}

	if cfg.Export.Output == "" {
		cfg.Export.Output = DefaultExportOutput
	}
}
