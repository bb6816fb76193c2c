package config

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Validate reports the first invalid field of cfg as a config error.
func Validate(cfg *Config) error {
	checks := []struct {
		ok      bool
		field   string
		message string
	}{
		{cfg.Content.Root != "", "content.root", "content root is required"},
		{strings.HasPrefix(cfg.Content.Extension, ".") && len(cfg.Content.Extension) > 1, "content.extension", "extension must start with a dot"},
		{validSegment(cfg.Content.IndexName), "content.index_name", "index name must be a single path segment"},
		{validSegment(cfg.Content.DocsRoot), "content.docs_root", "docs root must be a single path segment"},
		{cfg.Content.MaxDepth > 0, "content.max_depth", "max depth must be positive"},
		{cfg.Content.Concurrency > 0, "content.concurrency", "concurrency must be positive"},
		{cfg.Navigation.CacheTTL > 0, "navigation.cache_ttl", "cache ttl must be positive"},
		{cfg.Navigation.CacheCapacity > 0, "navigation.cache_capacity", "cache capacity must be positive"},
		{cfg.Navigation.SweepInterval >= time.Second, "navigation.sweep_interval", "sweep interval must be at least 1s"},
		{validPort(cfg.Server.DocsPort), "server.docs_port", "port out of range"},
		{validPort(cfg.Server.AdminPort), "server.admin_port", "port out of range"},
		{cfg.Server.DocsPort != cfg.Server.AdminPort, "server.admin_port", "docs and admin ports must differ"},
		{cfg.Server.SharedCacheMaxAge >= 0, "server.shared_cache_max_age", "must not be negative"},
		{cfg.Server.StaleWhileRevalidate >= 0, "server.stale_while_revalidate", "must not be negative"},
		{cfg.Export.Output != "", "export.output", "export output directory is required"},
	}
	for _, c := range checks {
		if !c.ok {
			return errors.ConfigError(c.message).
				WithContext("field", c.field).
				Build()
		}
	}
	return nil
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

func validPort(p int) bool {
	return p > 0 && p < 65536
}
