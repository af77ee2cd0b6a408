// Package options provides the read-only collaborators the optimizer
// consults instead of ambient globals: a settings provider and a named
// override (filter) registry.
package options

import "github.com/speedkit/lcpboost/models"

// Setting keys the optimizer reads.
const (
	KeyCacheMobile          = "cache_mobile"
	KeyDoCachingMobileFiles = "do_caching_mobile_files"
)

// Provider exposes site settings by key with a caller-supplied default.
type Provider interface {
	Bool(key string, def bool) bool
	String(key string, def string) string
}

// Map is a Provider backed by a plain map. Missing keys and values of the
// wrong type fall back to the default.
type Map map[string]any

func (m Map) Bool(key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

func (m Map) String(key string, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

// FromConfig adapts the loaded config file to a Provider.
func FromConfig(cfg *models.Config) Map {
	if cfg == nil {
		return Map{}
	}
	return Map{
		KeyCacheMobile:          cfg.CacheMobile,
		KeyDoCachingMobileFiles: cfg.DoCachingMobileFiles,
	}
}
