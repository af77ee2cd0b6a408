// Package common holds small helpers shared by the CLI actions.
package common

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"strings"

	"github.com/speedkit/lcpboost/models"
)

// ContentHash returns the SHA256 hex digest of data.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

// RequestPath extracts the request path from a page URL or bare path
// argument. "/about" stays as-is; "https://example.com/about" becomes
// "/about". The empty path is "/".
func RequestPath(arg string) string {
	if arg == "" {
		return "/"
	}
	if strings.HasPrefix(arg, "/") {
		return arg
	}
	if u, err := url.Parse(arg); err == nil && u.Host != "" {
		if u.Path == "" {
			return "/"
		}
		return u.Path
	}
	return "/" + arg
}

// LoadConfig loads the YAML config at path, or the defaults when path is
// empty.
func LoadConfig(path string) (*models.Config, error) {
	if path == "" {
		return models.DefaultConfig(), nil
	}
	cfg, err := models.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// SplitList splits a comma-separated flag value, trimming whitespace and
// dropping empties.
func SplitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
