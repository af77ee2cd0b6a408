// Package caching provides a simple file-based cache with a TTL, used by
// the serve command to avoid re-optimizing identical page content.
package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache stores entries as files named by the SHA256 of their key.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// PageKey derives the cache key for one optimization result: the page
// identity plus a digest of the rendered content, so a re-rendered page
// never serves a stale transformation.
func PageKey(url string, isMobile bool, content []byte) string {
	device := "desktop"
	if isMobile {
		device = "mobile"
	}
	return fmt.Sprintf("%s|%s|%x", url, device, sha256.Sum256(content))
}

func (c *Cache) file(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(c.path, fmt.Sprintf("%x", hash))
}

// Get retrieves an item from the cache.
// It returns the data and true if the item is found and not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	filePath := c.file(key)

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, false // Cache miss
	}

	// Check if expired
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false // Cache miss (expired)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false // Cache miss (read error)
	}

	return data, true // Cache hit
}

// Set adds an item to the cache.
func (c *Cache) Set(key string, data []byte) error {
	if err := os.WriteFile(c.file(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
