// Package storage wraps the filesystem touch points: reading pages to
// optimize, writing results, and probing for the beacon asset.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

type Storage struct{}

// Exists reports whether path exists. It backs the injector's beacon
// asset probe.
func (s *Storage) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func (s *Storage) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

// SaveFile writes content to path, creating parent directories as needed.
func (s *Storage) SaveFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}
