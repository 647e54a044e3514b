// Package bundlefile reads and writes the portable JSON bundle format:
//
//	{ "version": "1.0.0", "timestamp": "<RFC 3339>", "entries": [ ["word_nosc", "lemma"], ... ] }
//
// This is the artifact the build pipeline publishes and hosts cache;
// entry order is preserved exactly through a round trip.
package bundlefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/camille/redite/internal/ports"
)

// Write serializes the bundle to path atomically: the file is written
// next to its destination and renamed into place, so a crash mid-write
// never leaves a truncated bundle behind.
func Write(path string, b *ports.Bundle) error {
	if b == nil {
		return fmt.Errorf("nil bundle")
	}

	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename bundle: %w", err)
	}
	return nil
}

// Read deserializes a bundle from path.
func Read(path string) (*ports.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}

	var b ports.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	return &b, nil
}
