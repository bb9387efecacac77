package model

import (
	"fmt"
	"os"
)

// Identity is an immutable (path, kind) pair naming one discovered input
// file. Two identities are equal when both path and kind are equal, which a
// PendingSet relies on for deduplication.
type Identity struct {
	Path string
	Kind Kind
}

// NewIdentity classifies path and verifies it exists on the filesystem.
// Existence is checked once here, never re-verified later; a file deleted
// between discovery and processing surfaces as a job-time read error.
// Directories and unrecognized extensions classify as KindUnsupported.
func NewIdentity(path string) (Identity, error) {
	if _, err := os.Stat(path); err != nil {
		return Identity{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Identity{Path: path, Kind: KindForPath(path)}, nil
}

// Supported reports whether the identity's kind is recognized.
func (id Identity) Supported() bool {
	return id.Kind != KindUnsupported
}
