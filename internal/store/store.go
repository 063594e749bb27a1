// Package store persists the newest-first commit history of a repository.
//
// A store is a write-mostly sink: the in-memory graph is authoritative and
// every successful mutation replaces the stored history of that repository.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/keshon/minigit/internal/graph"
)

var (
	ErrCorrupt     = errors.New("stored history is corrupt")
	ErrInvalidName = errors.New("invalid repository name")
	ErrClosed      = errors.New("store is closed")
)

// HistoryStore saves and loads history per repository name.
// Load of an unknown repository returns an empty list and no error.
type HistoryStore interface {
	Save(ctx context.Context, repo string, records []graph.Record) error
	Load(ctx context.Context, repo string) ([]graph.Record, error)
	Delete(ctx context.Context, repo string) error
	// Repositories lists the names with stored history, sorted.
	Repositories(ctx context.Context) ([]string, error)
	Close() error
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// ValidateName reports whether name can be used as a repository key in
// every store backend, including as a file name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
