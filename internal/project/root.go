// Package project locates the directory documentation is generated under.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultMarkers lists the entries whose presence marks a repository root.
// .git may be a directory or, inside a worktree, a file.
var DefaultMarkers = []string{".git"}

// Resolver finds the project root for a working directory.
type Resolver struct {
	fs      afero.Fs
	markers []string
}

// ResolverOption customizes a Resolver during construction.
type ResolverOption func(*Resolver)

// WithMarkers overrides the root markers searched for.
func WithMarkers(markers ...string) ResolverOption {
	return func(r *Resolver) {
		if len(markers) > 0 {
			r.markers = append([]string{}, markers...)
		}
	}
}

// NewResolver builds a resolver over fsys.
func NewResolver(fsys afero.Fs, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fs:      fsys,
		markers: DefaultMarkers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns explicit verbatim when it is non-empty. Otherwise it walks
// from cwd towards the filesystem root and returns the first directory holding
// a marker, falling back to cwd when none does. The filesystem root itself is
// never considered.
func (r *Resolver) Resolve(explicit, cwd string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if cwd == "" {
		return "", fmt.Errorf("project: working directory is empty")
	}
	for current := filepath.Clean(cwd); filepath.Dir(current) != current; current = filepath.Dir(current) {
		found, err := r.hasMarker(current)
		if err != nil {
			return "", err
		}
		if found {
			return current, nil
		}
	}
	return cwd, nil
}

func (r *Resolver) hasMarker(dir string) (bool, error) {
	for _, marker := range r.markers {
		path := filepath.Join(dir, marker)
		if _, err := r.fs.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return false, fmt.Errorf("project: stat %s: %w", path, err)
		}
		return true, nil
	}
	return false, nil
}
