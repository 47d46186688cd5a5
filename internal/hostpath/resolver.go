// SPDX-License-Identifier: MPL-2.0

// Package hostpath resolves host filesystem paths into the canonical,
// forward-slash form used in container bind-mount specifications.
package hostpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathResolution is the sentinel error wrapped by PathResolutionError.
var ErrPathResolution = errors.New("failed to resolve path")

type (
	// Paths holds everything the planner needs to know about the host side.
	// All fields are absolute and use forward slashes.
	Paths struct {
		ScriptAbsolutePath string
		ScriptDirectory    string
		ScriptFilename     string
		WorkingDirectory   string
	}

	// PathResolutionError is returned when a path cannot be canonicalized.
	PathResolutionError struct {
		Path string
		Err  error
	}

	// Option configures a Resolver.
	Option func(*Resolver)

	// Resolver canonicalizes host paths. The zero value is not usable; use NewResolver.
	Resolver struct {
		getwd        func() (string, error)
		abs          func(string) (string, error)
		evalSymlinks func(string) (string, error)
	}
)

// Error implements the error interface.
func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve path %q: %v", e.Path, e.Err)
}

// Unwrap returns ErrPathResolution and the underlying error.
func (e *PathResolutionError) Unwrap() []error { return []error{ErrPathResolution, e.Err} }

// WithGetwd overrides how the current working directory is obtained.
func WithGetwd(fn func() (string, error)) Option {
	return func(r *Resolver) {
		r.getwd = fn
	}
}

// NewResolver creates a Resolver backed by the OS.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		getwd:        os.Getwd,
		abs:          filepath.Abs,
		evalSymlinks: filepath.EvalSymlinks,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RealPath returns the absolute, symlink-free form of path.
// The path must exist.
func (r *Resolver) RealPath(path string) (string, error) {
	if path == "" {
		return "", &PathResolutionError{Path: path, Err: errors.New("empty path")}
	}
	abs, err := r.abs(path)
	if err != nil {
		return "", &PathResolutionError{Path: path, Err: err}
	}
	resolved, err := r.evalSymlinks(abs)
	if err != nil {
		return "", &PathResolutionError{Path: path, Err: err}
	}
	return filepath.ToSlash(resolved), nil
}

// WorkingDirectory returns the current working directory.
func (r *Resolver) WorkingDirectory() (string, error) {
	wd, err := r.getwd()
	if err != nil {
		return "", &PathResolutionError{Path: ".", Err: err}
	}
	return filepath.ToSlash(wd), nil
}

// Resolve canonicalizes scriptPath and captures the working directory.
func (r *Resolver) Resolve(scriptPath string) (Paths, error) {
	resolved, err := r.RealPath(scriptPath)
	if err != nil {
		return Paths{}, err
	}
	wd, err := r.WorkingDirectory()
	if err != nil {
		return Paths{}, err
	}
	return Paths{
		ScriptAbsolutePath: resolved,
		ScriptDirectory:    Dir(resolved),
		ScriptFilename:     Base(resolved),
		WorkingDirectory:   wd,
	}, nil
}

// Dir returns the directory part of a forward-slash absolute path.
// Volume names are kept, so "C:/x.py" yields "C:/".
func Dir(absolutePath string) string {
	return filepath.ToSlash(filepath.Dir(filepath.FromSlash(absolutePath)))
}

// Base returns the last element of a forward-slash path.
func Base(absolutePath string) string {
	return filepath.Base(filepath.FromSlash(absolutePath))
}
