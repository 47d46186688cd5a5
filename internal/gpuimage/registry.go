// SPDX-License-Identifier: MPL-2.0

// Package gpuimage decides whether a container image needs the GPU-aware
// container runtime (nvidia-docker) instead of the default one.
//
// The decision is a plain string-membership test against an allow-list of
// patterns. A pattern is either a bare repository name ("nvidia/cuda"), which
// matches every tag of that repository, or a repository:tag pair
// ("bvlc/caffe:gpu"), which matches only that exact reference. Images that are
// missing from the list are run with the default runtime.
package gpuimage

import (
	"slices"
	"strings"
)

// defaultImages are the images known to need GPU passthrough.
var defaultImages = []string{
	// NVIDIA images
	"nvidia/cuda",
	"nvidia/caffe",
	"nvidia/digits",

	// Third-party images
	"bvlc/caffe:gpu",
	"dmlc/mxnet:cuda",
	"kaixhin/cuda-theano",
	"microsoft/cntk:latest",
	"tensorflow/tensorflow:latest-gpu",
}

// Registry is an immutable set of GPU image patterns.
// The zero value matches nothing.
type Registry struct {
	patterns []string
	set      map[string]struct{}
}

// DefaultImages returns a copy of the built-in GPU image list.
func DefaultImages() []string {
	return slices.Clone(defaultImages)
}

// New creates a Registry from the given patterns.
// Surrounding whitespace is trimmed and empty patterns are ignored.
// Matching is case-sensitive.
func New(patterns ...string) *Registry {
	r := &Registry{set: make(map[string]struct{}, len(patterns))}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := r.set[p]; dup {
			continue
		}
		r.set[p] = struct{}{}
		r.patterns = append(r.patterns, p)
	}
	return r
}

// NewDefault creates a Registry holding the built-in GPU image list.
func NewDefault() *Registry {
	return New(defaultImages...)
}

// Patterns returns the registered patterns in insertion order.
func (r *Registry) Patterns() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.patterns)
}

// RequiresGPURuntime reports whether image needs the GPU-aware runtime.
// It is true when either the full reference or its tagless repository name is
// registered.
func (r *Registry) RequiresGPURuntime(image string) bool {
	if r == nil || len(r.set) == 0 {
		return false
	}
	if _, ok := r.set[image]; ok {
		return true
	}
	_, ok := r.set[BareName(image)]
	return ok
}

// BareName strips the tag and digest from an image reference.
//
//	nvidia/cuda:9.0              -> nvidia/cuda
//	nvidia/cuda@sha256:...       -> nvidia/cuda
//	localhost:5000/nvidia/cuda   -> localhost:5000/nvidia/cuda
//
// A colon is only treated as a tag separator when it follows the last path
// separator, so registry host ports are preserved.
func BareName(image string) string {
	if i := strings.IndexByte(image, '@'); i >= 0 {
		image = image[:i]
	}
	lastSlash := strings.LastIndexByte(image, '/')
	if i := strings.LastIndexByte(image, ':'); i > lastSlash {
		return image[:i]
	}
	return image
}
