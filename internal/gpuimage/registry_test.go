// SPDX-License-Identifier: MPL-2.0

package gpuimage

import (
	"slices"
	"testing"
)

func TestBareName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		image string
		want  string
	}{
		{"ubuntu", "ubuntu"},
		{"ubuntu:18.04", "ubuntu"},
		{"nvidia/cuda:9.0", "nvidia/cuda"},
		{"nvidia/cuda@sha256:0123abcd", "nvidia/cuda"},
		{"nvidia/cuda:9.0@sha256:0123abcd", "nvidia/cuda"},
		{"localhost:5000/nvidia/cuda", "localhost:5000/nvidia/cuda"},
		{"localhost:5000/nvidia/cuda:9.0", "localhost:5000/nvidia/cuda"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			t.Parallel()
			if got := BareName(tt.image); got != tt.want {
				t.Errorf("BareName(%q) = %q, want %q", tt.image, got, tt.want)
			}
		})
	}
}

func TestRegistry_RequiresGPURuntime_Defaults(t *testing.T) {
	t.Parallel()
	r := NewDefault()

	tests := []struct {
		image string
		want  bool
	}{
		// bare-name entries match any tag
		{"nvidia/cuda", true},
		{"nvidia/cuda:9.0", true},
		{"nvidia/cuda:11.8.0-runtime-ubuntu22.04", true},
		{"nvidia/digits:6.0", true},
		{"kaixhin/cuda-theano:latest", true},

		// repository:tag entries match only that tag
		{"bvlc/caffe:gpu", true},
		{"bvlc/caffe:cpu", false},
		{"bvlc/caffe", false},
		{"tensorflow/tensorflow:latest-gpu", true},
		{"tensorflow/tensorflow:latest", false},
		{"microsoft/cntk:latest", true},
		{"microsoft/cntk:2.0", false},

		// case-sensitive
		{"NVIDIA/cuda", false},

		// unlisted
		{"ubuntu:18.04", false},
		{"python:latest", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.image, func(t *testing.T) {
			t.Parallel()
			if got := r.RequiresGPURuntime(tt.image); got != tt.want {
				t.Errorf("RequiresGPURuntime(%q) = %v, want %v", tt.image, got, tt.want)
			}
		})
	}
}

func TestRegistry_Custom(t *testing.T) {
	t.Parallel()

	r := New("  my/gpu-image ", "", "other/image:cuda", "my/gpu-image")

	want := []string{"my/gpu-image", "other/image:cuda"}
	if got := r.Patterns(); !slices.Equal(got, want) {
		t.Errorf("Patterns() = %v, want %v", got, want)
	}
	if !r.RequiresGPURuntime("my/gpu-image:v2") {
		t.Error("expected my/gpu-image:v2 to require the GPU runtime")
	}
	if r.RequiresGPURuntime("nvidia/cuda") {
		t.Error("custom registry should not include the built-in list")
	}
}

func TestRegistry_ZeroAndNil(t *testing.T) {
	t.Parallel()

	var nilRegistry *Registry
	if nilRegistry.RequiresGPURuntime("nvidia/cuda") {
		t.Error("nil registry should match nothing")
	}
	if nilRegistry.Patterns() != nil {
		t.Error("nil registry should be empty")
	}

	var zero Registry
	if zero.RequiresGPURuntime("nvidia/cuda") {
		t.Error("zero registry should match nothing")
	}
}

func TestDefaultImages_ReturnsCopy(t *testing.T) {
	t.Parallel()

	images := DefaultImages()
	images[0] = "mutated"
	if DefaultImages()[0] != "nvidia/cuda" {
		t.Error("DefaultImages() must not expose the backing slice")
	}
}
