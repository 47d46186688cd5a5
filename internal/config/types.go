// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/adamrehn/docker-script/internal/container"
	"github.com/adamrehn/docker-script/internal/gpuimage"
)

// DefaultGPUAlias is the program name that always selects the GPU runtime.
const DefaultGPUAlias = "nvidia-docker-script"

var (
	// ErrInvalidGPUAlias is the sentinel error wrapped by InvalidGPUAliasError.
	ErrInvalidGPUAlias = errors.New("invalid GPU alias")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config holds the application configuration.
	Config struct {
		// Runtime selects the container runtime binaries.
		Runtime RuntimeConfig `json:"runtime" mapstructure:"runtime"`
		// GPUImages lists images that need the GPU runtime.
		GPUImages []string `json:"gpu_images" mapstructure:"gpu_images"`
		// ExtraGPUImages are appended to GPUImages.
		ExtraGPUImages []string `json:"extra_gpu_images" mapstructure:"extra_gpu_images"`
		// GPUAliases are program names that force the GPU runtime.
		GPUAliases []string `json:"gpu_aliases" mapstructure:"gpu_aliases"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`

		// Source is the file the configuration was read from; empty for defaults.
		Source string `json:"-" mapstructure:"-"`
	}

	// RuntimeConfig names the runtime binaries.
	RuntimeConfig struct {
		// Default is used unless the GPU runtime is selected.
		Default container.Runtime `json:"default" mapstructure:"default"`
		// GPU is used for GPU images, the force marker and alias invocations.
		GPU container.Runtime `json:"gpu" mapstructure:"gpu"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose always prints the diagnostic report.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Color enables styled diagnostic output.
		Color bool `json:"color" mapstructure:"color"`
	}

	// InvalidGPUAliasError is returned when a GPU alias is blank.
	InvalidGPUAliasError struct {
		Value string
	}

	// InvalidConfigError is returned when one or more fields are invalid.
	// It wraps the individual field errors for inspection.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidGPUAliasError) Error() string {
	return fmt.Sprintf("invalid GPU alias %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidGPUAlias for errors.Is() compatibility.
func (e *InvalidGPUAliasError) Unwrap() error { return ErrInvalidGPUAlias }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Default: container.RuntimeDocker,
			GPU:     container.RuntimeNvidiaDocker,
		},
		GPUImages:      gpuimage.DefaultImages(),
		ExtraGPUImages: []string{},
		GPUAliases:     []string{DefaultGPUAlias},
		UI: UIConfig{
			Verbose: false,
			Color:   true,
		},
	}
}

// Validate returns an error if any field is invalid.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Runtime.Default.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("runtime.default: %w", err))
	}
	if err := c.Runtime.GPU.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("runtime.gpu: %w", err))
	}
	for i, alias := range c.GPUAliases {
		if strings.TrimSpace(alias) == "" {
			errs = append(errs, fmt.Errorf("gpu_aliases[%d]: %w", i, &InvalidGPUAliasError{Value: alias}))
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// GPUImagePatterns returns GPUImages followed by ExtraGPUImages.
func (c *Config) GPUImagePatterns() []string {
	return slices.Concat(c.GPUImages, c.ExtraGPUImages)
}

// GPURegistry builds the GPU image registry described by the configuration.
func (c *Config) GPURegistry() *gpuimage.Registry {
	return gpuimage.New(c.GPUImagePatterns()...)
}

// IsGPUAlias reports whether programName is one of the configured GPU aliases.
func (c *Config) IsGPUAlias(programName string) bool {
	return slices.Contains(c.GPUAliases, programName)
}
