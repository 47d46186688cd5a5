// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"errors"
	"strings"
)

// Option markers. The triple dash keeps them apart from flags the script
// itself may want to receive.
const (
	MarkerVerbose        = "---verbose"
	MarkerDebug          = "---debug"
	MarkerNonInteractive = "---non-interactive"
	MarkerGPURuntime     = "---nvidia-docker"
	MarkerDryRun         = "---dry-run"
	MarkerNamePrefix     = "---name="
)

// ErrMissingScript is returned by ParseArgs when no script path is given.
var ErrMissingScript = errors.New("no script path given")

// Options controls how a script is launched.
type Options struct {
	// ForceGPURuntime always selects the GPU runtime.
	ForceGPURuntime bool
	// Interactive keeps the container's stdin open (-i) in addition to the TTY.
	Interactive bool
	// Verbose prints a diagnostic report before running.
	Verbose bool
	// Debug runs the container privileged.
	Debug bool
	// DryRun prints the command line instead of executing it.
	DryRun bool
	// ContainerName names the container; empty means unnamed.
	ContainerName string
	// TrailingArgs are forwarded to the script in order.
	TrailingArgs []string
}

// DefaultOptions returns the options used when no marker is given.
func DefaultOptions() Options {
	return Options{Interactive: true}
}

// ParseArgs splits the program arguments (without the program name) into the
// script path and the launch options. The first argument is always the
// script path. Markers may appear anywhere after it; every other token is a
// trailing argument.
func ParseArgs(args []string) (scriptPath string, opts Options, err error) {
	opts = DefaultOptions()
	if len(args) == 0 {
		return "", opts, ErrMissingScript
	}

	for _, arg := range args[1:] {
		switch {
		case arg == MarkerVerbose:
			opts.Verbose = true
		case arg == MarkerDebug:
			opts.Debug = true
		case arg == MarkerNonInteractive:
			opts.Interactive = false
		case arg == MarkerGPURuntime:
			opts.ForceGPURuntime = true
		case arg == MarkerDryRun:
			opts.DryRun = true
		case strings.HasPrefix(arg, MarkerNamePrefix):
			opts.ContainerName = strings.TrimPrefix(arg, MarkerNamePrefix)
		default:
			opts.TrailingArgs = append(opts.TrailingArgs, arg)
		}
	}

	return args[0], opts, nil
}
