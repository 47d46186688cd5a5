// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"github.com/adamrehn/docker-script/internal/container"
	"github.com/adamrehn/docker-script/internal/hostpath"
	"github.com/adamrehn/docker-script/internal/script"
)

const (
	// ScriptDirMount is where the script's directory is mounted.
	ScriptDirMount container.MountTargetPath = "/scriptdir"
	// WorkingDirMount is where the caller's working directory is mounted.
	WorkingDirMount container.MountTargetPath = "/workingdir"
	// HostCwdEnv exposes the caller's working directory to the script.
	HostCwdEnv = "HOST_CWD"
)

// Runtime selection reasons, most specific first.
const (
	ReasonDefault  RuntimeReason = "default"
	ReasonForced   RuntimeReason = "forced by " + MarkerGPURuntime
	ReasonAlias    RuntimeReason = "invoked under GPU alias"
	ReasonGPUImage RuntimeReason = "image requires GPU"
)

type (
	// RuntimeReason records why a runtime was chosen.
	RuntimeReason string

	// GPUImageChecker reports whether an image needs the GPU runtime.
	GPUImageChecker interface {
		RequiresGPURuntime(image string) bool
	}

	// PlannedInvocation is a fully resolved runtime command.
	PlannedInvocation struct {
		Runtime   container.Runtime
		Arguments []string
		Reason    RuntimeReason
	}

	// PlannerOption configures a Planner.
	PlannerOption func(*Planner)

	// Planner turns a header, resolved paths and options into a PlannedInvocation.
	// It performs no I/O.
	Planner struct {
		gpuImages      GPUImageChecker
		defaultRuntime container.Runtime
		gpuRuntime     container.Runtime
	}
)

// String returns the reason text.
func (r RuntimeReason) String() string { return string(r) }

// WithRuntimes overrides the default and GPU runtime binaries.
// Empty values keep the built-in defaults.
func WithRuntimes(defaultRuntime, gpuRuntime container.Runtime) PlannerOption {
	return func(p *Planner) {
		if defaultRuntime != "" {
			p.defaultRuntime = defaultRuntime
		}
		if gpuRuntime != "" {
			p.gpuRuntime = gpuRuntime
		}
	}
}

// NewPlanner creates a Planner. A nil checker never requests the GPU runtime.
func NewPlanner(gpuImages GPUImageChecker, opts ...PlannerOption) *Planner {
	p := &Planner{
		gpuImages:      gpuImages,
		defaultRuntime: container.RuntimeDocker,
		gpuRuntime:     container.RuntimeNvidiaDocker,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SelectRuntime picks the runtime binary. Any one trigger switches to the GPU
// runtime; triggers never cancel each other out.
func (p *Planner) SelectRuntime(image string, opts Options, invokedAsGPUAlias bool) (container.Runtime, RuntimeReason) {
	switch {
	case opts.ForceGPURuntime:
		return p.gpuRuntime, ReasonForced
	case invokedAsGPUAlias:
		return p.gpuRuntime, ReasonAlias
	case p.gpuImages != nil && p.gpuImages.RequiresGPURuntime(image):
		return p.gpuRuntime, ReasonGPUImage
	default:
		return p.defaultRuntime, ReasonDefault
	}
}

// Plan assembles the runtime command for a script. The argument order is
// fixed; see container.RunArgs for the layout.
func (p *Planner) Plan(header script.Header, paths hostpath.Paths, opts Options, invokedAsGPUAlias bool) (PlannedInvocation, error) {
	scriptMount := container.VolumeMount{
		HostPath:      container.HostFilesystemPath(paths.ScriptDirectory),
		ContainerPath: ScriptDirMount,
	}
	workMount := container.VolumeMount{
		HostPath:      container.HostFilesystemPath(paths.WorkingDirectory),
		ContainerPath: WorkingDirMount,
	}
	for _, m := range []container.VolumeMount{scriptMount, workMount} {
		if err := m.Validate(); err != nil {
			return PlannedInvocation{}, err
		}
	}

	command := make([]string, 0, 2+len(opts.TrailingArgs))
	command = append(command, header.Interpreter, string(ScriptDirMount)+"/"+paths.ScriptFilename)
	command = append(command, opts.TrailingArgs...)

	spec := container.RunSpec{
		Volumes:         []container.VolumeMount{scriptMount, workMount},
		Privileged:      opts.Debug,
		WorkDir:         WorkingDirMount,
		Env:             []container.EnvVar{{Name: HostCwdEnv, Value: paths.WorkingDirectory}},
		Interactive:     opts.Interactive,
		TTY:             true,
		Name:            opts.ContainerName,
		Remove:          true,
		ClearEntrypoint: true,
		Image:           header.Image,
		Command:         command,
	}

	rt, reason := p.SelectRuntime(header.Image, opts, invokedAsGPUAlias)
	return PlannedInvocation{
		Runtime:   rt,
		Arguments: container.RunArgs(spec),
		Reason:    reason,
	}, nil
}
