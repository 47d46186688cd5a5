// SPDX-License-Identifier: MPL-2.0

package container

type (
	// EnvVar is a single NAME=VALUE pair passed with -e.
	EnvVar struct {
		Name  string
		Value string
	}

	// RunSpec describes a "run" invocation. Slices keep their order in the
	// generated arguments.
	RunSpec struct {
		// Volumes are bind mounts passed with -v.
		Volumes []VolumeMount
		// Privileged grants the container extended privileges.
		Privileged bool
		// WorkDir is the working directory inside the container.
		WorkDir MountTargetPath
		// Env contains environment variables.
		Env []EnvVar
		// Interactive keeps stdin open.
		Interactive bool
		// TTY allocates a pseudo-TTY.
		TTY bool
		// Name is the container name; empty lets the runtime pick one.
		Name string
		// Remove automatically removes the container after exit.
		Remove bool
		// ClearEntrypoint resets the image's entrypoint so Command runs directly.
		ClearEntrypoint bool
		// Image is the image to run.
		Image string
		// Command is the command and arguments to run.
		Command []string
	}
)

// String returns the variable in NAME=VALUE format.
func (e EnvVar) String() string { return e.Name + "=" + e.Value }

// RunArgs constructs arguments for a container run command.
//
// Generated command: <binary> run [mounts] [--privileged] [-w dir] [env]
// [-i] [-t] [--name name] [--rm] [--entrypoint=] <image> [command...]
func RunArgs(spec RunSpec) []string {
	args := []string{"run"}

	for _, v := range spec.Volumes {
		args = append(args, "-v", v.String())
	}

	if spec.Privileged {
		args = append(args, "--privileged")
	}

	if spec.WorkDir != "" {
		args = append(args, "-w", string(spec.WorkDir))
	}

	for _, e := range spec.Env {
		args = append(args, "-e", e.String())
	}

	if spec.Interactive {
		args = append(args, "-i")
	}

	if spec.TTY {
		args = append(args, "-t")
	}

	if spec.Name != "" {
		args = append(args, "--name", spec.Name)
	}

	if spec.Remove {
		args = append(args, "--rm")
	}

	if spec.ClearEntrypoint {
		args = append(args, "--entrypoint=")
	}

	args = append(args, spec.Image)
	args = append(args, spec.Command...)

	return args
}
