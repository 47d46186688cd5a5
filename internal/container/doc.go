// SPDX-License-Identifier: MPL-2.0

// Package container builds and runs container-runtime CLI invocations.
//
// RunArgs turns a RunSpec into the exact argument list for "<runtime> run",
// in a fixed order so the generated command is reproducible. Engine executes
// such an argument list against a runtime binary found on PATH (docker,
// nvidia-docker, or any CLI-compatible replacement) and reports the child's
// exit status.
//
// Only a single run-and-wait invocation is supported: no image pulls or
// builds, no container lifecycle management beyond --rm.
package container
