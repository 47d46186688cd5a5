// SPDX-License-Identifier: MPL-2.0

//go:build windows

package container

import (
	"os"
	"os/exec"
)

func exitCode(exitErr *exec.ExitError) int {
	return exitErr.ExitCode()
}

// interrupt kills the child: Windows has no way to deliver os.Interrupt to
// another process.
func interrupt(p *os.Process) error {
	return p.Kill()
}
