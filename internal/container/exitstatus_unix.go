// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package container

import (
	"os"
	"os/exec"
	"syscall"
)

// exitCode follows the shell convention of 128+signal for signalled children.
func exitCode(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return exitErr.ExitCode()
}

func interrupt(p *os.Process) error {
	return p.Signal(os.Interrupt)
}
