// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	cmd "github.com/adamrehn/docker-script/cmd/dockerscript"
)

func main() {
	os.Exit(cmd.Execute())
}
