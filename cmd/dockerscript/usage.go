// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/adamrehn/docker-script/internal/invocation"
)

type usageOption struct {
	marker string
	help   string
}

var usageOptions = []usageOption{
	{invocation.MarkerVerbose, "Print a report of the resolved invocation before running"},
	{invocation.MarkerDebug, "Run the container privileged (for debuggers)"},
	{invocation.MarkerNonInteractive, "Allocate a TTY but do not keep stdin open"},
	{invocation.MarkerGPURuntime, "Use the GPU runtime (nvidia-docker) instead of docker"},
	{invocation.MarkerDryRun, "Print the generated command instead of running it"},
	{invocation.MarkerNamePrefix + "NAME", "Name the container"},
}

// writeUsage prints the usage text. Every token not listed above is passed
// to the script, so the options use a triple dash.
func writeUsage(w io.Writer, p painter, programName string) {
	var sb strings.Builder

	sb.WriteString(p.paint(TitleStyle, "Usage:") + "\n")
	fmt.Fprintf(&sb, "  %s <SCRIPT> [options] [args for script]\n\n", programName)

	sb.WriteString("The first line of the script file should be a normal Unix shebang line.\n")
	sb.WriteString("The second line of the script file should be:\n")
	sb.WriteString("  " + p.paint(CmdStyle, "#!<IMAGE> <INTERPRETER>") + "\n\n")

	sb.WriteString(p.paint(TitleStyle, "Supported options:") + "\n")
	for _, opt := range usageOptions {
		fmt.Fprintf(&sb, "  %s %s\n", p.paint(CmdStyle, fmt.Sprintf("%-20s", opt.marker)), opt.help)
	}
	sb.WriteString("\n")
	sb.WriteString(p.paint(SubtitleStyle, "Any other argument is forwarded to the script.") + "\n")

	fmt.Fprint(w, sb.String())
}
