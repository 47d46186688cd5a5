// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/adamrehn/docker-script/internal/hostpath"
	"github.com/adamrehn/docker-script/internal/invocation"
	"github.com/adamrehn/docker-script/internal/script"
)

// launchReport is everything the verbose report shows.
type launchReport struct {
	Header      script.Header
	Paths       hostpath.Paths
	Options     invocation.Options
	Plan        invocation.PlannedInvocation
	CommandLine string
	ConfigFile  string
}

// writeReport prints the resolved invocation, one field per line.
func writeReport(w io.Writer, p painter, r launchReport) {
	var sb strings.Builder

	row := func(label, value string) {
		sb.WriteString(p.label(label) + " " + value + "\n")
	}

	sb.WriteString(p.paint(TitleStyle, "docker-script invocation") + "\n")
	row("Docker image:", r.Header.Image)
	row("Interpreter:", r.Header.Interpreter)
	row("Script path:", r.Paths.ScriptAbsolutePath)
	row("Script basename:", r.Paths.ScriptFilename)
	row("Script dirname:", r.Paths.ScriptDirectory)
	row("Working directory:", r.Paths.WorkingDirectory)
	row("Trailing arguments:", quoteWords(r.Options.TrailingArgs))
	row("Runtime:", fmt.Sprintf("%s (%s)", r.Plan.Runtime, r.Plan.Reason))
	if r.Options.ContainerName != "" {
		row("Container name:", r.Options.ContainerName)
	}
	if r.ConfigFile != "" {
		row("Config file:", r.ConfigFile)
	}
	sb.WriteString("\n")
	sb.WriteString(p.label("Docker command:") + "\n")
	sb.WriteString(p.paint(CmdStyle, r.CommandLine) + "\n\n")

	fmt.Fprint(w, sb.String())
}

// quoteWords renders args as shell words so empty and spaced arguments stay visible.
func quoteWords(args []string) string {
	words := make([]string, len(args))
	for i, a := range args {
		q, err := syntax.Quote(a, syntax.LangBash)
		if err != nil {
			q = fmt.Sprintf("%q", a)
		}
		words[i] = q
	}
	return strings.Join(words, " ")
}
