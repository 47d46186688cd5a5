// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the docker-script command line driver.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// newRootCommand creates the root command. Flag parsing is disabled: every
// token after the script path belongs either to the "---" option grammar or
// to the script itself.
func newRootCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   app.ProgramName + " <SCRIPT> [options] [args...]",
		Short: "Run a script inside the container image named in its second shebang line",
		Long: TitleStyle.Render(app.ProgramName) + SubtitleStyle.Render(" - run scripts inside Docker containers") + `

The first line of the script is an ordinary shebang for the host; the second
names the image and interpreter:

  #!/usr/bin/env docker-script
  #!python:3.12 python3 -u

The script's directory is mounted at /scriptdir and the current directory at
/workingdir, which is also the container's working directory.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), args)
		},
	}
}

// Execute runs docker-script with the process arguments and returns the exit code.
func Execute() int {
	app := newApp(App{ProgramName: programName(os.Args[0])})
	return execute(context.Background(), app, os.Args[1:])
}

// execute runs the root command for app with args through fang.
func execute(ctx context.Context, app *App, args []string) int {
	root := newRootCommand(app)
	root.SetArgs(args)
	root.SetIn(app.Stdin)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			if isReported(err) {
				return
			}
			fmt.Fprintf(w, "Error: %v\n", err)
		}),
	)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
