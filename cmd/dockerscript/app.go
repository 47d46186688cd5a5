// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/adamrehn/docker-script/internal/config"
	"github.com/adamrehn/docker-script/internal/container"
	"github.com/adamrehn/docker-script/internal/hostpath"
	"github.com/adamrehn/docker-script/internal/invocation"
	"github.com/adamrehn/docker-script/internal/script"
)

type (
	// Runner executes a planned runtime command.
	Runner interface {
		Run(ctx context.Context, rt container.Runtime, args []string) (*container.RunResult, error)
	}

	// App holds the collaborators of one docker-script run. Zero-valued fields
	// are filled with the real implementations by newApp.
	App struct {
		// ProgramName is the base name the program was invoked under.
		ProgramName string

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer

		ConfigProvider config.Provider
		ConfigOptions  config.LoadOptions
		Resolver       *hostpath.Resolver
		// Runner defaults to a container.Engine attached to Stdin/Stdout/Stderr.
		Runner Runner
		// StdinIsTerminal reports whether Stdin is a terminal.
		StdinIsTerminal func() bool
	}
)

// newApp fills unset collaborators with their defaults.
func newApp(a App) *App {
	if a.ProgramName == "" {
		a.ProgramName = config.AppName
	}
	if a.Stdin == nil {
		a.Stdin = os.Stdin
	}
	if a.Stdout == nil {
		a.Stdout = os.Stdout
	}
	if a.Stderr == nil {
		a.Stderr = os.Stderr
	}
	if a.ConfigProvider == nil {
		a.ConfigProvider = config.NewProvider()
	}
	if a.Resolver == nil {
		a.Resolver = hostpath.NewResolver()
	}
	if a.Runner == nil {
		a.Runner = container.NewEngine(container.WithStdio(a.Stdin, a.Stdout, a.Stderr))
	}
	if a.StdinIsTerminal == nil {
		stdin := a.Stdin
		a.StdinIsTerminal = func() bool { return isTerminal(stdin) }
	}
	return &a
}

// programName returns the base name of argv0 without a Windows .exe suffix.
func programName(argv0 string) string {
	name := filepath.Base(argv0)
	return strings.TrimSuffix(name, ".exe")
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *App) painter(color bool) painter {
	return painter{renderer: lipgloss.NewRenderer(a.Stderr), color: color}
}

// Run launches the script named by args[0]. Errors returned are *ExitError:
// either a reported failure (exit 1) or the child's non-zero exit status.
func (a *App) Run(ctx context.Context, args []string) error {
	scriptPath, opts, err := invocation.ParseArgs(args)
	if errors.Is(err, invocation.ErrMissingScript) {
		writeUsage(a.Stderr, a.painter(true), a.ProgramName)
		return &ExitError{Code: 1}
	}

	cfg, err := a.ConfigProvider.Load(ctx, a.ConfigOptions)
	if err != nil {
		return reportError(a.Stderr, a.painter(true), err, opts.Verbose)
	}

	verbose := opts.Verbose || cfg.UI.Verbose
	p := a.painter(cfg.UI.Color)
	logger := newLogger(a.Stderr, verbose)
	if cfg.Source != "" {
		logger.Debug("loaded configuration", "path", cfg.Source)
	}

	header, err := script.ReadHeaderFile(scriptPath)
	if err != nil {
		return reportError(a.Stderr, p, headerError(scriptPath, err), verbose)
	}

	paths, err := a.Resolver.Resolve(scriptPath)
	if err != nil {
		return reportError(a.Stderr, p, pathError(scriptPath, err), verbose)
	}

	alias := cfg.IsGPUAlias(a.ProgramName)
	if alias {
		logger.Debug("invoked under GPU alias", "program", a.ProgramName)
	}

	planner := invocation.NewPlanner(cfg.GPURegistry(), invocation.WithRuntimes(cfg.Runtime.Default, cfg.Runtime.GPU))
	plan, err := planner.Plan(header, paths, opts, alias)
	if err != nil {
		return reportError(a.Stderr, p, fmt.Errorf("plan invocation: %w", err), verbose)
	}
	logger.Debug("selected container runtime", "runtime", plan.Runtime, "reason", plan.Reason, "image", header.Image)

	if verbose || opts.DryRun {
		line, err := plan.CommandLine()
		if err != nil {
			return reportError(a.Stderr, p, err, verbose)
		}
		if verbose {
			writeReport(a.Stderr, p, launchReport{
				Header:      header,
				Paths:       paths,
				Options:     opts,
				Plan:        plan,
				CommandLine: line,
				ConfigFile:  cfg.Source,
			})
		}
		if opts.DryRun {
			fmt.Fprintln(a.Stdout, line)
			return nil
		}
	}

	if opts.Interactive && !a.StdinIsTerminal() {
		logger.Warn("stdin is not a terminal; the runtime may reject -i -t",
			"hint", "pass "+invocation.MarkerNonInteractive)
	}

	result, err := a.Runner.Run(ctx, plan.Runtime, plan.Arguments)
	if err != nil {
		return reportError(a.Stderr, p, launchError(plan.Runtime, err), verbose)
	}

	logger.Debug("container runtime exited", "runtime", result.BinaryPath, "code", result.ExitCode)
	if result.ExitCode != 0 {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}
