// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/adamrehn/docker-script/internal/container"
	"github.com/adamrehn/docker-script/internal/invocation"
	"github.com/adamrehn/docker-script/internal/issue"
	"github.com/adamrehn/docker-script/internal/script"
)

// headerError attaches context to a failure reading the script header.
func headerError(scriptPath string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("read script header").
		WithResource(scriptPath)

	var malformed *script.MalformedHeaderError
	switch {
	case errors.As(err, &malformed):
		ctx.WithIssue(issue.MalformedHeaderId).
			WithSuggestion("The second line must look like '#!<IMAGE> <INTERPRETER>', e.g. '#!ubuntu:18.04 bash'")
		if malformed.Defect == script.DefectMissingSeparator || malformed.Defect == script.DefectEmptyInterpreter {
			ctx.WithSuggestion("Separate the image and the interpreter with a single space")
		}
	case errors.Is(err, script.ErrFileOpen):
		ctx.WithIssue(issue.ScriptNotReadableId).
			WithSuggestion("Check that the script path is correct and readable")
	}

	return ctx.Wrap(err).BuildError()
}

// pathError attaches context to a path resolution failure.
func pathError(scriptPath string, err error) error {
	return issue.NewErrorContext().
		WithOperation("resolve host paths").
		WithResource(scriptPath).
		WithIssue(issue.PathResolutionFailedId).
		WithSuggestion("Check that the script and the current directory still exist").
		Wrap(err).
		BuildError()
}

// launchError attaches context to a failure starting the container runtime.
func launchError(rt container.Runtime, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("launch container").
		WithResource(string(rt))
	if errors.Is(err, container.ErrRuntimeNotFound) {
		ctx.WithIssue(issue.RuntimeNotFoundId).
			WithSuggestion(fmt.Sprintf("Install '%s' or add it to PATH", rt)).
			WithSuggestion(fmt.Sprintf("Use %s to print the command without running it", invocation.MarkerDryRun))
	}
	return ctx.Wrap(err).BuildError()
}

// reportError prints err to w and returns the ExitError that ends the run.
// In verbose mode the error chain and any catalog guidance are included.
func reportError(w io.Writer, p painter, err error, verbose bool) error {
	msg := err.Error()
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		msg = ae.Format(verbose)
	}
	fmt.Fprintf(w, "%s %s\n", p.paint(ErrorStyle, "Error:"), msg)

	if verbose && ae != nil && ae.Issue != 0 {
		if entry := issue.Get(ae.Issue); entry != nil {
			style := issue.StyleNoTTY
			if p.color {
				style = issue.StyleDark
			}
			rendered, renderErr := entry.Render(style)
			if renderErr != nil {
				slog.Warn("failed to render issue catalog entry", "issueID", ae.Issue, "error", renderErr)
			} else {
				fmt.Fprint(w, rendered)
			}
		}
	}

	return &ExitError{Code: 1, Err: err}
}

// isReported reports whether err has already been printed by reportError
// or is a bare child exit status.
func isReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
