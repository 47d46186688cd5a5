// SPDX-License-Identifier: MPL-2.0

package invocation

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Argv returns the runtime binary followed by its arguments.
func (p PlannedInvocation) Argv() []string {
	argv := make([]string, 0, 1+len(p.Arguments))
	argv = append(argv, string(p.Runtime))
	return append(argv, p.Arguments...)
}

// CommandLine renders the invocation as a single Bash command line. Each
// element is quoted as one shell word, so feeding the line to a shell
// reproduces Argv exactly.
func (p PlannedInvocation) CommandLine() (string, error) {
	argv := p.Argv()
	words := make([]string, len(argv))
	for i, arg := range argv {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("cannot quote argument %d (%q): %w", i, arg, err)
		}
		words[i] = quoted
	}
	return strings.Join(words, " "), nil
}
