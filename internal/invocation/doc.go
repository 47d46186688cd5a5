// SPDX-License-Identifier: MPL-2.0

// Package invocation turns a script header, resolved host paths and
// command-line options into the exact container runtime command to run.
//
// The package has three parts:
//   - ParseArgs reads the "---" option markers and collects trailing arguments.
//   - Planner chooses the runtime binary (default or GPU) and builds the
//     ordered argument list. Planning does no I/O.
//   - PlannedInvocation renders itself as a quoted shell command line for
//     dry runs and verbose reports.
package invocation
