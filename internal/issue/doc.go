// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and short
// suggestions. Each failure kind may also link to a catalog Issue whose longer
// Markdown guidance is rendered with glamour in verbose mode.
package issue
