// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Helpers cover script fixtures (WriteScript, MustWriteFile), symlink-free temp
// directories (ResolvedTempDir) and a semaphore bounding concurrent real-engine
// container tests (ContainerSemaphore).
package testutil
