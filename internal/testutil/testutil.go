// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ResolvedTempDir returns t.TempDir() with symbolic links resolved, so it
// compares equal to paths produced by the host path resolver (on macOS the
// temp dir lives behind the /var -> /private/var link).
func ResolvedTempDir(t testing.TB) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	return dir
}

// WriteScript writes a script whose first two lines are a host shebang and
// the given container header, followed by body. It returns the script path.
//
//	path := testutil.WriteScript(t, dir, "run.sh", "#!ubuntu:18.04 bash", "echo hi")
func WriteScript(t testing.TB, dir, name, header, body string) string {
	t.Helper()
	content := "#!/usr/bin/env docker-script\n" + header + "\n"
	if body != "" {
		content += strings.TrimSuffix(body, "\n") + "\n"
	}
	return MustWriteFile(t, filepath.Join(dir, name), content)
}

// MustWriteFile writes content to path, creating parent directories.
func MustWriteFile(t testing.TB, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
