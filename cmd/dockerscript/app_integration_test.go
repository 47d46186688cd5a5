// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"

	"github.com/adamrehn/docker-script/internal/config"
	"github.com/adamrehn/docker-script/internal/container"
	"github.com/adamrehn/docker-script/internal/hostpath"
	"github.com/adamrehn/docker-script/internal/testutil"
)

const integrationImage = "alpine:3.20"

// checkTestcontainersAvailable reports whether a Docker provider can be reached.
// Provider detection may panic on hosts without a daemon socket.
func checkTestcontainersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

// TestApp_Integration runs scripts in real containers. Requires Docker.
func TestApp_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath(string(container.RuntimeDocker)); err != nil {
		t.Skip("skipping integration test: docker not found on PATH")
	}
	if !checkTestcontainersAvailable() {
		t.Skip("skipping integration test: testcontainers provider not available")
	}

	t.Run("MountsAndWorkingDirectory", testIntegrationMounts)
	t.Run("ExitCode", testIntegrationExitCode)
	t.Run("TrailingArguments", testIntegrationArguments)
}

type integrationRun struct {
	stdout, stderr bytes.Buffer
	code           int
	wd             string
	scriptDir      string
}

func runInContainer(t *testing.T, body string, args ...string) *integrationRun {
	t.Helper()

	sem := testutil.ContainerSemaphore()
	sem <- struct{}{}
	defer func() { <-sem }()

	root := testutil.ResolvedTempDir(t)
	run := &integrationRun{
		wd:        filepath.Join(root, "work"),
		scriptDir: filepath.Join(root, "scripts"),
	}
	testutil.MustWriteFile(t, filepath.Join(run.wd, "input.txt"), "from the host\n")
	path := testutil.WriteScript(t, run.scriptDir, "run.sh", "#!"+integrationImage+" sh", body)

	cfg := config.DefaultConfig()
	cfg.UI.Color = false

	app := newApp(App{
		ProgramName:    "docker-script",
		Stdin:          strings.NewReader(""),
		Stdout:         &run.stdout,
		Stderr:         &run.stderr,
		ConfigProvider: staticProvider{cfg: cfg},
		Resolver:       hostpath.NewResolver(hostpath.WithGetwd(func() (string, error) { return run.wd, nil })),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	err := app.Run(ctx, append([]string{path, "---non-interactive"}, args...))
	run.code = exitCodeOf(err)
	return run
}

// output returns stdout with the terminal's CRLF line endings normalized.
func (r *integrationRun) output() string {
	return strings.ReplaceAll(r.stdout.String(), "\r\n", "\n")
}

func testIntegrationMounts(t *testing.T) {
	run := runInContainer(t, `pwd
echo "cwd=$HOST_CWD"
cat input.txt
ls /scriptdir`)

	if run.code != 0 {
		t.Fatalf("exit code = %d\nstderr:\n%s", run.code, run.stderr.String())
	}
	out := run.output()
	for _, want := range []string{"/workingdir\n", "cwd=" + run.wd + "\n", "from the host\n", "run.sh\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
}

func testIntegrationExitCode(t *testing.T) {
	run := runInContainer(t, "exit 3")
	if run.code != 3 {
		t.Errorf("exit code = %d, want 3\nstderr:\n%s", run.code, run.stderr.String())
	}
}

func testIntegrationArguments(t *testing.T) {
	run := runInContainer(t, `for a in "$@"; do echo "[$a]"; done`, "one", "two words", "")
	if run.code != 0 {
		t.Fatalf("exit code = %d\nstderr:\n%s", run.code, run.stderr.String())
	}
	if got, want := run.output(), "[one]\n[two words]\n[]\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}
