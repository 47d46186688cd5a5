// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/adamrehn/docker-script/internal/container"
	"github.com/adamrehn/docker-script/internal/gpuimage"
	"github.com/adamrehn/docker-script/internal/issue"
)

// writeConfig writes content to config.cue in a fresh directory and returns the directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Runtime.Default != container.RuntimeDocker {
		t.Errorf("Runtime.Default = %q, want docker", cfg.Runtime.Default)
	}
	if cfg.Runtime.GPU != container.RuntimeNvidiaDocker {
		t.Errorf("Runtime.GPU = %q, want nvidia-docker", cfg.Runtime.GPU)
	}
	if !slices.Equal(cfg.GPUImagePatterns(), gpuimage.DefaultImages()) {
		t.Errorf("GPUImagePatterns() = %v", cfg.GPUImagePatterns())
	}
	if !cfg.IsGPUAlias("nvidia-docker-script") || cfg.IsGPUAlias("docker-script") {
		t.Errorf("unexpected alias set %v", cfg.GPUAliases)
	}
	if cfg.UI.Verbose || !cfg.UI.Color {
		t.Errorf("unexpected UI defaults %+v", cfg.UI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.Runtime.Default != container.RuntimeDocker {
		t.Errorf("Runtime.Default = %q", cfg.Runtime.Default)
	}
	if !slices.Equal(cfg.GPUImages, gpuimage.DefaultImages()) {
		t.Errorf("GPUImages = %v", cfg.GPUImages)
	}
}

func TestLoad_NoConfigDirectoryUsesDefaults(t *testing.T) {
	// Not parallel: mutates the environment and the config dir override.
	if runtime.GOOS == "windows" {
		t.Skip("the config directory comes from APPDATA on Windows")
	}
	t.Cleanup(SetConfigDirOverride(""))
	t.Setenv("HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	if _, err := ConfigDir(); err == nil {
		t.Fatal("ConfigDir() should fail without HOME and XDG_CONFIG_HOME")
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v, want defaults", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.Runtime.Default != container.RuntimeDocker || cfg.Runtime.GPU != container.RuntimeNvidiaDocker {
		t.Errorf("Runtime = %+v, want defaults", cfg.Runtime)
	}
	if !slices.Equal(cfg.GPUImages, gpuimage.DefaultImages()) {
		t.Errorf("GPUImages = %v", cfg.GPUImages)
	}
}

func TestLoad_OverridesAndExtras(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `
runtime: {
	default: "podman"
}
extra_gpu_images: ["pytorch/pytorch", "rocm/tensorflow:latest"]
gpu_aliases: ["gpu-script", "nvidia-docker-script"]
ui: verbose: true
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Source != filepath.Join(dir, "config.cue") {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.Runtime.Default != "podman" {
		t.Errorf("Runtime.Default = %q, want podman", cfg.Runtime.Default)
	}
	if cfg.Runtime.GPU != container.RuntimeNvidiaDocker {
		t.Errorf("Runtime.GPU = %q, want default nvidia-docker", cfg.Runtime.GPU)
	}
	if !cfg.UI.Verbose || !cfg.UI.Color {
		t.Errorf("UI = %+v, want verbose and color", cfg.UI)
	}
	if !cfg.IsGPUAlias("gpu-script") {
		t.Error("gpu-script should be an alias")
	}

	reg := cfg.GPURegistry()
	for _, image := range []string{"nvidia/cuda:9.0", "pytorch/pytorch:2.1", "rocm/tensorflow:latest"} {
		if !reg.RequiresGPURuntime(image) {
			t.Errorf("RequiresGPURuntime(%q) = false, want true", image)
		}
	}
	if reg.RequiresGPURuntime("rocm/tensorflow:other") {
		t.Error("tagged extra should only match its tag")
	}
}

func TestLoad_GPUImagesReplacesDefaults(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `gpu_images: ["my/cuda"]`)
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(cfg.GPUImagePatterns(), []string{"my/cuda"}) {
		t.Errorf("GPUImagePatterns() = %v, want [my/cuda]", cfg.GPUImagePatterns())
	}
	if cfg.GPURegistry().RequiresGPURuntime("nvidia/cuda") {
		t.Error("built-in list should be replaced")
	}
}

func TestLoad_InvalidFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"syntax error", `runtime: {`, "config.cue"},
		{"unknown field", `container_engine: "podman"`, "container_engine"},
		{"wrong type", `ui: verbose: "yes"`, "ui.verbose"},
		{"blank runtime", `runtime: gpu: "  "`, "runtime.gpu"},
		{"image with space", `extra_gpu_images: ["nvidia/cuda 9"]`, "extra_gpu_images"},
		{"blank alias", `gpu_aliases: [""]`, "gpu_aliases"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeConfig(t, tt.content)
			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("expected an error")
			}

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *issue.ActionableError, got %T: %v", err, err)
			}
			if ae.Issue != issue.ConfigLoadFailedId {
				t.Errorf("Issue = %d, want ConfigLoadFailedId", ae.Issue)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	dir := writeConfig(t, `runtime: gpu: "/opt/nvidia/bin/nvidia-docker"`)
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(dir, "config.cue")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Runtime.GPU != "/opt/nvidia/bin/nvidia-docker" {
		t.Errorf("Runtime.GPU = %q", cfg.Runtime.GPU)
	}

	_, err = NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(dir, "missing.cue")})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Runtime.Default = ""
	cfg.GPUAliases = append(cfg.GPUAliases, " ")

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !errors.Is(err, container.ErrInvalidRuntime) {
		t.Error("expected ErrInvalidRuntime in chain")
	}
	if !errors.Is(err, ErrInvalidGPUAlias) {
		t.Error("expected ErrInvalidGPUAlias in chain")
	}
	var ice *InvalidConfigError
	if !errors.As(err, &ice) || len(ice.FieldErrors) != 2 {
		t.Errorf("expected two field errors, got %v", err)
	}
}

// The tests below touch package-level state and must not run in parallel.

func TestConfigDir_Override(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(SetConfigDirOverride(dir))

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %q, want %q", got, dir)
	}

	path, err := FilePath()
	if err != nil {
		t.Fatalf("FilePath() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("FilePath() = %q", path)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only consulted on Linux")
	}
	t.Cleanup(SetConfigDirOverride(""))

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if got != filepath.Join(xdg, AppName) {
		t.Errorf("ConfigDir() = %q, want %q", got, filepath.Join(xdg, AppName))
	}
}
