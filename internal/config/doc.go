// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/docker-script/config.cue on Linux
// (~/.config when unset), ~/Library/Application Support/docker-script/config.cue on
// macOS and %APPDATA%\docker-script\config.cue on Windows. A missing file means the
// built-in defaults. The file selects the container runtime binaries, the GPU image
// list and the program names that force the GPU runtime.
//
// Files are validated against an embedded CUE schema (config_schema.cue) before
// their values are merged over the defaults.
package config
