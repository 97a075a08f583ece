// Package userconfig locates per-user binvid configuration files.
package userconfig

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment variables consulted when locating configuration.
const (
	EnvConfigDir = "BINVID_CONFIG_DIR"
	EnvPresets   = "BINVID_PRESETS"
)

// PresetsFileName is the preset catalog file inside the config directory.
const PresetsFileName = "presets.yaml"

// ConfigRoot returns the binvid configuration directory.
func ConfigRoot() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", "binvid")
		}
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "binvid")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "binvid")
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "binvid")
		}
	}

	return filepath.Join(os.TempDir(), "binvid", "config")
}

// PresetsPath returns the preset file to load and whether it was named
// explicitly. The flag value wins over BINVID_PRESETS, which wins over the
// default file in ConfigRoot. A missing default file is not an error for
// callers; an explicit one is.
func PresetsPath(flagValue string) (path string, explicit bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if env := os.Getenv(EnvPresets); env != "" {
		return env, true
	}
	return filepath.Join(ConfigRoot(), PresetsFileName), false
}
