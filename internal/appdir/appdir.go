// Package appdir locates fwver's per-user configuration directory.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Name is the directory created under the user config dir.
const Name = "fwver"

// EnvConfigDir overrides the config directory. No home directory is needed
// when it is set.
const EnvConfigDir = "FWVER_CONFIG_DIR"

// ConfigDir returns the directory holding fwver's config file:
// $FWVER_CONFIG_DIR when set, otherwise Name under the OS config dir
// ($XDG_CONFIG_HOME on Linux, ~/Library/Application Support on macOS,
// %AppData% on Windows).
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", EnvConfigDir, err)
		}
		return abs, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config dir (set %s to override): %w", EnvConfigDir, err)
	}
	return filepath.Join(base, Name), nil
}

// EnsureFile creates path and its parent directories if they do not exist.
// The file is created with 0600 permissions (owner read/write only).
// A no-op if the file already exists.
func EnsureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("creating config file: %w", err)
	}
	return f.Close()
}
