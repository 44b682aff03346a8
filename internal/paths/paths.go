// Package paths resolves the on-disk locations the installer reads and writes.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BaseDirName is the directory under the home directory that holds the
// installed hook scripts, logs, config and install receipt.
const BaseDirName = ".discuss-for-specs"

// Subdirectories of the base directory.
const (
	HooksDirName = "hooks"
	LogsDirName  = "logs"
)

// Home returns the current user's home directory.
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return home, nil
}

// BaseDir returns ~/.discuss-for-specs.
func BaseDir() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, BaseDirName), nil
}

// ExpandPath expands ~ at the start of a path to the user's home directory.
// If ~ is not at the start or home directory cannot be determined, returns path unchanged.
func ExpandPath(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}

// ResolveDir expands ~ and makes dir absolute.
func ResolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(ExpandPath(dir))
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", dir, err)
	}
	return abs, nil
}

// ExecutableDir returns the directory holding the running binary, with
// symlinks resolved. Prebuilt assets ship next to the binary.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
