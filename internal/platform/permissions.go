package platform

import (
	"fmt"
	"os"
	"runtime"
)

// IsWindows reports whether cfkit is running on Windows.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if IsWindows() {
		return nil
	}
	return os.Chmod(path, mode)
}

// MakeExecutable adds the execute bits to path for everyone who can read it.
func MakeExecutable(path string) error {
	if IsWindows() {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	perm := info.Mode().Perm()
	// r bits shifted onto x bits: 0644 -> 0755, 0600 -> 0700
	return Chmod(path, perm|(perm&0444)>>2)
}
