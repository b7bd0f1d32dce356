package ports

import (
	"os"
	"path/filepath"
	"strings"
)

// FileSystem provides the file system operations the provisioning engine
// needs. Writes are atomic so an interrupted run never leaves a truncated
// config file behind.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to path by writing a temporary file in the
	// same directory and renaming it into place.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	Exists(path string) bool
	IsDir(path string) bool
	MkdirAll(path string, perm os.FileMode) error
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
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
