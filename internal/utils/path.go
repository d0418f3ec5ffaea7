package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading "~" to the user's home directory. The
// path is returned unchanged when it has no tilde prefix or when the
// home directory cannot be determined.
func ExpandPath(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
