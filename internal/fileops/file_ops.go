// Where: cli/internal/fileops/file_ops.go
// What: Stage directory filesystem operations.
// Why: Keep wipe/recreate and existence checks consistent across build passes.
package fileops

import (
	"os"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

func RemoveDir(path string) error {
	if path == "" {
		return nil
	}
	if err := os.RemoveAll(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ResetDir deletes path recursively (absent is fine) and recreates it empty.
func ResetDir(path string) error {
	if err := RemoveDir(path); err != nil {
		return err
	}
	return EnsureDir(path)
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
