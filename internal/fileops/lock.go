// Where: cli/internal/fileops/lock.go
// What: File lock helpers used by build passes.
// Why: Serialize passes that share one stage directory across processes.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// WithLock runs fn while holding an exclusive flock on lockRoot/.lock-<name>.
// The lock file lives outside the directory it protects so wiping that
// directory does not drop the lock.
func WithLock(lockRoot, name string, fn func() error) error {
	key := strings.TrimSpace(name)
	if key == "" {
		return fn()
	}
	if strings.TrimSpace(lockRoot) == "" {
		return fmt.Errorf("lock root is required")
	}
	if err := EnsureDir(lockRoot); err != nil {
		return err
	}
	lockPath := filepath.Join(lockRoot, fmt.Sprintf(".lock-%s", key))
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		_ = syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)
		_ = lockFile.Close()
	}()
	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	return fn()
}
