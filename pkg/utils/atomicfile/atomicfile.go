// Package atomicfile writes files through a temporary sibling and a rename,
// so readers never observe a half-written file.
package atomicfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// DefaultPerms is used when a zero mode is passed.
const DefaultPerms os.FileMode = 0o644

// WriteFunc streams the file contents into w.
type WriteFunc func(w io.Writer) error

// Write creates path by running fn against a temporary file in the same
// directory and renaming it into place. On any failure the temporary file
// is removed and path is left untouched.
func Write(path string, perm os.FileMode, logger hclog.Logger, fn WriteFunc) (err error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if perm == 0 {
		perm = DefaultPerms
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	logger.Trace("📝 Writing temp file", "path", tmpPath, "target", path)

	defer func() {
		if err == nil {
			return
		}
		_ = tmp.Close()
		if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Debug("⚠️ Failed to remove temp file", "path", tmpPath, "error", rmErr)
		}
	}()

	if err = fn(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}

	logger.Debug("✅ Atomic file replacement successful", "dest", path)
	return nil
}

// WriteBytes is Write for an in-memory buffer.
func WriteBytes(path string, data []byte, perm os.FileMode, logger hclog.Logger) error {
	return Write(path, perm, logger, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
