package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LogFunc matches the signature of logging functions used across the app (like LogErrorf).
type LogFunc func(format string, args ...interface{})

// Close closes the given io.Closer and logs any error that occurs.
// If logFunc is nil, the error is ignored.
func Close(c io.Closer, logFunc LogFunc, msg string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil && logFunc != nil {
		logFunc("%s: %v", msg, err)
	}
}

// Remove is a wrapper for os.Remove that logs any error other than a missing file.
func Remove(path string, logFunc LogFunc) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) && logFunc != nil {
		logFunc("Remove failed for %s: %v", path, err)
	}
}

// WriteFileAtomic writes data to a temp file next to path and renames it into place,
// creating the parent directory when needed.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
