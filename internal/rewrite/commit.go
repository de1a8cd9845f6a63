package rewrite

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Commit atomically replaces path with content: the data is written to a
// hidden temporary file in the same directory which is then renamed over
// path. On failure the temporary file is removed and path is unchanged.
func Commit(path, content string, perm os.FileMode) error {
	dir, base := filepath.Split(path)
	tmpPath := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return &IOError{Op: "create", Path: tmpPath, Err: err}
	}

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return &IOError{Op: "sync", Path: tmpPath, Err: err}
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "close", Path: tmpPath, Err: err}
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "rename", Path: path, Err: err}
	}

	return nil
}
