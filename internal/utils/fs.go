package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DirStatus describes a directory approxdict reads from or writes into
type DirStatus struct {
	Path     string
	Exists   bool
	Writable bool
	Err      error
}

// FileExists reports whether path names a regular file
func FileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && stat.Mode().IsRegular()
}

// EnsureDir creates dirPath and its parents
func EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dirPath, err)
	}
	return nil
}

// WriteFileAtomic writes path through a temporary file in the same directory
// and renames it into place once write succeeds, so readers see either the
// old content or the complete new one. The temporary file is removed on failure.
func WriteFileAtomic(path string, perm os.FileMode, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			err = errors.Join(err, tmp.Close())
		}
		err = errors.Join(err, os.Remove(tmp.Name()))
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// SaveTOMLFile encodes data to filePath atomically
func SaveTOMLFile(data any, filePath string) error {
	err := WriteFileAtomic(filePath, 0o644, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(data)
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", filePath, err)
	}
	return nil
}

// AbsPath returns the absolute form of path, or path itself when it cannot be resolved
func AbsPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// ExecutableDir returns the directory of the running binary, symlinks resolved
func ExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath), nil
}

// CheckDirStatus reports whether dirPath exists and accepts new files.
// With create set a missing directory is created first.
func CheckDirStatus(dirPath string, create bool) DirStatus {
	status := DirStatus{Path: dirPath}
	stat, err := os.Stat(dirPath)
	switch {
	case err == nil && !stat.IsDir():
		status.Err = fmt.Errorf("%s is not a directory", dirPath)
		return status
	case errors.Is(err, os.ErrNotExist) && create:
		if status.Err = EnsureDir(dirPath); status.Err != nil {
			return status
		}
	case err != nil:
		status.Err = err
		return status
	}
	status.Exists = true
	status.Writable, status.Err = canCreate(dirPath)
	return status
}

// canCreate creates and removes a uniquely named file in dirPath
func canCreate(dirPath string) (bool, error) {
	f, err := os.CreateTemp(dirPath, ".approxdict-*")
	if err != nil {
		return false, err
	}
	name := f.Name()
	f.Close()
	return true, os.Remove(name)
}
