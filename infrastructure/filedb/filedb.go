// Package filedb provides whole-file persistence helpers for stores that keep
// their data in a single local file.
package filedb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrDirSync is returned by WriteFileAtomic when the new content is already in
// place but the directory entry could not be synced.
var ErrDirSync = errors.New("directory sync failed")

// WriteFileAtomic replaces path with data. The bytes go to a temporary file in
// the same directory, which is synced and renamed over path, so readers see
// either the old content or the new content and never a partial write.
//
// An error wrapping ErrDirSync means the rename has happened and path already
// holds data.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	committed = true

	if err := syncDir(dir); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirSync, dir, err)
	}
	return nil
}

// CopyFile writes a copy of src to dst atomically, keeping src's permissions.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return WriteFileAtomic(dst, data, info.Mode().Perm())
}

var syncDir = func(dir string) error {
	// directories cannot be opened for sync on windows
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
