// Package atomicfile writes whole files so that readers only ever observe the
// previous contents or the complete new contents.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// TempSuffix ends every temporary file name created by WriteFile.
const TempSuffix = ".tmp"

// TempName returns a unique temporary sibling path for path.
func TempName(path string) string {
	return path + "." + strings.ToLower(ulid.Make().String()) + TempSuffix
}

// WriteFile writes data to a temporary sibling of path, syncs it, and renames it
// over path. A failure before the rename leaves any existing file untouched and
// removes the temporary file.
func WriteFile(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	return WriteFileBeforeRename(fs, path, data, perm, nil)
}

// WriteFileBeforeRename is WriteFile with a hook run once the temp file is
// synced and closed, immediately before the rename. A hook error aborts the
// write; path is left untouched and the temp file removed.
func WriteFileBeforeRename(fs afero.Fs, path string, data []byte, perm os.FileMode, beforeRename func() error) (err error) {
	if err := fs.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tempPath := TempName(path)
	file, err := fs.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	success := false
	defer func() {
		if file != nil {
			err = multierr.Append(err, file.Close())
		}
		if !success {
			if rmErr := fs.Remove(tempPath); rmErr != nil && !os.IsNotExist(rmErr) {
				err = multierr.Append(err, rmErr)
			}
		}
	}()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	// Close before rename (required on Windows; fine elsewhere).
	closeErr := file.Close()
	file = nil
	if closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}

	if beforeRename != nil {
		if err := beforeRename(); err != nil {
			return err
		}
	}

	if err := fs.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	success = true
	return nil
}

// CopyFile copies src over dst as a whole file using WriteFile.
func CopyFile(fs afero.Fs, src, dst string, perm os.FileMode) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return err
	}
	return WriteFile(fs, dst, data, perm)
}

// Exists reports whether path exists. Errors other than not-exist are returned.
func Exists(fs afero.Fs, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
