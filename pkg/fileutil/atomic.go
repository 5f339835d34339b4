// Package fileutil provides file system utilities including atomic write
// operations used by the bootstrap engine to persist config documents.
package fileutil

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	somnoerrors "github.com/stafne/somno/internal/errors"
)

// DefaultDirPerm is the permission for directories created by EnsureDir.
const DefaultDirPerm = 0o755

// DefaultFilePerm is the permission for files written by the atomic writers.
const DefaultFilePerm = 0o644

// EnsureDir creates dir and any necessary parents. A failure is marked
// with ErrDirUnwritable, which is terminal for a bootstrap run.
// Idempotent: returns nil if the directory already exists.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
		return errors.Mark(errors.Wrapf(err, "creating directory %s", dir), somnoerrors.ErrDirUnwritable)
	}
	return nil
}

// AtomicWriteFile writes data to path via a temp file in the same
// directory followed by a single rename. On any failure before the
// rename the temp file is removed and path is left untouched, so path
// never holds a truncated or half-written file.
//
// Failures to create or rename the temp file are marked with
// ErrDirUnwritable; the parent directory must already exist.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Temp file in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, ".somno-atomic-*.tmp")
	if err != nil {
		return errors.Mark(errors.Wrap(err, "creating temp file"), somnoerrors.ErrDirUnwritable)
	}

	tmpName := tmp.Name()
	defer func() {
		// Only present if the rename never happened.
		if _, statErr := os.Stat(tmpName); statErr == nil {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "flushing temp file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Mark(errors.Wrap(err, "renaming temp file"), somnoerrors.ErrDirUnwritable)
	}

	return nil
}

// AtomicWriteYAML writes v as YAML to path atomically with 0644
// permissions. Used for trail report export; config documents go through
// schema.Document.Encode instead so key order survives.
func AtomicWriteYAML(path string, v any) (err error) {
	// yaml.Marshal panics on unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	return AtomicWriteFile(path, data, DefaultFilePerm)
}
