package fileutil

import (
	"io"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"

	somnoerrors "github.com/stafne/somno/internal/errors"
)

// MaxFileSize is the maximum config file size we'll read (1MB).
// A settings document orders of magnitude larger than this is corrupt.
const MaxFileSize = 1024 * 1024 // 1MB

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
//
// Failures carry the bootstrap taxonomy sentinels: a missing file is
// marked ErrNotFound, permission and I/O failures ErrUnreadable, and an
// oversized file ErrMalformed (it cannot be a valid settings document).
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Mark(err, somnoerrors.ErrNotFound)
		}
		return nil, errors.Mark(errors.Wrap(err, "opening file"), somnoerrors.ErrUnreadable)
	}
	defer f.Close()

	// Fail fast if the size is already over the limit.
	if info, err := f.Stat(); err == nil {
		if info.Size() > MaxFileSize {
			return nil, errors.Mark(ErrFileTooLarge, somnoerrors.ErrMalformed)
		}
	}

	r := io.LimitReader(f, MaxFileSize+1)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "reading file"), somnoerrors.ErrUnreadable)
	}

	if len(data) > MaxFileSize {
		return nil, errors.Mark(ErrFileTooLarge, somnoerrors.ErrMalformed)
	}

	return data, nil
}
