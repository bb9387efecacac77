package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType marks a path whose extension is outside the
	// recognized set.
	ErrUnsupportedType = errors.New("unsupported file type for parsing")

	// ErrIgnoredByUser marks a path whose kind the user explicitly
	// deactivated. Lower severity than ErrUnsupportedType; callers log it
	// informationally.
	ErrIgnoredByUser = errors.New("file ignored explicitly by user")
)

// InvalidOutputDirError reports an output directory setting that points at an
// existing file.
type InvalidOutputDirError struct {
	Path string
}

func (e *InvalidOutputDirError) Error() string {
	return fmt.Sprintf("%q should be a directory but isn't", e.Path)
}

// InvalidFileStemError reports an input path whose base name has no stem to
// derive an output file name from.
type InvalidFileStemError struct {
	Path string
}

func (e *InvalidFileStemError) Error() string {
	return fmt.Sprintf("failed to extract filename stem from %q", e.Path)
}
