package md

import (
	"errors"
	"fmt"

	"github.com/open-cli-collective/snap/pkg/tree"
)

var (
	// ErrMalformedEscape is returned when a bracketed escape sequence \{...
	// is never closed.
	ErrMalformedEscape = errors.New("malformed escape sequence")

	// ErrStructuralMisuse is returned when a rewrite routine is applied to a
	// node of the wrong kind.
	ErrStructuralMisuse = errors.New("structural misuse")
)

// FileError ties a failure to the source file, and position when known, that
// caused it.
type FileError struct {
	Path string
	Pos  tree.Pos
	Err  error
}

func (e *FileError) Error() string {
	if e.Pos.IsZero() {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s (%d,%d): %v", e.Path, e.Pos.Line, e.Pos.Column, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
