// File: pkg/combine/errors.go
package combine

import (
	"errors"
	"fmt"
)

// Kind classifies why a combine operation failed.
type Kind int

const (
	InputError         Kind = iota + 1 // A source file could not be opened, read or decoded.
	OutputError                        // The destination could not be created or written.
	ConfigurationError                 // An option outside the supported set was supplied.
	EmptySelection                     // No files were queued.
)

func (k Kind) String() string {
	switch k {
	case InputError:
		return "input error"
	case OutputError:
		return "output error"
	case ConfigurationError:
		return "configuration error"
	case EmptySelection:
		return "empty selection"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrEmptySelection is matched by errors.Is for EmptySelection failures.
var ErrEmptySelection = errors.New("no files to combine; add at least one file first")

// Error is the only error type returned by Combine. Its message is meant
// to be shown to the user as is.
type Error struct {
	Kind Kind   // Failure class.
	Path string // File involved, if any.
	Err  error  // Underlying cause.
}

func (e *Error) Error() string {
	if e.Kind == EmptySelection {
		return ErrEmptySelection.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrEmptySelection) match by kind.
func (e *Error) Is(target error) bool {
	return target == ErrEmptySelection && e.Kind == EmptySelection
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

func inputErr(path string, err error) error {
	return &Error{Kind: InputError, Path: path, Err: err}
}

func outputErr(path string, err error) error {
	return &Error{Kind: OutputError, Path: path, Err: err}
}
