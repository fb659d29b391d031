package main

import (
	"fmt"

	"github.com/eos32fs/fsck/internal/exitcode"
)

// BadArityError is returned when the command is invoked with the wrong
// number of positional arguments.
type BadArityError struct{}

func (e *BadArityError) Error() string {
	return "Error: usage: eos32fsck <image> <partition>"
}

// ExitCode implements exitcode.Coded.
func (e *BadArityError) ExitCode() int { return exitcode.BadArity }

// ImageOpenError is returned when the disk image named on the command
// line cannot be opened for reading.
type ImageOpenError struct {
	Path string
	Err  error
}

func (e *ImageOpenError) Error() string {
	return fmt.Sprintf("Error: cannot open image %q: %v", e.Path, e.Err)
}

// ExitCode implements exitcode.Coded.
func (e *ImageOpenError) ExitCode() int { return exitcode.ImageOpenFailed }

func (e *ImageOpenError) Unwrap() error { return e.Err }

// NewImageOpenError wraps a failed attempt to open path.
func NewImageOpenError(path string, err error) *ImageOpenError {
	return &ImageOpenError{Path: path, Err: err}
}
