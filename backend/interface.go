// Package backend provides the minimal storage abstraction the consistency
// engine needs to read bytes at an absolute offset: a disk image opened
// read-only, or (in tests) an in-memory fake.
package backend

import (
	"errors"
	"io"
	"io/fs"
)

// ErrNotSuitable is returned when the backing fs.File does not support the
// operation requested of it (e.g. it is not an io.ReaderAt).
var ErrNotSuitable = errors.New("backing file is not suitable")

// File is the read-only surface the engine requires of a disk image.
type File interface {
	fs.File
	io.ReaderAt
	io.Closer
}

// Storage names a File opened as a disk image for this tool. It has the
// same method set as File, so any File also satisfies Storage.
type Storage interface {
	File
}
