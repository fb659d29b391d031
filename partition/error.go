package partition

import (
	"fmt"

	"github.com/eos32fs/fsck/internal/exitcode"
)

// ShortTableError is returned when fewer than one sector of bytes was
// supplied to decode the partition table.
type ShortTableError struct {
	got int
}

func (e *ShortTableError) Error() string {
	return fmt.Sprintf("Error: partition table data was %d bytes, need %d", e.got, SectorSize)
}

// ExitCode implements exitcode.Coded.
func (e *ShortTableError) ExitCode() int { return exitcode.PartitionTableRead }

// NewShortTableError builds a ShortTableError reporting that got bytes
// were available where SectorSize were required.
func NewShortTableError(got int) *ShortTableError {
	return &ShortTableError{got: got}
}

// IllegalPartitionError is returned for a partition index outside [0,15] or
// an unparsable index.
type IllegalPartitionError struct {
	requested string
}

func (e *IllegalPartitionError) Error() string {
	return fmt.Sprintf("Error: illegal partition number '%s'", e.requested)
}

// ExitCode implements exitcode.Coded.
func (e *IllegalPartitionError) ExitCode() int { return exitcode.IllegalPartition }

// NewIllegalPartitionError builds an IllegalPartitionError for the raw
// argument string the user supplied.
func NewIllegalPartitionError(requested string) *IllegalPartitionError {
	return &IllegalPartitionError{requested: requested}
}

// NotEOS32Error is returned when a partition's type word, masked per
// spec section 6, does not match the EOS32 filesystem type constant.
type NotEOS32Error struct {
	index int
	typ   uint32
}

func (e *NotEOS32Error) Error() string {
	return fmt.Sprintf("Error: partition %d does not contain an EOS32 file system (type 0x%08x)", e.index, e.typ)
}

// ExitCode implements exitcode.Coded.
func (e *NotEOS32Error) ExitCode() int { return exitcode.NotEOS32 }

// NewNotEOS32Error builds a NotEOS32Error for the given partition index and
// observed (unmasked) type word.
func NewNotEOS32Error(index int, typ uint32) *NotEOS32Error {
	return &NotEOS32Error{index: index, typ: typ}
}
