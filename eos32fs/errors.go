package eos32fs

import (
	"fmt"

	"github.com/eos32fs/fsck/internal/exitcode"
)

// ErrorKind identifies which structural invariant a ConsistencyError
// violates, following the closed set enumerated in spec section 4.7.
type ErrorKind int

const (
	KindOrphanBlock ErrorKind = iota
	KindDoubleUse
	KindDoubleFree
	KindDoubleOccupied
	KindZeroLinkInDir
	KindZeroLinkNotFree
	KindLinkCountMismatch
	KindFreeInodeInDir
	KindRootNotDir
)

var kindInfo = map[ErrorKind]struct {
	message  string
	exitCode int
}{
	KindOrphanBlock:       {"block is neither in a file nor on the free list", exitcode.OrphanBlock},
	KindDoubleUse:         {"block is both in a file and on the free list", exitcode.DoubleUse},
	KindDoubleFree:        {"block appears more than once on the free list", exitcode.DoubleFree},
	KindDoubleOccupied:    {"block appears in more than one file, or more than once in one file", exitcode.DoubleOccupied},
	KindZeroLinkInDir:     {"inode with a link count of 0 appears in a directory", exitcode.ZeroLinkInDir},
	KindZeroLinkNotFree:   {"inode with a link count of 0 is not free", exitcode.ZeroLinkNotFree},
	KindLinkCountMismatch: {"inode's link count does not match the number of directory entries referencing it", exitcode.LinkCountMismatch},
	KindFreeInodeInDir:    {"free inode appears in a directory", exitcode.FreeInodeInDir},
	KindRootNotDir:        {"root inode is not a directory", exitcode.RootNotDir},
}

// ConsistencyError reports the first structural violation the engine
// discovered, with enough context (block or inode index) to explain it.
type ConsistencyError struct {
	Kind ErrorKind

	hasBlock bool
	Block    uint32

	hasInode bool
	Inode    uint32
}

func (e *ConsistencyError) Error() string {
	info := kindInfo[e.Kind]
	switch {
	case e.hasBlock:
		return fmt.Sprintf("Error: %s (block %d)", info.message, e.Block)
	case e.hasInode:
		return fmt.Sprintf("Error: %s (inode %d)", info.message, e.Inode)
	default:
		return fmt.Sprintf("Error: %s", info.message)
	}
}

// ExitCode implements exitcode.Coded.
func (e *ConsistencyError) ExitCode() int {
	return kindInfo[e.Kind].exitCode
}

func newBlockError(kind ErrorKind, block uint32) *ConsistencyError {
	return &ConsistencyError{Kind: kind, hasBlock: true, Block: block}
}

func newInodeError(kind ErrorKind, inode uint32) *ConsistencyError {
	return &ConsistencyError{Kind: kind, hasInode: true, Inode: inode}
}

func newRootNotDirError() *ConsistencyError {
	return &ConsistencyError{Kind: KindRootNotDir}
}

// IoReadError reports a failed or short block read, mapping to the
// catch-all I/O exit code for block-level failures.
type IoReadError struct {
	Block uint32
	Err   error
}

func (e *IoReadError) Error() string {
	return fmt.Sprintf("Error: cannot read block %d (0x%x): %v", e.Block, e.Block, e.Err)
}

// ExitCode implements exitcode.Coded.
func (e *IoReadError) ExitCode() int {
	return exitcode.IoAndUnclassified
}

func (e *IoReadError) Unwrap() error {
	return e.Err
}

// NewIoReadError wraps a failed read of block b.
func NewIoReadError(b uint32, err error) *IoReadError {
	return &IoReadError{Block: b, Err: err}
}

// AllocError reports that the tally tables could not be sized, the Go
// analogue of the original's failed malloc() check (exit code 6).
type AllocError struct {
	Reason string
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("Error: %s", e.Reason)
}

// ExitCode implements exitcode.Coded.
func (e *AllocError) ExitCode() int {
	return exitcode.AllocFailure
}
