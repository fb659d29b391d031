package eos32fs

import (
	"github.com/eos32fs/fsck/backend"
)

// BlockReader performs random-access reads of fixed BlockSize blocks
// from a backend.File already scoped to one filesystem's region (see
// backend.Sub), the same narrow role github.com/diskfs/go-diskfs's
// filesystem readers give their backend.File: pure offset arithmetic
// over an io.ReaderAt.
//
// ReadBlock does not bounds-check b against the filesystem's block
// count; per spec section 4.1, callers must bounds-check block numbers
// that originate from on-disk data before calling ReadBlock.
type BlockReader struct {
	storage backend.File
}

// NewBlockReader builds a BlockReader over storage, which must already
// be scoped to block 0 of the target filesystem.
func NewBlockReader(storage backend.File) *BlockReader {
	return &BlockReader{storage: storage}
}

// ReadBlock reads the BlockSize bytes at block index b.
func (r *BlockReader) ReadBlock(b uint32) ([]byte, error) {
	buf := make([]byte, BlockSize)
	n, err := r.storage.ReadAt(buf, int64(b)*BlockSize)
	if err != nil || n != BlockSize {
		return nil, NewIoReadError(b, err)
	}
	return buf, nil
}
