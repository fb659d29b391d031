package eos32fs

// BlockCounter tracks how many files claim a block and how many times
// the free list claims it, the two halves of the cross-check invariant.
type BlockCounter struct {
	Free     uint32
	Occupied uint32
}

// InodeCounter tracks how many directory entries reference an inode and
// whether the directory walk has entered it as a directory (non-directory
// inodes are never marked visited).
type InodeCounter struct {
	Refs    uint32
	Visited bool
}

// Tallies accumulates the two counter tables the engine sweeps populate
// and the cross-check phase consumes, mirroring the original's
// bCounter/inodeCounter arrays.
type Tallies struct {
	Blocks []BlockCounter
	Inodes []InodeCounter

	InodeListSize uint32
	NumBlocks     uint32
}

// NewTallies allocates zeroed tally tables sized for a filesystem with
// numBlocks blocks and an inode list occupying inodeListSize blocks.
// Go's make() zero-fills, replacing the original's malloc+memset pair.
func NewTallies(numBlocks, inodeListSize uint32) (*Tallies, error) {
	if inodeListSize >= numBlocks {
		return nil, &AllocError{Reason: "inode list size is not smaller than the block count"}
	}
	numInodes := inodeListSize * InodesPerBlock
	return &Tallies{
		Blocks:        make([]BlockCounter, numBlocks),
		Inodes:        make([]InodeCounter, numInodes),
		InodeListSize: inodeListSize,
		NumBlocks:     numBlocks,
	}, nil
}

// CreditOccupied records that block b is claimed by a file. Block 0
// ("no block") and out-of-range block numbers are silently ignored; no
// check reports an out-of-range reference.
func (t *Tallies) CreditOccupied(b uint32) {
	if b == 0 || b >= t.NumBlocks {
		return
	}
	t.Blocks[b].Occupied++
}

// CreditFree records that block b is claimed by the free list.
func (t *Tallies) CreditFree(b uint32) {
	if b == 0 || b >= t.NumBlocks {
		return
	}
	t.Blocks[b].Free++
}

// InRange reports whether b names an addressable block.
func (t *Tallies) InRange(b uint32) bool {
	return b > 0 && b < t.NumBlocks
}

// NumInodes returns the number of inode slots the tally tables cover.
func (t *Tallies) NumInodes() uint32 {
	return uint32(len(t.Inodes))
}
