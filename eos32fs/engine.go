package eos32fs

import (
	"github.com/sirupsen/logrus"

	"github.com/eos32fs/fsck/backend"
)

// Run checks the consistency of the EOS32 filesystem occupying the
// first fsSizeSectors sectors of storage, and returns nil if none of the
// invariants in spec section 4 are violated. storage must already be
// scoped to the filesystem's region (see backend.Sub) so that block 0
// here is the filesystem's own block 0, not the disk image's. Any
// returned error implements exitcode.Coded.
func Run(storage backend.File, fsSizeSectors uint32, log logrus.FieldLogger) error {
	reader := NewBlockReader(storage)

	sb, err := reader.ReadBlock(1)
	if err != nil {
		return err
	}
	inodeListSize := decodeU32(sb, sbInodeListSizeOffset)
	numBlocks := fsSizeSectors / SectorsPerBlock

	log.WithFields(logrus.Fields{
		"numBlocks":     numBlocks,
		"inodeListSize": inodeListSize,
	}).Info("checking filesystem")

	t, err := NewTallies(numBlocks, inodeListSize)
	if err != nil {
		return err
	}

	// Block 0 (boot block) and block 1 (superblock) hold no file data and
	// are never on the free list; pre-crediting them as occupied keeps
	// them out of the orphan-block check, the same way the original
	// seeds bCounter[0] and bCounter[1] before scanning inodes. Block 0
	// is outside CreditOccupied's normal range (it treats 0 as "no
	// block"), so it is credited directly here.
	t.Blocks[0].Occupied++
	t.CreditOccupied(1)

	inodes, err := SweepInodes(reader, t, log)
	if err != nil {
		return err
	}

	if err := SweepFreeList(reader, t, sb, log); err != nil {
		return err
	}

	if err := WalkFromRoot(reader, t, inodes, log); err != nil {
		return err
	}

	if err := CrossCheck(t, inodes, log); err != nil {
		return err
	}

	log.Info("filesystem is consistent")
	return nil
}
