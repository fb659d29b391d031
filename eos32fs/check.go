package eos32fs

import "github.com/sirupsen/logrus"

// CrossCheck compares the occupied/free tallies and the reference/visited
// tallies the sweep and walk phases produced, and returns the first
// violation found, in the priority order spec section 4.7 fixes: block
// checks before inode checks, and within each group the order listed
// there. It deliberately stops at the first violation, matching the
// original's behavior of reporting one problem and exiting.
func CrossCheck(t *Tallies, inodes []Inode, log logrus.FieldLogger) error {
	if err := checkBlocks(t, log); err != nil {
		return err
	}
	return checkInodes(t, inodes, log)
}

// checkBlocks inspects only the data region: blocks [2+inodeListSize,
// numBlocks). The boot block, superblock, and inode list blocks were
// pre-credited as occupied during engine setup and the inode sweep and
// are not subject to these four checks.
func checkBlocks(t *Tallies, log logrus.FieldLogger) error {
	first := inodeTableStart + t.InodeListSize
	for b := first; b < t.NumBlocks; b++ {
		c := t.Blocks[b]
		switch {
		case c.Free == 0 && c.Occupied == 0:
			log.WithField("block", b).Debug("orphan block")
			return newBlockError(KindOrphanBlock, b)
		case c.Free > 0 && c.Occupied > 0:
			log.WithField("block", b).Debug("block both occupied and free")
			return newBlockError(KindDoubleUse, b)
		case c.Free > 1:
			log.WithField("block", b).Debug("block free more than once")
			return newBlockError(KindDoubleFree, b)
		case c.Occupied > 1:
			log.WithField("block", b).Debug("block occupied more than once")
			return newBlockError(KindDoubleOccupied, b)
		}
	}
	return nil
}

// checkInodes inspects every inode slot from 2 upward (0 does not exist,
// 1 is the root and was already confirmed to be a directory by
// WalkFromRoot), in the exact order and with the exact guards spec
// section 4.7's inode pass table gives: nlink == 0, not the derived
// IsFree(), decides ZeroLinkNotFree/LinkCountMismatch, and
// ZeroLinkInDir is checked before FreeInodeInDir so it wins whenever
// both would otherwise match (mode == 0 and nlink == 0 and refs > 0).
func checkInodes(t *Tallies, inodes []Inode, log logrus.FieldLogger) error {
	for n := rootInodeNumber + 1; n < uint32(len(inodes)); n++ {
		in := inodes[n]
		c := t.Inodes[n]

		switch {
		case in.NLink == 0 && c.Refs > 0:
			log.WithField("inode", n).Debug("zero-link inode referenced by a directory")
			return newInodeError(KindZeroLinkInDir, n)
		case in.Mode != 0 && in.NLink == 0:
			log.WithField("inode", n).Debug("zero-link inode not marked free")
			return newInodeError(KindZeroLinkNotFree, n)
		case in.NLink != 0 && in.NLink != c.Refs:
			log.WithField("inode", n).Debug("link count does not match directory references")
			return newInodeError(KindLinkCountMismatch, n)
		case in.Mode == 0 && c.Refs > 0:
			log.WithField("inode", n).Debug("free inode referenced by a directory")
			return newInodeError(KindFreeInodeInDir, n)
		}
	}
	return nil
}
