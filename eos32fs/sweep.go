package eos32fs

import "github.com/sirupsen/logrus"

// SweepInodes reads every block of the inode list, credits each such
// block as occupied, decodes every inode record, and for inodes that own
// data (regular files and directories; devices and free inodes do not)
// credits every block the inode points to, directly or through its
// indirect blocks.
//
// It returns the full decoded inode table indexed by inode number so the
// directory walk and cross-check phases can reuse it without re-reading
// the disk.
func SweepInodes(reader *BlockReader, t *Tallies, log logrus.FieldLogger) ([]Inode, error) {
	inodes := make([]Inode, t.NumInodes())

	for blk := inodeTableStart; blk < inodeTableStart+t.InodeListSize; blk++ {
		t.CreditOccupied(blk)

		buf, err := reader.ReadBlock(blk)
		if err != nil {
			return nil, err
		}

		for slot := 0; slot < InodesPerBlock; slot++ {
			n := (blk-inodeTableStart)*InodesPerBlock + uint32(slot)
			if n == 0 {
				// Inode 0 does not exist; the root inode is 1.
				continue
			}
			in := decodeInode(buf, slot*InodeSize)
			inodes[n] = in

			if in.IsFree() || in.IsDevice() {
				continue
			}
			if err := creditInodeBlocks(reader, t, in); err != nil {
				return nil, err
			}
		}
	}

	log.WithFields(logrus.Fields{
		"inodeListSize": t.InodeListSize,
		"numInodes":     len(inodes),
	}).Debug("inode sweep complete")

	return inodes, nil
}

// creditInodeBlocks credits every data block reachable from in's direct,
// single-indirect, and double-indirect pointers.
func creditInodeBlocks(reader *BlockReader, t *Tallies, in Inode) error {
	for _, b := range in.Direct {
		t.CreditOccupied(b)
	}
	if in.SIndirect != 0 {
		if err := creditSingleIndirect(reader, t, in.SIndirect); err != nil {
			return err
		}
	}
	if in.DIndirect != 0 {
		if err := creditDoubleIndirect(reader, t, in.DIndirect); err != nil {
			return err
		}
	}
	return nil
}

// creditSingleIndirect credits the indirect block itself plus every data
// block it points to.
func creditSingleIndirect(reader *BlockReader, t *Tallies, ind uint32) error {
	t.CreditOccupied(ind)
	if !t.InRange(ind) {
		return nil
	}
	buf, err := reader.ReadBlock(ind)
	if err != nil {
		return err
	}
	for _, b := range decodeIndirectBlock(buf) {
		t.CreditOccupied(b)
	}
	return nil
}

// creditDoubleIndirect credits the double-indirect block, each
// single-indirect block it points to, and their data blocks.
func creditDoubleIndirect(reader *BlockReader, t *Tallies, dind uint32) error {
	t.CreditOccupied(dind)
	if !t.InRange(dind) {
		return nil
	}
	buf, err := reader.ReadBlock(dind)
	if err != nil {
		return err
	}
	for _, ind := range decodeIndirectBlock(buf) {
		if ind == 0 {
			continue
		}
		if err := creditSingleIndirect(reader, t, ind); err != nil {
			return err
		}
	}
	return nil
}
