package eos32fs

import "github.com/sirupsen/logrus"

// WalkFromRoot walks the directory tree starting at the root inode,
// crediting each referenced inode and marking each visited directory, the
// traversal the original performs with its recursive dirscan(). The walk
// never follows "." or ".." back upward; it only recurses into entries it
// has not already visited, which is sufficient to reach every directory
// in a well-formed tree without looping on the standard self- and
// parent-links.
func WalkFromRoot(reader *BlockReader, t *Tallies, inodes []Inode, log logrus.FieldLogger) error {
	if rootInodeNumber >= uint32(len(inodes)) || !inodes[rootInodeNumber].IsDirectory() {
		return newRootNotDirError()
	}

	// The root's own "." and ".." entries, found when its directory block
	// is scanned below, credit its link count; nothing outside the tree
	// references the root, so no reference is credited here.
	if err := visitDirectory(reader, t, inodes, rootInodeNumber, log); err != nil {
		return err
	}

	log.Debug("directory walk complete")
	return nil
}

// visitDirectory marks inode n visited, then reads its data blocks as
// directory blocks, crediting every referenced inode and recursing into
// every referenced subdirectory not yet visited.
func visitDirectory(reader *BlockReader, t *Tallies, inodes []Inode, n uint32, log logrus.FieldLogger) error {
	if t.Inodes[n].Visited {
		return nil
	}
	// Mark visited before recursing: a directory that (incorrectly)
	// references itself or an ancestor must not be walked twice.
	t.Inodes[n].Visited = true

	in := inodes[n]
	blocks, err := dataBlockNumbers(reader, t, in)
	if err != nil {
		return err
	}

	for _, b := range blocks {
		if b == 0 || !t.InRange(b) {
			continue
		}
		buf, err := reader.ReadBlock(b)
		if err != nil {
			return err
		}
		if err := visitDirBlock(reader, t, inodes, buf, log); err != nil {
			return err
		}
	}
	return nil
}

// visitDirBlock credits every entry in one directory data block and
// recurses into subdirectory entries.
func visitDirBlock(reader *BlockReader, t *Tallies, inodes []Inode, buf []byte, log logrus.FieldLogger) error {
	for _, ent := range decodeDirBlock(buf) {
		if ent.Inode >= uint32(len(inodes)) {
			continue
		}
		t.Inodes[ent.Inode].Refs++

		target := inodes[ent.Inode]
		if target.IsDirectory() && ent.Name != "." && ent.Name != ".." {
			if err := visitDirectory(reader, t, inodes, ent.Inode, log); err != nil {
				return err
			}
		}
	}
	return nil
}

// dataBlockNumbers flattens an inode's direct and indirect pointers into
// one ordered slice of data block numbers, skipping the indirect blocks
// themselves (already credited during the inode sweep).
func dataBlockNumbers(reader *BlockReader, t *Tallies, in Inode) ([]uint32, error) {
	var out []uint32
	out = append(out, in.Direct[:]...)

	if in.SIndirect != 0 && t.InRange(in.SIndirect) {
		buf, err := reader.ReadBlock(in.SIndirect)
		if err != nil {
			return nil, err
		}
		out = append(out, decodeIndirectBlock(buf)...)
	}

	if in.DIndirect != 0 && t.InRange(in.DIndirect) {
		buf, err := reader.ReadBlock(in.DIndirect)
		if err != nil {
			return nil, err
		}
		for _, ind := range decodeIndirectBlock(buf) {
			if ind == 0 || !t.InRange(ind) {
				continue
			}
			indBuf, err := reader.ReadBlock(ind)
			if err != nil {
				return nil, err
			}
			out = append(out, decodeIndirectBlock(indBuf)...)
		}
	}

	return out, nil
}
