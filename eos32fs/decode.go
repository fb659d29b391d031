package eos32fs

import "encoding/binary"

// decodeU32 reads a big-endian uint32 at off within buf, the on-disk
// integer encoding used throughout EOS32.
func decodeU32(buf []byte, off int) uint32 {
	return binary.BigEndian.Uint32(buf[off : off+4])
}

// Inode is the decoded 64-byte on-disk inode record.
type Inode struct {
	Mode      uint32
	NLink     uint32
	Size      uint32
	Direct    [6]uint32
	SIndirect uint32
	DIndirect uint32
}

// Type returns the inode's type bits, mode & IFMT.
func (in Inode) Type() uint32 {
	return in.Mode & modeTypeMask
}

// IsFree reports whether the inode's mode marks it as unallocated.
func (in Inode) IsFree() bool {
	return in.Mode == ModeFree
}

// IsDevice reports whether the inode describes a character- or
// block-special file, which has no data blocks to traverse.
func (in Inode) IsDevice() bool {
	t := in.Type()
	return t == ModeCharDevice || t == ModeBlockDevice
}

// IsDirectory reports whether the inode's type is directory.
func (in Inode) IsDirectory() bool {
	return in.Type() == ModeDirectory
}

// decodeInode decodes one 64-byte inode record starting at off within buf.
func decodeInode(buf []byte, off int) Inode {
	var in Inode
	in.Mode = decodeU32(buf, off+inoModeOffset)
	in.NLink = decodeU32(buf, off+inoNLinkOffset)
	in.Size = decodeU32(buf, off+inoSizeOffset)
	for i := 0; i < 6; i++ {
		in.Direct[i] = decodeU32(buf, off+inoDirectOffset+i*4)
	}
	in.SIndirect = decodeU32(buf, off+inoSIndOffset)
	in.DIndirect = decodeU32(buf, off+inoDIndOffset)
	return in
}

// DirEntry is one non-empty directory entry: an inode number and its name.
type DirEntry struct {
	Inode uint32
	Name  string
}

// decodeDirBlock decodes up to DirEntriesPerBlock entries from a directory
// data block, skipping empty slots (inode number 0).
func decodeDirBlock(buf []byte) []DirEntry {
	entries := make([]DirEntry, 0, DirEntriesPerBlock)
	for i := 0; i < DirEntriesPerBlock; i++ {
		off := i * DirEntrySize
		ino := decodeU32(buf, off)
		if ino == 0 {
			continue
		}
		entries = append(entries, DirEntry{
			Inode: ino,
			Name:  minString(buf[off+4 : off+4+NameFieldSize]),
		})
	}
	return entries
}

// minString trims a fixed-width name field at its first NUL byte.
func minString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// decodeIndirectBlock decodes a block of big-endian uint32 block numbers,
// used for both single- and double-indirect pointer arrays.
func decodeIndirectBlock(buf []byte) []uint32 {
	out := make([]uint32, wordsPerIndirectBlock)
	for i := range out {
		out[i] = decodeU32(buf, i*4)
	}
	return out
}
