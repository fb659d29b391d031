// Package eos32fs implements the consistency engine: the traversal and
// cross-reference machinery that walks an EOS32 filesystem's inodes, free
// list, and directory tree, then cross-checks the resulting tallies.
//
// It mirrors the way github.com/diskfs/go-diskfs/filesystem/ext4 decodes a
// fixed binary on-disk layout into Go structs with a handful of pure
// decodeX functions, but the engine here never mutates anything: it only
// reads, tallies, and reports the first inconsistency it finds.
package eos32fs

// Fixed geometry constants for an EOS32 filesystem.
const (
	SectorSize      = 512
	BlockSize       = 4096
	SectorsPerBlock = BlockSize / SectorSize // SPB

	InodeSize          = 64
	InodesPerBlock     = 64 // INOPB
	DirEntrySize       = 64
	DirEntriesPerBlock = 64 // DIRPB
	NameFieldSize      = 60 // DIRSIZ

	// NICFREE is the number of free block numbers cached in the
	// superblock and in each free-list link block.
	NICFREE = 500

	wordsPerIndirectBlock = BlockSize / 4 // 1024

	rootInodeNumber uint32 = 1

	// inodeTableStart is the first block of the inode list; the
	// superblock occupies block 1, and the inode table follows at block 2.
	inodeTableStart uint32 = 2
)

// Inode mode bits: type occupies the three bits of octal digit 070000 (IFMT).
const (
	modeTypeMask    uint32 = 0070000
	ModeRegular     uint32 = 0040000
	ModeDirectory   uint32 = 0030000
	ModeCharDevice  uint32 = 0020000
	ModeBlockDevice uint32 = 0010000
	ModeFree        uint32 = 0000000
)

// superblock byte offsets, relative to the start of block 1.
const (
	sbInodeListSizeOffset = 8
	sbFreeCacheHeadOffset = 24 + 500*4 // 2024: head of the free-block cache, after the free-inode cache
	sbFreeCacheDataOffset = sbFreeCacheHeadOffset + 4
)

// inode byte offsets, relative to the start of a 64-byte inode record.
const (
	inoModeOffset   = 0
	inoNLinkOffset  = 4
	inoSizeOffset   = 28
	inoDirectOffset = 32
	inoSIndOffset   = 56
	inoDIndOffset   = 60
)
