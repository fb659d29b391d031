package eos32fs

import (
	"encoding/binary"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/eos32fs/fsck/testhelper"
)

// fixture is a synthetic ten-block EOS32 filesystem: block 0 is an
// unused boot block, block 1 the superblock, block 2 the (one-block)
// inode table, block 3 the root directory's only data block, and blocks
// 4-9 free. Inode 1 is the root directory containing "." and ".." (both
// pointing at itself) and one entry "file" pointing at inode 2, a
// zero-length regular file with no data blocks of its own.
type fixture struct {
	img           *testhelper.MemImage
	numBlocks     uint32
	inodeListSize uint32
}

func putU32(buf []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(buf[off:off+4], v)
}

func newCleanFixture(t *testing.T) *fixture {
	t.Helper()

	const numBlocks = 10
	img := testhelper.NewMemImage(numBlocks * BlockSize)

	sb := make([]byte, BlockSize)
	putU32(sb, sbInodeListSizeOffset, 1)
	freeBlocks := []uint32{4, 5, 6, 7, 8, 9}
	for i, b := range freeBlocks {
		putU32(sb, sbFreeCacheDataOffset+i*4, b)
	}
	img.WriteAt(sb, int64(1)*BlockSize)

	inodeBlock := make([]byte, BlockSize)
	writeInode(inodeBlock, 1, Inode{Mode: ModeDirectory, NLink: 2, Direct: [6]uint32{3}})
	writeInode(inodeBlock, 2, Inode{Mode: ModeRegular, NLink: 1})
	img.WriteAt(inodeBlock, int64(2)*BlockSize)

	dirBlock := make([]byte, BlockSize)
	writeDirEntry(dirBlock, 0, 1, ".")
	writeDirEntry(dirBlock, 1, 1, "..")
	writeDirEntry(dirBlock, 2, 2, "file")
	img.WriteAt(dirBlock, int64(3)*BlockSize)

	return &fixture{img: img, numBlocks: numBlocks, inodeListSize: 1}
}

// writeInode encodes inode n (1-based, within the one-block inode table
// this fixture uses) into buf at its InodeSize*n offset.
func writeInode(buf []byte, n int, in Inode) {
	off := n * InodeSize
	putU32(buf, off+inoModeOffset, in.Mode)
	putU32(buf, off+inoNLinkOffset, in.NLink)
	putU32(buf, off+inoSizeOffset, in.Size)
	for i, d := range in.Direct {
		putU32(buf, off+inoDirectOffset+i*4, d)
	}
	putU32(buf, off+inoSIndOffset, in.SIndirect)
	putU32(buf, off+inoDIndOffset, in.DIndirect)
}

func writeDirEntry(buf []byte, slot int, inode uint32, name string) {
	off := slot * DirEntrySize
	putU32(buf, off, inode)
	copy(buf[off+4:off+4+NameFieldSize], name)
}

func (f *fixture) run(t *testing.T) error {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return Run(f.img, f.numBlocks*SectorsPerBlock, log)
}

func TestRun_CleanImage(t *testing.T) {
	f := newCleanFixture(t)
	require.NoError(t, f.run(t))
}

func TestRun_OrphanBlock(t *testing.T) {
	f := newCleanFixture(t)
	// Drop block 9 from the free cache; nothing else claims it.
	sb := make([]byte, BlockSize)
	_, err := f.img.ReadAt(sb, BlockSize)
	require.NoError(t, err)
	putU32(sb, sbFreeCacheDataOffset+5*4, 0)
	f.img.WriteAt(sb, BlockSize)

	err = f.run(t)
	require.Error(t, err)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, KindOrphanBlock, ce.Kind)
}

func TestRun_DoubleUse(t *testing.T) {
	f := newCleanFixture(t)
	// Give the file inode a data block that is also on the free list.
	inodeBlock := make([]byte, BlockSize)
	_, err := f.img.ReadAt(inodeBlock, 2*BlockSize)
	require.NoError(t, err)
	putU32(inodeBlock, 2*InodeSize+inoDirectOffset, 4)
	f.img.WriteAt(inodeBlock, 2*BlockSize)

	err = f.run(t)
	require.Error(t, err)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, KindDoubleUse, ce.Kind)
}

func TestRun_DoubleFree(t *testing.T) {
	f := newCleanFixture(t)
	sb := make([]byte, BlockSize)
	_, err := f.img.ReadAt(sb, BlockSize)
	require.NoError(t, err)
	// List block 4 twice in the free cache.
	putU32(sb, sbFreeCacheDataOffset+5*4, 4)
	f.img.WriteAt(sb, BlockSize)

	err = f.run(t)
	require.Error(t, err)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, KindDoubleFree, ce.Kind)
}

func TestRun_DoubleOccupied(t *testing.T) {
	f := newCleanFixture(t)
	// Give the file inode the same block as the root's directory data.
	inodeBlock := make([]byte, BlockSize)
	_, err := f.img.ReadAt(inodeBlock, 2*BlockSize)
	require.NoError(t, err)
	putU32(inodeBlock, 2*InodeSize+inoDirectOffset, 3)
	f.img.WriteAt(inodeBlock, 2*BlockSize)

	err = f.run(t)
	require.Error(t, err)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, KindDoubleOccupied, ce.Kind)
}

func TestRun_LinkCountMismatch(t *testing.T) {
	f := newCleanFixture(t)
	inodeBlock := make([]byte, BlockSize)
	_, err := f.img.ReadAt(inodeBlock, 2*BlockSize)
	require.NoError(t, err)
	putU32(inodeBlock, 2*InodeSize+inoNLinkOffset, 2)
	f.img.WriteAt(inodeBlock, 2*BlockSize)

	err = f.run(t)
	require.Error(t, err)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, KindLinkCountMismatch, ce.Kind)
}

func TestRun_RootNotDirectory(t *testing.T) {
	f := newCleanFixture(t)
	inodeBlock := make([]byte, BlockSize)
	_, err := f.img.ReadAt(inodeBlock, 2*BlockSize)
	require.NoError(t, err)
	putU32(inodeBlock, 1*InodeSize+inoModeOffset, ModeRegular)
	f.img.WriteAt(inodeBlock, 2*BlockSize)

	err = f.run(t)
	require.Error(t, err)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, KindRootNotDir, ce.Kind)
}

// TestRun_ZeroLinkInDirBeatsFreeInodeInDir is the regression test for
// spec section 4.7's canonical row order: an inode with mode == 0 *and*
// nlink == 0, referenced by a directory, matches both the ZeroLinkInDir
// and FreeInodeInDir rows, and the first of the two in the table --
// ZeroLinkInDir, exit 15 -- must win.
func TestRun_ZeroLinkInDirBeatsFreeInodeInDir(t *testing.T) {
	f := newCleanFixture(t)
	inodeBlock := make([]byte, BlockSize)
	_, err := f.img.ReadAt(inodeBlock, 2*BlockSize)
	require.NoError(t, err)
	// inode 2 ("file") is free (mode 0) but also has nlink 0, and the
	// root directory's "file" entry still references it.
	putU32(inodeBlock, 2*InodeSize+inoModeOffset, ModeFree)
	putU32(inodeBlock, 2*InodeSize+inoNLinkOffset, 0)
	f.img.WriteAt(inodeBlock, 2*BlockSize)

	err = f.run(t)
	require.Error(t, err)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, KindZeroLinkInDir, ce.Kind)
}

// TestRun_FreeInodeWithNonzeroLinkMismatches is the regression test for
// spec section 4.7's third row guard: a free inode (mode == 0) with a
// nonzero nlink that does not match its (zero) refs must report
// LinkCountMismatch, not a clean filesystem -- the guard is nlink != 0,
// not the derived "not free".
func TestRun_FreeInodeWithNonzeroLinkMismatches(t *testing.T) {
	f := newCleanFixture(t)
	inodeBlock := make([]byte, BlockSize)
	_, err := f.img.ReadAt(inodeBlock, 2*BlockSize)
	require.NoError(t, err)
	// inode 3 is unused (mode 0, nlink 0, never referenced) in the clean
	// fixture; give it a nonzero nlink while leaving it unreferenced and
	// still marked free.
	putU32(inodeBlock, 3*InodeSize+inoNLinkOffset, 1)
	f.img.WriteAt(inodeBlock, 2*BlockSize)

	err = f.run(t)
	require.Error(t, err)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, KindLinkCountMismatch, ce.Kind)
}
