package eos32fs

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/eos32fs/fsck/testhelper"
)

// TestRun_FreeListChain exercises a free list that spills past the
// superblock's NICFREE-entry cache into one chained link block. It is
// the regression test for the resolved head-link design decision: the
// head word names the link block to follow, and is not itself also
// counted as a cached free block value, so following the chain does not
// double-credit it.
func TestRun_FreeListChain(t *testing.T) {
	const numBlocks = 20
	img := testhelper.NewMemImage(numBlocks * BlockSize)

	sb := make([]byte, BlockSize)
	putU32(sb, sbInodeListSizeOffset, 1)
	putU32(sb, sbFreeCacheHeadOffset, 4) // chain continues at block 4
	for i, b := range []uint32{5, 6, 7, 8, 9} {
		putU32(sb, sbFreeCacheDataOffset+i*4, b)
	}
	img.WriteAt(sb, BlockSize)

	linkBlock := make([]byte, BlockSize)
	const (
		flNextOffset = 4
		flDataOffset = 8
	)
	putU32(linkBlock, flNextOffset, 0) // end of chain
	for i := 0; i < 10; i++ {
		putU32(linkBlock, flDataOffset+i*4, uint32(10+i))
	}
	img.WriteAt(linkBlock, 4*BlockSize)

	inodeBlock := make([]byte, BlockSize)
	writeInode(inodeBlock, 1, Inode{Mode: ModeDirectory, NLink: 2, Direct: [6]uint32{3}})
	img.WriteAt(inodeBlock, 2*BlockSize)

	dirBlock := make([]byte, BlockSize)
	writeDirEntry(dirBlock, 0, 1, ".")
	writeDirEntry(dirBlock, 1, 1, "..")
	img.WriteAt(dirBlock, 3*BlockSize)

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	err := Run(img, numBlocks*SectorsPerBlock, log)
	require.NoError(t, err)
}
