package eos32fs

import "github.com/sirupsen/logrus"

// SweepFreeList credits every block reachable from the superblock's free
// block cache: the NICFREE block numbers cached directly in the
// superblock, plus every block in the chain of free-list link blocks
// the cache's head pointer leads to.
//
// The head word at sbFreeCacheHeadOffset is a pure chain-continuation
// pointer, not itself a free block number: it is the "0" sentinel when
// the free list fits entirely in the superblock's cache, and otherwise
// the block number of the next free-list link block. Crediting it a
// second time as a data value, on top of following it as a link, would
// make every filesystem whose free list needs chaining report a false
// DoubleFree. walkFreeChain credits a link block exactly once, the first
// time it is visited, which is the only place the head value itself
// needs crediting.
func SweepFreeList(reader *BlockReader, t *Tallies, sb []byte, log logrus.FieldLogger) error {
	for i := 0; i < NICFREE; i++ {
		b := decodeU32(sb, sbFreeCacheDataOffset+i*4)
		if b == 0 {
			continue
		}
		t.CreditFree(b)
	}

	head := decodeU32(sb, sbFreeCacheHeadOffset)
	count, err := walkFreeChain(reader, t, head, 0)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"headLink": head,
		"chainLen": count,
	}).Debug("free list sweep complete")

	return nil
}

// maxFreeChainLength bounds the free-list walk against a cyclic chain
// corrupting an otherwise well-formed image into an infinite loop.
const maxFreeChainLength = 1 << 20

// walkFreeChain follows one free-list link block, crediting the link
// block itself plus its own cached free block numbers, then recurses to
// its next-link pointer. It returns the number of link blocks visited.
func walkFreeChain(reader *BlockReader, t *Tallies, link uint32, depth int) (int, error) {
	if link == 0 || !t.InRange(link) {
		return depth, nil
	}
	if depth >= maxFreeChainLength {
		return depth, nil
	}

	t.CreditFree(link)

	buf, err := reader.ReadBlock(link)
	if err != nil {
		return depth, err
	}

	const (
		flNextOffset = 4
		flDataOffset = 8
	)
	for i := 0; i < NICFREE; i++ {
		b := decodeU32(buf, flDataOffset+i*4)
		if b == 0 {
			continue
		}
		t.CreditFree(b)
	}

	next := decodeU32(buf, flNextOffset)
	return walkFreeChain(reader, t, next, depth+1)
}
