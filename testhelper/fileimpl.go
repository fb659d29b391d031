// Package testhelper provides stand-ins for backend.Storage used to build
// synthetic EOS32 images in tests without touching the filesystem.
package testhelper

import (
	"fmt"
	"io/fs"
	"time"
)

// MemImage is an in-memory backend.Storage backed by a byte slice, used to
// assemble synthetic disk images (superblock, inode table, data blocks) for
// engine tests.
type MemImage struct {
	buf []byte
}

// NewMemImage creates a zero-filled image of the given size in bytes.
func NewMemImage(size int) *MemImage {
	return &MemImage{buf: make([]byte, size)}
}

// WriteAt copies b into the image's backing buffer at offset, growing the
// buffer if necessary. It exists purely to let tests assemble fixtures; it
// is not part of backend.Storage.
func (m *MemImage) WriteAt(b []byte, offset int64) {
	end := int(offset) + len(b)
	if end > len(m.buf) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[offset:end], b)
}

func (m *MemImage) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || int(off) > len(m.buf) {
		return 0, fmt.Errorf("offset %d out of range for %d-byte image", off, len(m.buf))
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, fmt.Errorf("short read at offset %d: got %d of %d bytes", off, n, len(p))
	}
	return n, nil
}

func (m *MemImage) Read(b []byte) (int, error) {
	return m.ReadAt(b, 0)
}

func (m *MemImage) Close() error {
	return nil
}

func (m *MemImage) Stat() (fs.FileInfo, error) {
	return memImageInfo{size: int64(len(m.buf))}, nil
}

// memImageInfo is the minimal fs.FileInfo MemImage.Stat needs to report
// an image's size for whole-disk ("*") partition selection.
type memImageInfo struct {
	size int64
}

func (i memImageInfo) Name() string       { return "memimage" }
func (i memImageInfo) Size() int64        { return i.size }
func (i memImageInfo) Mode() fs.FileMode  { return 0 }
func (i memImageInfo) ModTime() (t time.Time) { return t }
func (i memImageInfo) IsDir() bool        { return false }
func (i memImageInfo) Sys() interface{}   { return nil }
