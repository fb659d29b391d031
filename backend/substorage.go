package backend

import "io/fs"

// SubStorage restricts File access to a byte range [offset, offset+size)
// of an underlying File, translating every ReadAt so callers can treat a
// selected partition as if it were its own whole image. This plays the
// same role github.com/diskfs/go-diskfs's backend.WritableFile wrapper
// played for partition-relative I/O, trimmed to the read-only subset
// this tool needs.
type SubStorage struct {
	underlying File
	offset     int64
	size       int64
}

// Sub returns a File view of u restricted to size bytes starting at
// offset within u.
func Sub(u File, offset, size int64) File {
	return SubStorage{underlying: u, offset: offset, size: size}
}

func (s SubStorage) Stat() (fs.FileInfo, error) {
	return s.underlying.Stat()
}

func (s SubStorage) Read(b []byte) (int, error) {
	return s.ReadAt(b, 0)
}

// Close is a no-op: the underlying image's lifetime is owned by whoever
// opened it, not by each partition view taken of it.
func (s SubStorage) Close() error {
	return nil
}

func (s SubStorage) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > s.size {
		return 0, ErrNotSuitable
	}
	return s.underlying.ReadAt(p, s.offset+off)
}
