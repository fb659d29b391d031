// Package partition decodes the EOS32 partition table found at absolute
// sector 1 of a disk image, the way github.com/diskfs/go-diskfs/partition/mbr
// decodes an MBR: a pure function from a byte buffer to a typed table,
// kept separate from the I/O that fetches that buffer.
package partition

import (
	"encoding/binary"
	"fmt"
)

const (
	// SectorSize is the fixed sector size of an EOS32 disk image.
	SectorSize = 512
	// entrySize is the byte width of one partition table entry.
	entrySize = 32
	// MaxEntries is the number of partition slots in the table.
	MaxEntries = 16
	// typeMask clears the flag bit (bit 31) before comparing a partition's
	// type word against TypeEOS32.
	typeMask = 0x7FFFFFFF
	// TypeEOS32 is the partition type word (after masking) identifying an
	// EOS32 filesystem.
	TypeEOS32 uint32 = 0x00000058
)

// Entry is one decoded partition table entry: its raw type word, and the
// filesystem's start and size expressed in sectors.
type Entry struct {
	Type        uint32 // raw type word, flag bit (31) not yet masked
	StartSector uint32
	SizeSectors uint32
}

// IsEOS32 reports whether this entry's masked type word matches the EOS32
// filesystem type.
func (e Entry) IsEOS32() bool {
	return e.Type&typeMask == TypeEOS32
}

// Table is the decoded set of partition entries from one sector.
type Table struct {
	Entries [MaxEntries]Entry
}

// TableFromBytes decodes a Table from exactly one sector's worth of bytes,
// as read from absolute sector 1 of the image.
func TableFromBytes(b []byte) (*Table, error) {
	if len(b) < SectorSize {
		return nil, &ShortTableError{got: len(b)}
	}
	var t Table
	for i := 0; i < MaxEntries; i++ {
		off := i * entrySize
		t.Entries[i] = Entry{
			Type:        binary.BigEndian.Uint32(b[off : off+4]),
			StartSector: binary.BigEndian.Uint32(b[off+4 : off+8]),
			SizeSectors: binary.BigEndian.Uint32(b[off+8 : off+12]),
		}
	}
	return &t, nil
}

// Select validates a requested partition index and returns the EOS32
// filesystem geometry (start sector, size in sectors) it describes.
//
// index must already have been parsed from the user's argument and bounds
// checked to [0,15] by the caller (spec section 6, exit code 4); Select
// additionally verifies the entry's type word (exit code 5, via
// NotEOS32Error).
func (t *Table) Select(index int) (startSector, sizeSectors uint32, err error) {
	if index < 0 || index >= MaxEntries {
		return 0, 0, NewIllegalPartitionError(fmt.Sprintf("%d", index))
	}
	e := t.Entries[index]
	if !e.IsEOS32() {
		return 0, 0, NewNotEOS32Error(index, e.Type)
	}
	return e.StartSector, e.SizeSectors, nil
}
