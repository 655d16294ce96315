package storage

import (
	"fmt"

	"github.com/abletheabove/interlog/pkg/interlog"
)

// Mem is a fixed-capacity, in-memory [Storage]. It never allocates past
// its initial capacity: [Mem.Append] fails once full rather than
// growing. It mirrors the original simulator's append-only memory sink
// and is the fast oracle backing pkg/interlog's own property tests.
type Mem struct {
	buf interlog.FixVec[byte]
}

// NewMem allocates a Mem with the given fixed byte capacity.
func NewMem(capacity int) *Mem {
	buf := interlog.NewFixVec[byte](capacity)
	return &Mem{buf: buf}
}

// Append writes p at the current end of the buffer, failing if there is
// no room left.
func (m *Mem) Append(p []byte) (int, error) {
	if err := m.buf.ExtendFromSlice(p); err != nil {
		return 0, fmt.Errorf("storage: mem append: %w", err)
	}

	return len(p), nil
}

// ReadAt fills dst from the buffer starting at offset.
func (m *Mem) ReadAt(dst []byte, offset int64) error {
	all := m.buf.Slice()

	start := int(offset)
	end := start + len(dst)

	if start < 0 || end > len(all) {
		return fmt.Errorf("storage: mem read [%d:%d] out of bounds (len %d)", start, end, len(all))
	}

	copy(dst, all[start:end])

	return nil
}

// Len returns the number of bytes appended so far.
func (m *Mem) Len() int { return m.buf.Len() }

// Bytes returns the live portion of the backing buffer. Mainly useful
// for test oracles that want to decode events independently of the
// interlog.Log under test; the returned slice is invalidated by the
// next Append.
func (m *Mem) Bytes() []byte { return m.buf.Slice() }
