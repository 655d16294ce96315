package interlog

import "fmt"

// Region describes a half-open [pos, end) window into a byte buffer.
//
// Region is pure arithmetic: it never holds a reference to the buffer it
// describes. Callers pass the buffer to [Region.Read] / [Region.Write].
type Region struct {
	pos int
	len int
}

// ZeroRegion is the empty region at position 0.
var ZeroRegion = Region{}

// NewRegion returns the region [pos, pos+length).
func NewRegion(pos, length int) Region {
	return Region{pos: pos, len: length}
}

// Pos returns the region's start offset.
func (r Region) Pos() int { return r.pos }

// Len returns the region's length in bytes.
func (r Region) Len() int { return r.len }

// End returns the region's exclusive end offset.
func (r Region) End() int { return r.pos + r.len }

// Empty reports whether the region spans zero bytes.
func (r Region) Empty() bool { return r.len == 0 }

// Range returns the region as a slice-index range.
func (r Region) Range() (pos, end int) { return r.pos, r.End() }

// Lengthen grows the region by n bytes, keeping pos fixed.
func (r Region) Lengthen(n int) Region {
	return Region{pos: r.pos, len: r.len + n}
}

// ChangePos moves the start of the region to newPos while leaving End
// fixed, which shortens (or lengthens) Len accordingly.
func (r Region) ChangePos(newPos int) Region {
	return Region{pos: newPos, len: r.End() - newPos}
}

// Next returns the region of the given length immediately following r.
func (r Region) Next(length int) Region {
	return Region{pos: r.End(), len: length}
}

// errOutOfBounds indicates a Region operation that would read or write
// outside the supplied buffer.
var errOutOfBounds = fmt.Errorf("interlog: region out of bounds")

// Read returns the bytes buf[pos:end], or an error if that range does not
// fit inside buf.
func (r Region) Read(buf []byte) ([]byte, error) {
	if r.pos < 0 || r.End() > len(buf) {
		return nil, errOutOfBounds
	}

	return buf[r.pos:r.End()], nil
}

// Write copies src into buf starting at pos, failing if src does not fit
// within the region's length or within buf.
func (r Region) Write(buf []byte, src []byte) error {
	if len(src) > r.len {
		return errOutOfBounds
	}

	if r.pos < 0 || r.pos+len(src) > len(buf) {
		return errOutOfBounds
	}

	copy(buf[r.pos:r.pos+len(src)], src)

	return nil
}
