package interlog

import "encoding/binary"

// On-disk event layout, little-endian, 8-byte aligned (spec §4.3):
//
//	offset  size  field
//	 0       16   origin address
//	16        8   logical_pos (u64)
//	24        8   payload_len (u64)
//	32        L   payload bytes
//	32+L      P   zero padding so (32 + L + P) % 8 == 0
const (
	// HeaderSize is the fixed size of an event header, in bytes.
	HeaderSize = 32

	offOrigin     = 0
	offLogicalPos = 16
	offPayloadLen = 24
	offPayload    = HeaderSize
)

// ID identifies an event: the log it originated from, plus its 0-based
// logical position within that log.
type ID struct {
	Origin     Address
	LogicalPos uint64
}

// Event is a logical record: an [ID] plus its payload. Payloads returned
// from a read borrow the bytes of whichever buffer produced them (the read
// cache or the disk scratch buffer) and are valid only until that buffer is
// next mutated.
type Event struct {
	ID      ID
	Payload []byte
}

// align8 rounds x up to the next multiple of 8.
func align8(x int) int {
	return (x + 7) &^ 7
}

// OnDiskSize returns the on-disk size, including header and alignment
// padding, of an event carrying a payload of the given length.
func OnDiskSize(payloadLen int) int {
	return align8(HeaderSize + payloadLen)
}

// OnDiskSize returns this event's on-disk size, including header and
// alignment padding.
func (e Event) OnDiskSize() int {
	return OnDiskSize(len(e.Payload))
}

// AppendEvent serializes header + payload + padding directly into buf,
// failing with [ErrOverflow] (and leaving buf unchanged) if it does not
// have room for the full on-disk size.
func AppendEvent(buf *FixVec[byte], e Event) error {
	size := e.OnDiskSize()

	dst, err := buf.GrowBy(size)
	if err != nil {
		return err
	}

	putAddress(dst[offOrigin:], e.ID.Origin)
	binary.LittleEndian.PutUint64(dst[offLogicalPos:], e.ID.LogicalPos)
	binary.LittleEndian.PutUint64(dst[offPayloadLen:], uint64(len(e.Payload)))
	copy(dst[offPayload:offPayload+len(e.Payload)], e.Payload)

	for i := offPayload + len(e.Payload); i < size; i++ {
		dst[i] = 0
	}

	return nil
}

// ReadEvent decodes the event whose header begins at offset within bytes.
// The returned Event's Payload borrows bytes directly from the bytes
// slice. ok is false if the header does not fit, or the declared payload
// length would run past the end of bytes.
func ReadEvent(bytes []byte, offset int) (Event, bool) {
	if offset < 0 || offset+HeaderSize > len(bytes) {
		return Event{}, false
	}

	header := bytes[offset:]

	payloadLen := binary.LittleEndian.Uint64(header[offPayloadLen:])
	payloadStart := offset + offPayload
	payloadEnd := payloadStart + int(payloadLen)

	if payloadLen > uint64(len(bytes)) || payloadEnd < payloadStart || payloadEnd > len(bytes) {
		return Event{}, false
	}

	e := Event{
		ID: ID{
			Origin:     getAddress(header[offOrigin:]),
			LogicalPos: binary.LittleEndian.Uint64(header[offLogicalPos:]),
		},
		Payload: bytes[payloadStart:payloadEnd],
	}

	return e, true
}

// View is a lazy, restartable, finite iterator over consecutive events
// packed in a byte slice. It never allocates. Iteration stops cleanly at
// the end of the slice; a truncated trailing event is not yielded.
type View struct {
	data   []byte
	offset int
}

// NewView returns a View over data, starting at its first event.
func NewView(data []byte) *View {
	return &View{data: data}
}

// Next decodes and returns the next event along with the byte offset its
// header starts at, advancing the view past it. ok is false once the view
// is exhausted (including when only a truncated trailing event remains).
func (v *View) Next() (offset int, e Event, ok bool) {
	if v.offset >= len(v.data) {
		return 0, Event{}, false
	}

	e, ok = ReadEvent(v.data, v.offset)
	if !ok {
		return 0, Event{}, false
	}

	offset = v.offset
	v.offset += e.OnDiskSize()

	return offset, e, true
}
