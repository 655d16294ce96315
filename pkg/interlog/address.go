package interlog

import (
	"encoding/binary"
	"fmt"
	"io"
)

// addressSize is the on-disk and in-memory size of an [Address]: two
// little-endian uint64 words, 8-byte aligned.
const addressSize = 16

// Address is a 128-bit opaque identifier minted once per log from a random
// source. Two logs never collide in practice, and nothing about interlog
// relies on Address values being comparable across processes beyond that.
type Address struct {
	hi uint64
	lo uint64
}

// NewAddress mints an Address by reading 16 random bytes from src.
// Callers typically pass [crypto/rand.Reader].
func NewAddress(src io.Reader) (Address, error) {
	var buf [addressSize]byte

	_, err := io.ReadFull(src, buf[:])
	if err != nil {
		return Address{}, fmt.Errorf("interlog: minting address: %w", err)
	}

	return Address{
		hi: binary.LittleEndian.Uint64(buf[0:8]),
		lo: binary.LittleEndian.Uint64(buf[8:16]),
	}, nil
}

// AddressFromWords builds an Address from its two raw little-endian words.
// Used by the deterministic simulator and by tests.
func AddressFromWords(hi, lo uint64) Address {
	return Address{hi: hi, lo: lo}
}

// Words returns the address's two little-endian words, in on-disk order.
func (a Address) Words() (hi, lo uint64) { return a.hi, a.lo }

// String renders the address as two concatenated hex words, per the
// on-disk/display format in the spec.
func (a Address) String() string {
	return fmt.Sprintf("%016x%016x", a.hi, a.lo)
}

// MarshalText implements [encoding.TextMarshaler] so an Address can be used
// directly as a JSON object key or map key.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// putAddress writes a's two words into buf[0:16], little-endian.
func putAddress(buf []byte, a Address) {
	binary.LittleEndian.PutUint64(buf[0:8], a.hi)
	binary.LittleEndian.PutUint64(buf[8:16], a.lo)
}

// getAddress reads an Address from buf[0:16], little-endian.
func getAddress(buf []byte) Address {
	return Address{
		hi: binary.LittleEndian.Uint64(buf[0:8]),
		lo: binary.LittleEndian.Uint64(buf[8:16]),
	}
}
