package types

import (
	"errors"

	"github.com/spacemeshos/go-scale"

	"github.com/trollup/go-trollup/hash"
)

const Hash32Length = hash.Size

// ErrInvalidLength is returned when a textual value decodes to the wrong number of bytes.
var ErrInvalidLength = errors.New("invalid length")

// Hash32 is a 32-byte digest. State roots, transaction ids and proof commitments are Hash32.
type Hash32 [Hash32Length]byte

// EmptyRoot is the root of a state with no accounts.
var EmptyRoot = Hash32{}

// CalcHash32 returns the blake3 digest of data.
func CalcHash32(data ...[]byte) Hash32 {
	return Hash32(hash.Sum(data...))
}

// Bytes returns the raw bytes.
func (h Hash32) Bytes() []byte { return h[:] }

// String returns the 0x-prefixed hex form.
func (h Hash32) String() string { return encodeHex(h[:]) }

// ShortString returns the first five bytes in hex.
func (h Hash32) ShortString() string { return shortHex(h[:]) }

// MarshalText implements encoding.TextMarshaler.
func (h Hash32) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash32) UnmarshalText(text []byte) error {
	return decodeHex(h[:], string(text))
}

// EncodeScale implements scale codec interface.
func (h *Hash32) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, h[:])
}

// DecodeScale implements scale codec interface.
func (h *Hash32) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, h[:])
}
