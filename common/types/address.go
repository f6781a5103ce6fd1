package types

import (
	"bytes"

	"github.com/spacemeshos/go-scale"

	"github.com/trollup/go-trollup/hash"
)

// AddressLength is the expected length of the address.
const AddressLength = 20

// Address identifies an account. It is derived from the owner's public key.
type Address [AddressLength]byte

// GenerateAddress derives an address from a public key: the first 20 bytes of blake3(key).
func GenerateAddress(key PublicKey) Address {
	var addr Address
	digest := hash.Sum(key[:])
	copy(addr[:], digest[:AddressLength])
	return addr
}

// ParseAddress decodes a hex address with an optional 0x prefix.
func ParseAddress(src string) (Address, error) {
	var addr Address
	if err := decodeHex(addr[:], src); err != nil {
		return Address{}, err
	}
	return addr, nil
}

// Bytes returns the raw bytes.
func (a Address) Bytes() []byte { return a[:] }

// String returns the 0x-prefixed hex form.
func (a Address) String() string { return encodeHex(a[:]) }

// ShortString returns the first five bytes in hex.
func (a Address) ShortString() string { return shortHex(a[:]) }

// Compare orders addresses bytewise.
func (a Address) Compare(other Address) int {
	return bytes.Compare(a[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	return decodeHex(a[:], string(text))
}

// EncodeScale implements scale codec interface.
func (a *Address) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, a[:])
}

// DecodeScale implements scale codec interface.
func (a *Address) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, a[:])
}
