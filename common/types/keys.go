package types

import (
	"github.com/spacemeshos/go-scale"
)

const (
	PublicKeyLength = 32
	SignatureLength = 64
)

// PublicKey is an ed25519 public key identifying the owner of an account.
type PublicKey [PublicKeyLength]byte

// Bytes returns the raw bytes.
func (k PublicKey) Bytes() []byte { return k[:] }

// String returns the 0x-prefixed hex form.
func (k PublicKey) String() string { return encodeHex(k[:]) }

// ShortString returns the first five bytes in hex.
func (k PublicKey) ShortString() string { return shortHex(k[:]) }

// Address derives the account address owned by this key.
func (k PublicKey) Address() Address {
	return GenerateAddress(k)
}

// MarshalText implements encoding.TextMarshaler.
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PublicKey) UnmarshalText(text []byte) error {
	return decodeHex(k[:], string(text))
}

// EncodeScale implements scale codec interface.
func (k *PublicKey) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, k[:])
}

// DecodeScale implements scale codec interface.
func (k *PublicKey) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, k[:])
}

// Signature is an ed25519 signature.
type Signature [SignatureLength]byte

// String returns the 0x-prefixed hex form.
func (s Signature) String() string { return encodeHex(s[:]) }

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Signature) UnmarshalText(text []byte) error {
	return decodeHex(s[:], string(text))
}

// EncodeScale implements scale codec interface.
func (s *Signature) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, s[:])
}

// DecodeScale implements scale codec interface.
func (s *Signature) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, s[:])
}
