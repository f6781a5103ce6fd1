package types

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/spacemeshos/go-scale"

	"github.com/trollup/go-trollup/codec"
)

// ErrUnknownTxKind is returned when decoding a transaction with a kind outside of the known set.
var ErrUnknownTxKind = errors.New("unknown transaction kind")

// TxKind tags a transaction. All kinds move value from sender to recipient in the same way.
type TxKind uint8

const (
	Transfer TxKind = iota
	Deposit
	Withdraw
)

func (k TxKind) String() string {
	switch k {
	case Transfer:
		return "transfer"
	case Deposit:
		return "deposit"
	case Withdraw:
		return "withdraw"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParseTxKind is the inverse of TxKind.String for known kinds.
func ParseTxKind(s string) (TxKind, error) {
	switch s {
	case "transfer":
		return Transfer, nil
	case "deposit":
		return Deposit, nil
	case "withdraw":
		return Withdraw, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTxKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k TxKind) MarshalText() ([]byte, error) {
	if k > Withdraw {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTxKind, k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TxKind) UnmarshalText(text []byte) error {
	kind, err := ParseTxKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Tx is the unsigned body of a transaction.
type Tx struct {
	Kind      TxKind
	Sender    PublicKey
	Recipient PublicKey
	Nonce     uint256.Int
	Value     uint256.Int
}

// EncodeScale implements scale codec interface.
func (t *Tx) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByte(enc, byte(t.Kind))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, t.Sender[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, t.Recipient[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := encodeUint256(enc, &t.Nonce)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := encodeUint256(enc, &t.Value)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (t *Tx) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeByte(dec)
		if err != nil {
			return total, err
		}
		total += n
		if TxKind(field) > Withdraw {
			return total, fmt.Errorf("%w: %d", ErrUnknownTxKind, field)
		}
		t.Kind = TxKind(field)
	}
	{
		n, err := scale.DecodeByteArray(dec, t.Sender[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.DecodeByteArray(dec, t.Recipient[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := decodeUint256(dec, &t.Nonce)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := decodeUint256(dec, &t.Value)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// kind, two keys, nonce and value.
const txEncodedSize = 1 + 2*PublicKeyLength + 2*32

// SignedTx is a transaction together with the sender's signature over SigningBytes.
type SignedTx struct {
	Tx
	Signature Signature
}

// ID is the blake3 digest of the scale encoded signed transaction.
func (t *SignedTx) ID() Hash32 {
	return CalcHash32(codec.MustEncode(t))
}

// EncodeScale implements scale codec interface.
func (t *SignedTx) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := t.Tx.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, t.Signature[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (t *SignedTx) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := t.Tx.DecodeScale(dec)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.DecodeByteArray(dec, t.Signature[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// SigningBytes is the message a sender signs: the network prefix followed by the encoded Tx.
func SigningBytes(prefix []byte, tx *Tx) []byte {
	buf := make([]byte, 0, len(prefix)+txEncodedSize)
	buf = append(buf, prefix...)
	return append(buf, codec.MustEncode(tx)...)
}
