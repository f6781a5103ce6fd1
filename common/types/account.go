package types

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/spacemeshos/go-scale"
)

// Account is the balance and last used nonce of an address.
// Addresses that were never touched read as the zero Account.
type Account struct {
	Address Address
	Balance uint256.Int
	Nonce   uint256.Int
}

// IsEmpty is true for an account with zero balance and zero nonce.
func (a *Account) IsEmpty() bool {
	return a.Balance.IsZero() && a.Nonce.IsZero()
}

func (a *Account) String() string {
	return fmt.Sprintf("%s balance=%s nonce=%s", a.Address, a.Balance.Dec(), a.Nonce.Dec())
}

// EncodeScale implements scale codec interface.
func (a *Account) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByteArray(enc, a.Address[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := encodeUint256(enc, &a.Balance)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := encodeUint256(enc, &a.Nonce)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (a *Account) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := scale.DecodeByteArray(dec, a.Address[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := decodeUint256(dec, &a.Balance)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := decodeUint256(dec, &a.Nonce)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
