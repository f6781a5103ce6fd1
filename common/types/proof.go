package types

import (
	"github.com/spacemeshos/go-scale"
)

// maxProofSize bounds the opaque proof payload accepted from a prover.
const maxProofSize = 1 << 20

// TxProof attests that applying the transaction TxID to the state with root PreRoot yields PostRoot.
// Data is produced by the prover and is not interpreted by the sequencer.
type TxProof struct {
	TxID     Hash32
	PreRoot  Hash32
	PostRoot Hash32
	Data     []byte
}

// EncodeScale implements scale codec interface.
func (p *TxProof) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByteArray(enc, p.TxID[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, p.PreRoot[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(enc, p.PostRoot[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, p.Data, maxProofSize)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (p *TxProof) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := scale.DecodeByteArray(dec, p.TxID[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.DecodeByteArray(dec, p.PreRoot[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.DecodeByteArray(dec, p.PostRoot[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, maxProofSize)
		if err != nil {
			return total, err
		}
		total += n
		p.Data = field
	}
	return total, nil
}
