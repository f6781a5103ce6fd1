package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/spacemeshos/go-scale"
)

func encodeHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func shortHex(b []byte) string {
	if len(b) > 5 {
		b = b[:5]
	}
	return hex.EncodeToString(b)
}

// decodeHex fills dst from a hex string with an optional 0x prefix. The length must match exactly.
func decodeHex(dst []byte, src string) error {
	src = strings.TrimPrefix(strings.TrimPrefix(src, "0x"), "0X")
	if hex.DecodedLen(len(src)) != len(dst) {
		return fmt.Errorf("%w: expected %d bytes, got %d hex characters", ErrInvalidLength, len(dst), len(src))
	}
	if _, err := hex.Decode(dst, []byte(src)); err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}
	return nil
}

func encodeUint256(e *scale.Encoder, v *uint256.Int) (int, error) {
	b := v.Bytes32()
	return scale.EncodeByteArray(e, b[:])
}

func decodeUint256(d *scale.Decoder, v *uint256.Int) (int, error) {
	var b [32]byte
	n, err := scale.DecodeByteArray(d, b[:])
	if err != nil {
		return n, err
	}
	v.SetBytes32(b[:])
	return n, nil
}
