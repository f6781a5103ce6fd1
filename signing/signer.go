package signing

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/trollup/go-trollup/common/types"
)

// PrivateKeySize is the size of an ed25519 private key (seed followed by the public key).
const PrivateKeySize = ed25519.PrivateKeySize

// PrivateKey is an ed25519 private key.
type PrivateKey = ed25519.PrivateKey

type edSignerOption struct {
	priv   PrivateKey
	prefix []byte
	rand   io.Reader
}

// EdSignerOptionFunc modifies EdSigner.
type EdSignerOptionFunc func(*edSignerOption) error

// WithPrefix sets the prefix prepended to every signed message. This is the network id.
func WithPrefix(prefix []byte) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		opt.prefix = prefix
		return nil
	}
}

// WithPrivateKey sets the private key used by EdSigner.
func WithPrivateKey(priv PrivateKey) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		if opt.priv != nil {
			return errors.New("invalid option WithPrivateKey: private key already set")
		}
		if len(priv) != PrivateKeySize {
			return errors.New("could not create EdSigner: invalid key length")
		}
		keyPair := ed25519.NewKeyFromSeed(priv[:ed25519.SeedSize])
		if !bytes.Equal(keyPair[ed25519.SeedSize:], priv[ed25519.SeedSize:]) {
			return errors.New("private and public do not match")
		}
		opt.priv = priv
		return nil
	}
}

// WithKeyFromRand generates the key from the given randomness source.
func WithKeyFromRand(rand io.Reader) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		opt.rand = rand
		return nil
	}
}

// FromFile loads a hex encoded private key from path.
func FromFile(path string) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("open key file %s: %w", path, err)
		}
		data = bytes.TrimSpace(data)
		if n := hex.DecodedLen(len(data)); n != PrivateKeySize {
			return fmt.Errorf("invalid key size %d/%d for %s", n, PrivateKeySize, filepath.Base(path))
		}
		dst := make([]byte, PrivateKeySize)
		if _, err := hex.Decode(dst, data); err != nil {
			return fmt.Errorf("decoding private key in %s: %w", filepath.Base(path), err)
		}
		return WithPrivateKey(dst)(opt)
	}
}

// EdSigner signs transactions with an ed25519 key.
type EdSigner struct {
	priv   PrivateKey
	prefix []byte
}

// NewEdSigner returns a signer. Without a key option a new key is generated.
func NewEdSigner(opts ...EdSignerOptionFunc) (*EdSigner, error) {
	cfg := &edSignerOption{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.priv == nil {
		_, priv, err := ed25519.GenerateKey(cfg.rand)
		if err != nil {
			return nil, fmt.Errorf("could not generate key pair: %w", err)
		}
		cfg.priv = priv
	}
	return &EdSigner{priv: cfg.priv, prefix: cfg.prefix}, nil
}

// Sign signs prefix||msg.
func (es *EdSigner) Sign(msg []byte) types.Signature {
	buf := make([]byte, 0, len(es.prefix)+len(msg))
	buf = append(buf, es.prefix...)
	buf = append(buf, msg...)
	var sig types.Signature
	copy(sig[:], ed25519.Sign(es.priv, buf))
	return sig
}

// SignTx fills the sender with the signer's key and returns the signed transaction.
func (es *EdSigner) SignTx(tx types.Tx) *types.SignedTx {
	tx.Sender = es.PublicKey()
	signed := &types.SignedTx{Tx: tx}
	signed.Signature = es.Sign(types.SigningBytes(nil, &signed.Tx))
	return signed
}

// PublicKey returns the public key of the signer.
func (es *EdSigner) PublicKey() types.PublicKey {
	var pub types.PublicKey
	copy(pub[:], es.priv[ed25519.SeedSize:])
	return pub
}

// Address of the account owned by this signer.
func (es *EdSigner) Address() types.Address {
	return es.PublicKey().Address()
}

// PrivateKey returns the private key.
func (es *EdSigner) PrivateKey() PrivateKey {
	return es.priv
}

// Prefix returns the network prefix.
func (es *EdSigner) Prefix() []byte {
	return es.prefix
}
