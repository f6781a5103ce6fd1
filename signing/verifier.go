package signing

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/trollup/go-trollup/common/types"
)

const defaultCacheSize = 1 << 14

type verifierOption struct {
	prefix    []byte
	cacheSize int
}

// VerifierOptionFunc modifies EdVerifier.
type VerifierOptionFunc func(*verifierOption)

// WithVerifierPrefix sets the network prefix expected in front of signed messages.
func WithVerifierPrefix(prefix []byte) VerifierOptionFunc {
	return func(opts *verifierOption) {
		opts.prefix = prefix
	}
}

// WithCacheSize sets the number of verified transactions remembered by the verifier.
func WithCacheSize(size int) VerifierOptionFunc {
	return func(opts *verifierOption) {
		opts.cacheSize = size
	}
}

// EdVerifier checks transaction signatures against the sender key.
// Transactions that verified once are remembered by id, so a transaction that is
// validated again in a later batch is not verified twice.
type EdVerifier struct {
	prefix   []byte
	verified *lru.Cache[types.Hash32, struct{}]
}

// NewEdVerifier creates a verifier.
func NewEdVerifier(opts ...VerifierOptionFunc) (*EdVerifier, error) {
	cfg := &verifierOption{cacheSize: defaultCacheSize}
	for _, opt := range opts {
		opt(cfg)
	}
	cache, err := lru.New[types.Hash32, struct{}](cfg.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create signature cache: %w", err)
	}
	return &EdVerifier{prefix: cfg.prefix, verified: cache}, nil
}

// Verify reports whether tx carries a valid signature by its sender.
func (ev *EdVerifier) Verify(tx *types.SignedTx) bool {
	id := tx.ID()
	if ev.verified.Contains(id) {
		return true
	}
	msg := types.SigningBytes(ev.prefix, &tx.Tx)
	if !ed25519.Verify(tx.Sender[:], msg, tx.Signature[:]) {
		return false
	}
	ev.verified.Add(id, struct{}{})
	return true
}
