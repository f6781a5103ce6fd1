package settlement

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/trollup/go-trollup/common/types"
)

var (
	// ErrEmptyBlock is returned for a block without proofs.
	ErrEmptyBlock = errors.New("empty block")
	// ErrRootMismatch is returned when a block does not start from the current contract root.
	ErrRootMismatch = errors.New("pre root does not match contract root")
)

// MemoryOpt changes Memory.
type MemoryOpt func(*Memory)

// WithVerifier checks every proof in a submitted block.
func WithVerifier(verify func(*types.TxProof) error) MemoryOpt {
	return func(m *Memory) {
		m.verify = verify
	}
}

// Memory is an in-process settlement contract used in standalone mode and tests.
// It accepts a block whose proofs form a chain starting at the current root.
type Memory struct {
	mu     sync.Mutex
	root   types.Hash32
	blocks [][]*types.TxProof
	verify func(*types.TxProof) error
}

// NewMemory creates a contract anchored at root.
func NewMemory(root types.Hash32, opts ...MemoryOpt) *Memory {
	m := &Memory{root: root}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CurrentRoot implements Layer.
func (m *Memory) CurrentRoot(ctx context.Context) (types.Hash32, error) {
	if err := ctx.Err(); err != nil {
		return types.Hash32{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root, nil
}

// SubmitBlock implements Layer.
func (m *Memory) SubmitBlock(ctx context.Context, proofs []*types.TxProof) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(proofs) == 0 {
		return ErrEmptyBlock
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	root := m.root
	for _, p := range proofs {
		if p.PreRoot != root {
			return fmt.Errorf("%w: tx %s: expected %s, got %s",
				ErrRootMismatch, p.TxID.ShortString(), root.ShortString(), p.PreRoot.ShortString())
		}
		if m.verify != nil {
			if err := m.verify(p); err != nil {
				return err
			}
		}
		root = p.PostRoot
	}
	m.root = root
	m.blocks = append(m.blocks, proofs)
	return nil
}

// Blocks returns the number of accepted blocks.
func (m *Memory) Blocks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blocks)
}
