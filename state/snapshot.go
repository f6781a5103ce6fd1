// Package state holds the account state of the rollup as immutable snapshots.
package state

import (
	"slices"
	"sync"

	"github.com/trollup/go-trollup/common/types"
)

// maxDepth bounds the number of overlays a read may have to walk.
const maxDepth = 32

// Snapshot is an immutable mapping from address to account. Addresses that are not
// present read as the zero account.
//
// Each Update returns a new overlay on top of its receiver, so producing a chain of
// snapshots for a batch costs only the accounts each transaction touches. Once the
// overlay chain grows past maxDepth the new snapshot is collapsed into a single map.
// A Snapshot is safe for concurrent use.
type Snapshot struct {
	parent   *Snapshot
	accounts map[types.Address]types.Account
	depth    int

	commitOnce sync.Once
	commit     *commitment
}

// NewSnapshot creates a base snapshot holding accounts.
func NewSnapshot(accounts ...types.Account) *Snapshot {
	s := &Snapshot{accounts: make(map[types.Address]types.Account, len(accounts))}
	for _, acc := range accounts {
		s.accounts[acc.Address] = acc
	}
	return s
}

// Get returns the account at addr, or the zero account for an unknown address.
func (s *Snapshot) Get(addr types.Address) types.Account {
	for layer := s; layer != nil; layer = layer.parent {
		if acc, ok := layer.accounts[addr]; ok {
			return acc
		}
	}
	return types.Account{Address: addr}
}

// Update returns a snapshot in which the given accounts replace the ones at their
// addresses. The receiver is not modified.
func (s *Snapshot) Update(accounts ...types.Account) *Snapshot {
	next := &Snapshot{
		parent:   s,
		accounts: make(map[types.Address]types.Account, len(accounts)),
		depth:    s.depth + 1,
	}
	for _, acc := range accounts {
		next.accounts[acc.Address] = acc
	}
	if next.depth > maxDepth {
		return next.flatten()
	}
	return next
}

func (s *Snapshot) flatten() *Snapshot {
	var layers []*Snapshot
	for layer := s; layer != nil; layer = layer.parent {
		layers = append(layers, layer)
	}
	merged := make(map[types.Address]types.Account, len(layers[len(layers)-1].accounts))
	for i := len(layers) - 1; i >= 0; i-- {
		for addr, acc := range layers[i].accounts {
			merged[addr] = acc
		}
	}
	return &Snapshot{accounts: merged}
}

// Accounts returns all non-empty accounts ordered by address.
func (s *Snapshot) Accounts() []types.Account {
	seen := make(map[types.Address]struct{})
	var rst []types.Account
	for layer := s; layer != nil; layer = layer.parent {
		for addr, acc := range layer.accounts {
			if _, ok := seen[addr]; ok {
				continue
			}
			seen[addr] = struct{}{}
			if !acc.IsEmpty() {
				rst = append(rst, acc)
			}
		}
	}
	slices.SortFunc(rst, func(a, b types.Account) int {
		return a.Address.Compare(b.Address)
	})
	return rst
}

// Root returns the commitment to the snapshot. It is computed on first use.
func (s *Snapshot) Root() types.Hash32 {
	return s.committed().root
}

// committed returns the sorted accounts, their leaf hashes and the root, computed once and
// shared by Root and Prove.
func (s *Snapshot) committed() *commitment {
	s.commitOnce.Do(func() {
		s.commit = commitAccounts(s.Accounts())
	})
	return s.commit
}
