package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spacemeshos/merkle-tree"

	"github.com/trollup/go-trollup/codec"
	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/hash"
)

// ErrAccountNotFound is returned when an inclusion proof is requested for an empty account.
var ErrAccountNotFound = errors.New("account not found")

func treeHash(buf, lChild, rChild []byte) []byte {
	hasher := hash.GetHasher()
	defer hash.PutHasher(hasher)
	hasher.Write(lChild)
	hasher.Write(rChild)
	return hasher.Sum(buf[:0])
}

func leaf(acc *types.Account) types.Hash32 {
	return types.CalcHash32(codec.MustEncode(acc))
}

func buildTree(leaves [][]byte, prove map[uint64]bool) (*merkle.Tree, error) {
	builder := merkle.NewTreeBuilder().WithHashFunc(treeHash)
	if prove != nil {
		builder = builder.WithLeavesToProve(prove)
	}
	tree, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build tree: %w", err)
	}
	for _, l := range leaves {
		if err := tree.AddLeaf(l); err != nil {
			return nil, fmt.Errorf("add leaf: %w", err)
		}
	}
	return tree, nil
}

// commitment is the data a snapshot commits to. The root is recomputed in full for every
// snapshot, so a batch of n transactions over N accounts hashes O(n*N) nodes.
// TODO: update the tree incrementally from the parent snapshot once states grow past a few
// hundred thousand accounts.
type commitment struct {
	accounts []types.Account
	leaves   [][]byte
	root     types.Hash32
}

// commitAccounts hashes accounts, which must be sorted by address and exclude empty accounts.
// The empty state commits to EmptyRoot.
func commitAccounts(accounts []types.Account) *commitment {
	c := &commitment{accounts: accounts, root: types.EmptyRoot}
	if len(accounts) == 0 {
		return c
	}
	c.leaves = make([][]byte, len(accounts))
	for i := range accounts {
		l := leaf(&accounts[i])
		c.leaves[i] = l[:]
	}
	tree, err := buildTree(c.leaves, nil)
	if err != nil {
		// tree construction fails only on invalid builder options
		panic(err)
	}
	c.root = types.Hash32(tree.Root())
	return c
}

// AccountProof shows that Account is committed to by a state root.
type AccountProof struct {
	Account types.Account  `json:"-"`
	Index   uint64         `json:"index"`
	Nodes   []types.Hash32 `json:"nodes"`
}

// Prove builds an inclusion proof of the account at addr. Leaf hashes are shared with Root,
// only the inner nodes are hashed again.
func (s *Snapshot) Prove(addr types.Address) (*AccountProof, error) {
	c := s.committed()
	idx, found := slices.BinarySearchFunc(c.accounts, addr, func(acc types.Account, addr types.Address) int {
		return acc.Address.Compare(addr)
	})
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
	}
	tree, err := buildTree(c.leaves, map[uint64]bool{uint64(idx): true})
	if err != nil {
		return nil, err
	}
	nodes := tree.Proof()
	proof := &AccountProof{
		Account: c.accounts[idx],
		Index:   uint64(idx),
		Nodes:   make([]types.Hash32, len(nodes)),
	}
	for i, node := range nodes {
		proof.Nodes[i] = types.Hash32(node)
	}
	return proof, nil
}

// Verify checks the proof against root.
func (p *AccountProof) Verify(root types.Hash32) (bool, error) {
	l := leaf(&p.Account)
	nodes := make([][]byte, len(p.Nodes))
	for i := range p.Nodes {
		nodes[i] = p.Nodes[i].Bytes()
	}
	return merkle.ValidatePartialTree([]uint64{p.Index}, [][]byte{l[:]}, nodes, root[:], treeHash)
}
