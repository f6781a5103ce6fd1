package vm

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/signing"
	"github.com/trollup/go-trollup/state"
	"github.com/trollup/go-trollup/vm/mocks"
)

type tester struct {
	*VM
	a, b *signing.EdSigner
}

func newTester(tb testing.TB) *tester {
	verifier, err := signing.NewEdVerifier()
	require.NoError(tb, err)
	a, err := signing.NewEdSigner()
	require.NoError(tb, err)
	b, err := signing.NewEdSigner()
	require.NoError(tb, err)
	return &tester{
		VM: New(verifier, WithLogger(zaptest.NewLogger(tb))),
		a:  a,
		b:  b,
	}
}

func transfer(from, to *signing.EdSigner, nonce, value uint64) *types.SignedTx {
	return from.SignTx(types.Tx{
		Kind:      types.Transfer,
		Recipient: to.PublicKey(),
		Nonce:     *uint256.NewInt(nonce),
		Value:     *uint256.NewInt(value),
	})
}

func funded(signer *signing.EdSigner, balance, nonce uint64) types.Account {
	return types.Account{
		Address: signer.Address(),
		Balance: *uint256.NewInt(balance),
		Nonce:   *uint256.NewInt(nonce),
	}
}

func TestValidate(t *testing.T) {
	tt := newTester(t)
	s0 := state.NewSnapshot(funded(tt.a, 100, 0))

	require.NoError(t, tt.Validate(s0, transfer(tt.a, tt.b, 1, 40)))
	require.NoError(t, tt.Validate(s0, transfer(tt.a, tt.b, 5, 100)), "nonces may skip ahead")

	t.Run("self transfer", func(t *testing.T) {
		require.ErrorIs(t, tt.Validate(s0, transfer(tt.a, tt.a, 1, 1)), ErrSelfTransfer)
	})
	t.Run("insufficient balance", func(t *testing.T) {
		require.ErrorIs(t, tt.Validate(s0, transfer(tt.a, tt.b, 1, 101)), ErrInsufficientBalance)
		require.ErrorIs(t, tt.Validate(s0, transfer(tt.b, tt.a, 1, 1)), ErrInsufficientBalance)
	})
	t.Run("nonce too low", func(t *testing.T) {
		s1 := s0.Update(funded(tt.a, 100, 3))
		require.ErrorIs(t, tt.Validate(s1, transfer(tt.a, tt.b, 3, 1)), ErrNonceTooLow)
		require.ErrorIs(t, tt.Validate(s1, transfer(tt.a, tt.b, 2, 1)), ErrNonceTooLow)
		require.ErrorIs(t, tt.Validate(s0, transfer(tt.a, tt.b, 0, 1)), ErrNonceTooLow)
	})
	t.Run("tampered", func(t *testing.T) {
		tx := transfer(tt.a, tt.b, 1, 40)
		tx.Value = *uint256.NewInt(41)
		require.ErrorIs(t, tt.Validate(s0, tx), ErrBadSignature)
	})
}

func TestValidateOrder(t *testing.T) {
	tt := newTester(t)
	verifier := mocks.NewMocksignatureVerifier(gomock.NewController(t))
	vm := New(verifier)
	// every rule fails for this transaction
	tx := transfer(tt.a, tt.a, 0, 1000)
	s0 := state.NewSnapshot(funded(tt.a, 100, 0))

	verifier.EXPECT().Verify(tx).Return(false)
	require.ErrorIs(t, vm.Validate(s0, tx), ErrBadSignature)

	verifier.EXPECT().Verify(gomock.Any()).Return(true).AnyTimes()
	require.ErrorIs(t, vm.Validate(s0, tx), ErrSelfTransfer)

	tx = transfer(tt.a, tt.b, 0, 1000)
	require.ErrorIs(t, vm.Validate(s0, tx), ErrInsufficientBalance)

	tx = transfer(tt.a, tt.b, 0, 10)
	require.ErrorIs(t, vm.Validate(s0, tx), ErrNonceTooLow)
}

func sum(snap *state.Snapshot, addrs ...types.Address) *uint256.Int {
	total := new(uint256.Int)
	for _, addr := range addrs {
		acc := snap.Get(addr)
		total.Add(total, &acc.Balance)
	}
	return total
}

func TestApply(t *testing.T) {
	tt := newTester(t)
	s0 := state.NewSnapshot(funded(tt.a, 100, 0))
	tx := transfer(tt.a, tt.b, 1, 40)
	require.NoError(t, tt.Validate(s0, tx))

	s1 := tt.Apply(s0, tx)
	require.Equal(t, funded(tt.a, 60, 1), s1.Get(tt.a.Address()))
	require.Equal(t, funded(tt.b, 40, 0), s1.Get(tt.b.Address()))
	require.Equal(t, sum(s0, tt.a.Address(), tt.b.Address()), sum(s1, tt.a.Address(), tt.b.Address()))

	// input snapshot untouched
	require.Equal(t, funded(tt.a, 100, 0), s0.Get(tt.a.Address()))
	untouched := s0.Get(tt.b.Address())
	require.True(t, untouched.IsEmpty())

	t.Run("recipient nonce unchanged", func(t *testing.T) {
		s := state.NewSnapshot(funded(tt.a, 100, 0), funded(tt.b, 0, 9))
		next := tt.Apply(s, transfer(tt.a, tt.b, 1, 10))
		require.Equal(t, funded(tt.b, 10, 9), next.Get(tt.b.Address()))
	})
	t.Run("self transfer conserves value", func(t *testing.T) {
		next := tt.Apply(s0, transfer(tt.a, tt.a, 1, 10))
		require.Equal(t, funded(tt.a, 100, 1), next.Get(tt.a.Address()))
	})
}

func TestChain(t *testing.T) {
	tt := newTester(t)
	c, err := signing.NewEdSigner()
	require.NoError(t, err)
	s0 := state.NewSnapshot(funded(tt.a, 100, 0), funded(tt.b, 10, 0))
	txs := []*types.SignedTx{
		transfer(tt.a, tt.b, 1, 40),
		transfer(tt.b, c, 1, 50),
		transfer(tt.a, c, 2, 60),
	}
	chain := tt.Chain(s0, txs)
	require.Len(t, chain, len(txs)+1)
	require.Same(t, s0, chain[0])

	all := []types.Address{tt.a.Address(), tt.b.Address(), c.Address()}
	for i, tx := range txs {
		pre, post := chain[i], chain[i+1]
		require.Equal(t, sum(pre, all...), sum(post, all...))
		for _, addr := range all {
			if addr == tx.Sender.Address() || addr == tx.Recipient.Address() {
				continue
			}
			require.Equal(t, pre.Get(addr), post.Get(addr), "untouched account changed at %d", i)
		}
	}
	require.Equal(t, funded(tt.a, 0, 2), chain[3].Get(tt.a.Address()))
	require.Equal(t, funded(tt.b, 0, 1), chain[3].Get(tt.b.Address()))
	require.Equal(t, funded(c, 110, 0), chain[3].Get(c.Address()))

	require.Equal(t, []*state.Snapshot{s0}, tt.Chain(s0, nil))
}

func TestTouched(t *testing.T) {
	tt := newTester(t)
	txs := []*types.SignedTx{transfer(tt.a, tt.b, 1, 1), transfer(tt.b, tt.a, 1, 1)}
	require.Equal(t, []types.Address{tt.a.Address(), tt.b.Address()}, Touched(txs))
}
