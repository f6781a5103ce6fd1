package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/trollup/go-trollup/common/types"
)

func TestStoreCommitAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state")
	store, err := Open(path, WithStoreLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	snap, meta, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, meta)
	require.Equal(t, types.EmptyRoot, snap.Root())

	genesis := NewSnapshot(account(1, 100, 0))
	require.NoError(t, store.Commit(genesis, []types.Address{addr(1)}, &Meta{AppliedRoot: genesis.Root()}))

	next := genesis.Update(account(1, 60, 1), account(2, 40, 0))
	expected := &Meta{
		AppliedRoot: next.Root(),
		ProvenRoot:  genesis.Root(),
		Applied:     1,
		Batches:     1,
		Diverged:    true,
	}
	require.NoError(t, store.Commit(next, []types.Address{addr(1), addr(2)}, expected))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })
	loaded, meta, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, expected, meta)
	require.Equal(t, next.Root(), loaded.Root())
	require.Equal(t, next.Accounts(), loaded.Accounts())
}

func TestStoreDetectsRootMismatch(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	snap := NewSnapshot(account(1, 100, 0))
	require.NoError(t, store.Commit(snap, []types.Address{addr(1)}, &Meta{AppliedRoot: types.Hash32{1}}))
	_, _, err = store.Load()
	require.ErrorContains(t, err, "does not match")
}

func TestStoreSaveMeta(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	require.NoError(t, store.SaveMeta(&Meta{Proven: 3}))
	_, meta, err := store.Load()
	require.NoError(t, err)
	require.EqualValues(t, 3, meta.Proven)
}
