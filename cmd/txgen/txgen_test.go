package main

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/trollup/go-trollup/api"
	"github.com/trollup/go-trollup/api/mocks"
	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/signing"
	"github.com/trollup/go-trollup/state"
)

func TestGenerateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	signer, err := generateKey(path, false)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := signing.NewEdSigner(signing.FromFile(path))
	require.NoError(t, err)
	require.Equal(t, signer.PublicKey(), loaded.PublicKey())

	_, err = generateKey(path, false)
	require.ErrorContains(t, err, "already exists")

	replaced, err := generateKey(path, true)
	require.NoError(t, err)
	require.NotEqual(t, signer.PublicKey(), replaced.PublicKey())
}

func newSequencerAPI(t *testing.T, snap *state.Snapshot) (*httptest.Server, chan *types.SignedTx) {
	view := mocks.NewMocksequencerView(gomock.NewController(t))
	view.EXPECT().Current().Return(snap).AnyTimes()
	intake := make(chan *types.SignedTx, 1)
	srv := httptest.NewServer(api.New(intake, view).Handler())
	t.Cleanup(srv.Close)
	return srv, intake
}

func TestTransfer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	sender, err := generateKey(path, false)
	require.NoError(t, err)
	recipient, err := signing.NewEdSigner()
	require.NoError(t, err)

	snap := state.NewSnapshot(types.Account{
		Address: sender.Address(),
		Balance: *uint256.NewInt(100),
		Nonce:   *uint256.NewInt(4),
	})
	verifier, err := signing.NewEdVerifier(signing.WithVerifierPrefix([]byte("devnet")))
	require.NoError(t, err)

	t.Run("next nonce from the sequencer", func(t *testing.T) {
		srv, intake := newSequencerAPI(t, snap)
		id, err := transfer(context.Background(), transferOptions{
			endpoint:  srv.URL,
			networkID: "devnet",
			keyPath:   path,
			recipient: recipient.PublicKey().String(),
			value:     "25",
		})
		require.NoError(t, err)

		tx := <-intake
		require.Equal(t, tx.ID(), id)
		require.Equal(t, uint64(5), tx.Nonce.Uint64())
		require.Equal(t, uint64(25), tx.Value.Uint64())
		require.Equal(t, recipient.PublicKey(), tx.Recipient)
		require.True(t, verifier.Verify(tx))
	})
	t.Run("explicit nonce", func(t *testing.T) {
		srv, intake := newSequencerAPI(t, snap)
		_, err := transfer(context.Background(), transferOptions{
			endpoint:  srv.URL,
			networkID: "devnet",
			keyPath:   path,
			recipient: recipient.PublicKey().String(),
			value:     "1",
			nonce:     "9",
		})
		require.NoError(t, err)
		tx := <-intake
		require.Equal(t, uint64(9), tx.Nonce.Uint64())
	})
	t.Run("invalid recipient", func(t *testing.T) {
		_, err := transfer(context.Background(), transferOptions{
			endpoint:  "127.0.0.1:1",
			keyPath:   path,
			recipient: "abc",
			value:     "1",
		})
		require.ErrorContains(t, err, "parse recipient")
	})
}
