package prover

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/trollup/go-trollup/codec"
	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/httpclient"
	"github.com/trollup/go-trollup/state"
)

func TestClientProve(t *testing.T) {
	tx := &types.SignedTx{Tx: types.Tx{Nonce: *uint256.NewInt(1), Value: *uint256.NewInt(40)}}
	tx.Sender[0] = 1
	tx.Recipient[0] = 2
	sender, recipient := tx.Sender.Address(), tx.Recipient.Address()
	pre := state.NewSnapshot(types.Account{Address: sender, Balance: *uint256.NewInt(100)})
	post := pre.Update(
		types.Account{Address: sender, Balance: *uint256.NewInt(60), Nonce: *uint256.NewInt(1)},
		types.Account{Address: recipient, Balance: *uint256.NewInt(40)},
	)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		require.Equal(t, "/v1/prove", r.URL.Path)
		var req ProveRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var decoded types.SignedTx
		require.NoError(t, codec.Decode(req.Tx, &decoded))
		require.Equal(t, tx.ID(), decoded.ID())
		require.Equal(t, pre.Root(), req.PreRoot)
		require.Equal(t, post.Root(), req.PostRoot)

		require.Len(t, req.Pre, 2)
		require.Equal(t, "100", req.Pre[0].Balance)
		require.NotNil(t, req.Pre[0].Index)
		require.Nil(t, req.Pre[1].Index, "recipient does not exist before the transfer")
		require.Equal(t, "40", req.Post[1].Balance)

		proof := state.AccountProof{
			Account: post.Get(recipient),
			Index:   *req.Post[1].Index,
			Nodes:   req.Post[1].Nodes,
		}
		ok, err := proof.Verify(req.PostRoot)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, json.NewEncoder(w).Encode(ProveResponse{Proof: []byte{1, 2, 3}}))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(
		Config{Endpoint: srv.URL, MaxRetries: 2, RetryDelay: time.Millisecond},
		WithClientLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)
	proof, err := client.Prove(context.Background(), tx, pre, post)
	require.NoError(t, err)
	require.Equal(t, &types.TxProof{
		TxID:     tx.ID(),
		PreRoot:  pre.Root(),
		PostRoot: post.Root(),
		Data:     []byte{1, 2, 3},
	}, proof)
	require.EqualValues(t, 2, calls.Load())
}

func TestClientRejected(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad witness", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{Endpoint: srv.URL, MaxRetries: 3, RetryDelay: time.Millisecond})
	require.NoError(t, err)
	chain, txs := genBatch(1)
	_, err = client.Prove(context.Background(), txs[0], chain[0], chain[1])
	require.ErrorIs(t, err, httpclient.ErrInvalidRequest)
	require.EqualValues(t, 1, calls.Load())
}
