package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/prover"
	"github.com/trollup/go-trollup/settlement/mocks"
)

func testResults(n int) []prover.Result {
	results := make([]prover.Result, n)
	for i := range results {
		tx := &types.SignedTx{Tx: types.Tx{Nonce: *uint256.NewInt(uint64(i + 1))}}
		tx.Sender[0] = 1
		results[i] = prover.Result{
			Tx: tx,
			Proof: &types.TxProof{
				TxID:     tx.ID(),
				PreRoot:  types.Hash32{byte(i)},
				PostRoot: types.Hash32{byte(i + 1)},
				Data:     []byte{byte(i)},
			},
		}
	}
	return results
}

func TestSubmitInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	layer := mocks.NewMockLayer(ctrl)
	results := testResults(3)

	var calls []any
	for _, rst := range results {
		calls = append(calls, layer.EXPECT().
			SubmitBlock(gomock.Any(), []*types.TxProof{rst.Proof}).
			Return(nil).Call)
	}
	gomock.InOrder(calls...)

	report := NewSubmitter(layer, WithLogger(zaptest.NewLogger(t))).Submit(context.Background(), results)
	require.Len(t, report.Outcomes, 3)
	require.Equal(t, 3, report.Submitted())
	require.Equal(t, 3, report.ProvenPrefix())
	for i, o := range report.Outcomes {
		require.Equal(t, results[i].Tx.ID(), o.TxID)
		require.Equal(t, Submitted, o.Status)
		require.NoError(t, o.Err)
	}
}

func TestSubmitSkipsFailedProofs(t *testing.T) {
	ctrl := gomock.NewController(t)
	layer := mocks.NewMockLayer(ctrl)
	results := testResults(3)
	proofErr := errors.New("prover down")
	results[1].Proof = nil
	results[1].Err = proofErr

	gomock.InOrder(
		layer.EXPECT().SubmitBlock(gomock.Any(), []*types.TxProof{results[0].Proof}).Return(nil),
		layer.EXPECT().SubmitBlock(gomock.Any(), []*types.TxProof{results[2].Proof}).Return(nil),
	)

	report := NewSubmitter(layer).Submit(context.Background(), results)
	require.Equal(t, 2, report.Submitted())
	require.Equal(t, 1, report.ProvenPrefix())
	require.Equal(t, ProofFailed, report.Outcomes[1].Status)
	require.ErrorIs(t, report.Outcomes[1].Err, proofErr)
	require.Equal(t, Submitted, report.Outcomes[2].Status)
}

func TestSubmitContinuesAfterRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	layer := mocks.NewMockLayer(ctrl)
	results := testResults(3)
	rejected := errors.New("rejected")

	gomock.InOrder(
		layer.EXPECT().SubmitBlock(gomock.Any(), gomock.Any()).Return(rejected),
		layer.EXPECT().SubmitBlock(gomock.Any(), gomock.Any()).Return(nil),
		layer.EXPECT().SubmitBlock(gomock.Any(), gomock.Any()).Return(nil),
	)

	report := NewSubmitter(layer).Submit(context.Background(), results)
	require.Equal(t, 2, report.Submitted())
	require.Equal(t, 0, report.ProvenPrefix())
	require.Equal(t, SubmitFailed, report.Outcomes[0].Status)
	require.ErrorIs(t, report.Outcomes[0].Err, rejected)
}

func TestSubmitCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	layer := mocks.NewMockLayer(ctrl)
	results := testResults(3)

	ctx, cancel := context.WithCancel(context.Background())
	layer.EXPECT().SubmitBlock(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, []*types.TxProof) error {
			cancel()
			return nil
		})

	report := NewSubmitter(layer).Submit(ctx, results)
	require.Equal(t, 1, report.Submitted())
	require.Equal(t, 1, report.ProvenPrefix())
	for _, o := range report.Outcomes[1:] {
		require.Equal(t, SubmitFailed, o.Status)
		require.ErrorIs(t, o.Err, context.Canceled)
	}
}

func TestSubmitEmpty(t *testing.T) {
	report := NewSubmitter(mocks.NewMockLayer(gomock.NewController(t))).Submit(context.Background(), nil)
	require.Empty(t, report.Outcomes)
	require.Zero(t, report.ProvenPrefix())
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "submitted", Submitted.String())
	require.Equal(t, "proof_failed", ProofFailed.String())
	require.Equal(t, "submit_failed", SubmitFailed.String())
	require.Equal(t, "unknown", Status(9).String())
}
