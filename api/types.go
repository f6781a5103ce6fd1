package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/sequencer"
)

// TransactionRequest is the body of POST /v1/transactions. Amounts are decimal strings.
type TransactionRequest struct {
	Kind      types.TxKind    `json:"kind"`
	Sender    types.PublicKey `json:"sender"`
	Recipient types.PublicKey `json:"recipient"`
	Nonce     string          `json:"nonce"`
	Value     string          `json:"value"`
	Signature types.Signature `json:"signature"`
}

// NewTransactionRequest converts a signed transaction to its JSON form.
func NewTransactionRequest(tx *types.SignedTx) *TransactionRequest {
	return &TransactionRequest{
		Kind:      tx.Kind,
		Sender:    tx.Sender,
		Recipient: tx.Recipient,
		Nonce:     tx.Nonce.Dec(),
		Value:     tx.Value.Dec(),
		Signature: tx.Signature,
	}
}

// ToTx parses the request.
func (r *TransactionRequest) ToTx() (*types.SignedTx, error) {
	tx := &types.SignedTx{
		Tx: types.Tx{
			Kind:      r.Kind,
			Sender:    r.Sender,
			Recipient: r.Recipient,
		},
		Signature: r.Signature,
	}
	if err := parseAmount(&tx.Nonce, "nonce", r.Nonce); err != nil {
		return nil, err
	}
	if err := parseAmount(&tx.Value, "value", r.Value); err != nil {
		return nil, err
	}
	return tx, nil
}

func parseAmount(dst *uint256.Int, name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	if err := dst.SetFromDecimal(value); err != nil {
		return fmt.Errorf("parse %s %q: %w", name, value, err)
	}
	return nil
}

// TransactionResponse acknowledges a queued transaction. Admission happens later.
type TransactionResponse struct {
	ID types.Hash32 `json:"id"`
}

// AccountResponse is the answer to GET /v1/accounts/{address}.
type AccountResponse struct {
	Address types.Address `json:"address"`
	Balance string        `json:"balance"`
	Nonce   string        `json:"nonce"`
}

// StatusResponse is the answer to GET /v1/status.
type StatusResponse struct {
	Phase         sequencer.Phase `json:"phase"`
	Pending       int             `json:"pending"`
	AppliedRoot   types.Hash32    `json:"applied_root"`
	ProvenRoot    types.Hash32    `json:"proven_root"`
	Applied       uint64          `json:"applied"`
	Proven        uint64          `json:"proven"`
	Unproven      uint64          `json:"unproven"`
	Diverged      bool            `json:"diverged"`
	Batches       uint64          `json:"batches"`
	LastBatch     *time.Time      `json:"last_batch,omitempty"`
	LastBatchTook string          `json:"last_batch_took,omitempty"`
}

func newStatusResponse(status sequencer.Status) *StatusResponse {
	rst := &StatusResponse{
		Phase:       status.Phase,
		Pending:     status.Pending,
		AppliedRoot: status.AppliedRoot,
		ProvenRoot:  status.ProvenRoot,
		Applied:     status.Applied,
		Proven:      status.Proven,
		Unproven:    status.Unproven,
		Diverged:    status.Diverged,
		Batches:     status.Batches,
	}
	if !status.LastBatch.IsZero() {
		rst.LastBatch = &status.LastBatch
		rst.LastBatchTook = status.LastBatchTook.String()
	}
	return rst
}

// ErrorResponse is returned with every non 2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

var errQueueFull = errors.New("intake queue is full")
