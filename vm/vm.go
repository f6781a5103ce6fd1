// Package vm implements the admission rules and the state transition of the rollup.
package vm

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/log"
	"github.com/trollup/go-trollup/state"
)

var (
	// ErrBadSignature is returned when the signature does not verify against the sender key.
	ErrBadSignature = errors.New("bad signature")
	// ErrSelfTransfer is returned when sender and recipient are the same key.
	ErrSelfTransfer = errors.New("self transfer")
	// ErrInsufficientBalance is returned when the sender balance is below the transferred value.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrNonceTooLow is returned when the transaction nonce is not above the sender's last nonce.
	ErrNonceTooLow = errors.New("nonce too low")
)

// Opt is for changing VM during initialization.
type Opt func(*VM)

// WithLogger sets logger for VM.
func WithLogger(logger *zap.Logger) Opt {
	return func(vm *VM) {
		vm.logger = logger
	}
}

// VM validates transactions and applies them to snapshots.
type VM struct {
	logger   *zap.Logger
	verifier signatureVerifier
}

// New returns VM instance.
func New(verifier signatureVerifier, opts ...Opt) *VM {
	vm := &VM{
		logger:   zap.NewNop(),
		verifier: verifier,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Validate checks tx against snap. The checks run in a fixed order and the first failing
// one is reported: signature, self transfer, balance, nonce.
func (vm *VM) Validate(snap *state.Snapshot, tx *types.SignedTx) error {
	err := vm.validate(snap, tx)
	updateMetrics(err)
	if err != nil {
		vm.logger.Debug("transaction rejected",
			log.ZShortStringer("tx_id", tx.ID()),
			zap.Error(err),
		)
	}
	return err
}

func (vm *VM) validate(snap *state.Snapshot, tx *types.SignedTx) error {
	if !vm.verifier.Verify(tx) {
		return fmt.Errorf("%w: sender %s", ErrBadSignature, tx.Sender)
	}
	if tx.Sender == tx.Recipient {
		return fmt.Errorf("%w: %s", ErrSelfTransfer, tx.Sender)
	}
	sender := snap.Get(tx.Sender.Address())
	if sender.Balance.Lt(&tx.Value) {
		return fmt.Errorf("%w: balance %s value %s", ErrInsufficientBalance, sender.Balance.Dec(), tx.Value.Dec())
	}
	if !sender.Nonce.Lt(&tx.Nonce) {
		return fmt.Errorf("%w: account nonce %s tx nonce %s", ErrNonceTooLow, sender.Nonce.Dec(), tx.Nonce.Dec())
	}
	return nil
}

func updateMetrics(err error) {
	switch {
	case err == nil:
		admittedCnt.Inc()
	case errors.Is(err, ErrBadSignature):
		badSignatureCnt.Inc()
	case errors.Is(err, ErrSelfTransfer):
		selfTransferCnt.Inc()
	case errors.Is(err, ErrInsufficientBalance):
		insufficientFundsCnt.Inc()
	case errors.Is(err, ErrNonceTooLow):
		nonceTooLowCnt.Inc()
	}
}

// Apply moves tx.Value from sender to recipient and records tx.Nonce as the sender's nonce.
// The recipient's nonce is unchanged. Apply does not validate tx; callers run Validate first.
func (vm *VM) Apply(snap *state.Snapshot, tx *types.SignedTx) *state.Snapshot {
	sender := snap.Get(tx.Sender.Address())
	sender.Balance.Sub(&sender.Balance, &tx.Value)
	sender.Nonce = tx.Nonce

	recipient := snap.Get(tx.Recipient.Address())
	if recipient.Address == sender.Address {
		recipient = sender
	}
	recipient.Balance.Add(&recipient.Balance, &tx.Value)
	appliedCnt.Inc()
	if recipient.Address == sender.Address {
		return snap.Update(recipient)
	}
	return snap.Update(sender, recipient)
}

// Chain applies txs in order starting from snap and returns every intermediate snapshot,
// [S0, S1, ..., Sn] where S0 is snap and Si is the result of applying txs[i-1] to Si-1.
func (vm *VM) Chain(snap *state.Snapshot, txs []*types.SignedTx) []*state.Snapshot {
	chain := make([]*state.Snapshot, 0, len(txs)+1)
	chain = append(chain, snap)
	for _, tx := range txs {
		snap = vm.Apply(snap, tx)
		chain = append(chain, snap)
	}
	return chain
}

// Touched returns the addresses modified by txs without duplicates, in first-seen order.
func Touched(txs []*types.SignedTx) []types.Address {
	seen := make(map[types.Address]struct{}, 2*len(txs))
	var rst []types.Address
	for _, tx := range txs {
		for _, addr := range []types.Address{tx.Sender.Address(), tx.Recipient.Address()} {
			if _, ok := seen[addr]; ok {
				continue
			}
			seen[addr] = struct{}{}
			rst = append(rst, addr)
		}
	}
	return rst
}
