package sequencer

import (
	"fmt"
	"time"

	"github.com/trollup/go-trollup/common/types"
)

// Phase of the sequencer loop.
type Phase uint8

const (
	// AwaitingTx waits for the next transaction on the intake channel.
	AwaitingTx Phase = iota
	// Batching checks whether the mempool holds enough transactions and drains the valid ones.
	Batching
	// Transitioning applies the drained batch to the authoritative state.
	Transitioning
	// Proving waits for the proofs of every transaction in the batch.
	Proving
	// Submitting hands the proofs to the settlement layer.
	Submitting
)

func (p Phase) String() string {
	switch p {
	case AwaitingTx:
		return "awaiting_tx"
	case Batching:
		return "batching"
	case Transitioning:
		return "transitioning"
	case Proving:
		return "proving"
	case Submitting:
		return "submitting"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for candidate := AwaitingTx; candidate <= Submitting; candidate++ {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Status is a point in time view of the sequencer.
type Status struct {
	Phase Phase
	// Pending is the number of transactions waiting in the mempool.
	Pending int

	// AppliedRoot is the root of the authoritative state.
	AppliedRoot types.Hash32
	// ProvenRoot is the root after the longest prefix of applied transactions that is settled.
	ProvenRoot types.Hash32
	Applied    uint64
	Proven     uint64
	// Unproven is the number of applied transactions that are not covered by ProvenRoot.
	Unproven uint64
	// Diverged is set once a transaction was applied but never settled.
	// ProvenRoot does not move after that.
	Diverged bool

	Batches       uint64
	LastBatch     time.Time
	LastBatchTook time.Duration
}
