package api

import (
	"github.com/trollup/go-trollup/sequencer"
	"github.com/trollup/go-trollup/state"
)

//go:generate mockgen -typed -package=mocks -destination=./mocks/mocks.go -source=./interface.go

type sequencerView interface {
	Current() *state.Snapshot
	Status() sequencer.Status
}
