package vm

import "github.com/trollup/go-trollup/common/types"

//go:generate mockgen -typed -package=mocks -destination=./mocks/mocks.go -source=./interface.go

type signatureVerifier interface {
	Verify(*types.SignedTx) bool
}
