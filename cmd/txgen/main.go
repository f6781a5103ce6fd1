// txgen creates keys and submits signed transactions to a running sequencer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trollup/go-trollup/log"
)

var (
	logLevel string
	logger   = zap.NewNop()
)

func init() {
	cmd.PersistentFlags().StringVar(&logLevel, "level", "warn", "logging level")
	cmd.AddCommand(keygenCmd(), transferCmd())
}

var cmd = &cobra.Command{
	Use:   "txgen",
	Short: "generate keys and transactions for a trollup sequencer",
	PersistentPreRunE: func(*cobra.Command, []string) error {
		lvl, err := zap.ParseAtomicLevel(logLevel)
		if err != nil {
			return err
		}
		logger = log.NewWithLevel("txgen", lvl)
		return nil
	},
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
