package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trollup/go-trollup/signing"
)

func keygenCmd() *cobra.Command {
	var force bool
	c := &cobra.Command{
		Use:   "keygen <path/to/key>",
		Short: "generate an ed25519 key and print its address",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			signer, err := generateKey(args[0], force)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "public key %s\naddress %s\n", signer.PublicKey(), signer.Address())
			return nil
		},
	}
	c.Flags().BoolVar(&force, "force", false, "overwrite an existing key file")
	return c
}

// generateKey writes a new hex encoded private key to path.
func generateKey(path string, force bool) (*signing.EdSigner, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("key file %s already exists", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	signer, err := signing.NewEdSigner()
	if err != nil {
		return nil, fmt.Errorf("create key: %w", err)
	}
	dst := make([]byte, hex.EncodedLen(len(signer.PrivateKey())))
	hex.Encode(dst, signer.PrivateKey())
	if err := atomic.WriteFile(path, bytes.NewReader(dst)); err != nil {
		return nil, fmt.Errorf("write key file %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return nil, fmt.Errorf("chmod key file %s: %w", path, err)
	}
	logger.Info("created key", zap.String("path", path), zap.Stringer("address", signer.Address()))
	return signer, nil
}
