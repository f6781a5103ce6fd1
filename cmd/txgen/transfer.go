package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trollup/go-trollup/api"
	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/httpclient"
	"github.com/trollup/go-trollup/signing"
)

type transferOptions struct {
	endpoint  string
	networkID string
	keyPath   string
	recipient string
	value     string
	nonce     string
	retries   int
}

func transferCmd() *cobra.Command {
	opts := transferOptions{}
	c := &cobra.Command{
		Use:   "transfer",
		Short: "sign a transfer and submit it to the sequencer",
		RunE: func(c *cobra.Command, args []string) error {
			id, err := transfer(c.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), id)
			return nil
		},
	}
	c.Flags().StringVar(&opts.endpoint, "api", "127.0.0.1:38171", "address of the sequencer api")
	c.Flags().StringVar(&opts.networkID, "network-id", "devnet", "network identifier used for signing")
	c.Flags().StringVar(&opts.keyPath, "key", "", "path to the sender key")
	c.Flags().StringVar(&opts.recipient, "to", "", "hex public key of the recipient")
	c.Flags().StringVar(&opts.value, "value", "", "decimal amount to transfer")
	c.Flags().StringVar(&opts.nonce, "nonce", "", "decimal nonce, defaults to the next nonce of the sender")
	c.Flags().IntVar(&opts.retries, "retries", 3, "retries of failed requests")
	c.MarkFlagRequired("key")
	c.MarkFlagRequired("to")
	c.MarkFlagRequired("value")
	return c
}

func transfer(ctx context.Context, opts transferOptions) (types.Hash32, error) {
	signer, err := signing.NewEdSigner(
		signing.FromFile(opts.keyPath),
		signing.WithPrefix([]byte(opts.networkID)),
	)
	if err != nil {
		return types.Hash32{}, err
	}
	tx := types.Tx{Kind: types.Transfer}
	if err := tx.Recipient.UnmarshalText([]byte(opts.recipient)); err != nil {
		return types.Hash32{}, fmt.Errorf("parse recipient: %w", err)
	}
	if err := tx.Value.SetFromDecimal(opts.value); err != nil {
		return types.Hash32{}, fmt.Errorf("parse value %q: %w", opts.value, err)
	}

	base, err := httpclient.ParseBaseURL(opts.endpoint)
	if err != nil {
		return types.Hash32{}, err
	}
	client := httpclient.New(httpclient.Config{
		MaxRetries: opts.retries,
		RetryDelay: 500 * time.Millisecond,
		Timeout:    10 * time.Second,
	}, logger)

	if opts.nonce != "" {
		if err := tx.Nonce.SetFromDecimal(opts.nonce); err != nil {
			return types.Hash32{}, fmt.Errorf("parse nonce %q: %w", opts.nonce, err)
		}
	} else {
		var acc api.AccountResponse
		err := httpclient.Do(ctx, client, httpclient.Request{
			Method: http.MethodGet,
			URL:    base.JoinPath("v1", "accounts", signer.Address().String()).String(),
			Result: &acc,
		})
		if err != nil {
			return types.Hash32{}, fmt.Errorf("get sender account: %w", err)
		}
		if err := tx.Nonce.SetFromDecimal(acc.Nonce); err != nil {
			return types.Hash32{}, fmt.Errorf("parse account nonce %q: %w", acc.Nonce, err)
		}
		tx.Nonce.Add(&tx.Nonce, uint256.NewInt(1))
	}

	signed := signer.SignTx(tx)
	var res api.TransactionResponse
	err = httpclient.Do(ctx, client, httpclient.Request{
		Method: http.MethodPost,
		URL:    base.JoinPath("v1", "transactions").String(),
		Body:   api.NewTransactionRequest(signed),
		Result: &res,
	})
	if err != nil {
		return types.Hash32{}, fmt.Errorf("submit transaction: %w", err)
	}
	logger.Info("submitted transfer",
		zap.Stringer("id", res.ID),
		zap.Stringer("sender", signer.Address()),
		zap.String("nonce", tx.Nonce.Dec()),
	)
	return res.ID, nil
}
