package prover

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/trollup/go-trollup/codec"
	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/httpclient"
	"github.com/trollup/go-trollup/state"
)

// WitnessAccount is an account as seen by the prover, with its inclusion proof when the account exists.
type WitnessAccount struct {
	Address types.Address  `json:"address"`
	Balance string         `json:"balance"`
	Nonce   string         `json:"nonce"`
	Index   *uint64        `json:"index,omitempty"`
	Nodes   []types.Hash32 `json:"nodes,omitempty"`
}

// ProveRequest is the body of POST /v1/prove.
type ProveRequest struct {
	TxID     types.Hash32     `json:"tx_id"`
	Tx       []byte           `json:"tx"`
	PreRoot  types.Hash32     `json:"pre_root"`
	PostRoot types.Hash32     `json:"post_root"`
	Pre      []WitnessAccount `json:"pre"`
	Post     []WitnessAccount `json:"post"`
}

// ProveResponse is the answer to ProveRequest.
type ProveResponse struct {
	Proof []byte `json:"proof"`
}

// ClientOpt changes Client.
type ClientOpt func(*Client)

// WithClientLogger sets the logger.
func WithClientLogger(logger *zap.Logger) ClientOpt {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client talks to a remote proving service over HTTP.
type Client struct {
	logger  *zap.Logger
	baseURL *url.URL
	client  *retryablehttp.Client
}

// NewClient creates a client for cfg.Endpoint.
func NewClient(cfg Config, opts ...ClientOpt) (*Client, error) {
	baseURL, err := httpclient.ParseBaseURL(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	c := &Client{logger: zap.NewNop(), baseURL: baseURL}
	for _, opt := range opts {
		opt(c)
	}
	c.client = httpclient.New(httpclient.Config{
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	}, c.logger)
	c.logger.Info("created prover client",
		zap.Stringer("url", baseURL),
		zap.Int("max retries", cfg.MaxRetries),
		zap.Duration("retry delay", cfg.RetryDelay),
	)
	return c, nil
}

func witness(snap *state.Snapshot, addrs ...types.Address) ([]WitnessAccount, error) {
	rst := make([]WitnessAccount, 0, len(addrs))
	for _, addr := range addrs {
		acc := snap.Get(addr)
		wa := WitnessAccount{
			Address: addr,
			Balance: acc.Balance.Dec(),
			Nonce:   acc.Nonce.Dec(),
		}
		proof, err := snap.Prove(addr)
		switch {
		case errors.Is(err, state.ErrAccountNotFound):
		case err != nil:
			return nil, fmt.Errorf("prove account %s: %w", addr, err)
		default:
			wa.Index = &proof.Index
			wa.Nodes = proof.Nodes
		}
		rst = append(rst, wa)
	}
	return rst, nil
}

// Prove implements Prover.
func (c *Client) Prove(ctx context.Context, tx *types.SignedTx, pre, post *state.Snapshot) (*types.TxProof, error) {
	sender, recipient := tx.Sender.Address(), tx.Recipient.Address()
	encoded, err := codec.Encode(tx)
	if err != nil {
		return nil, err
	}
	req := ProveRequest{
		TxID:     tx.ID(),
		Tx:       encoded,
		PreRoot:  pre.Root(),
		PostRoot: post.Root(),
	}
	if req.Pre, err = witness(pre, sender, recipient); err != nil {
		return nil, err
	}
	if req.Post, err = witness(post, sender, recipient); err != nil {
		return nil, err
	}
	var res ProveResponse
	err = httpclient.Do(ctx, c.client, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.baseURL.JoinPath("/v1/prove").String(),
		Body:   &req,
		Result: &res,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Proof) == 0 {
		return nil, errors.New("empty proof in response")
	}
	return &types.TxProof{
		TxID:     req.TxID,
		PreRoot:  req.PreRoot,
		PostRoot: req.PostRoot,
		Data:     res.Proof,
	}, nil
}
