package settlement

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/httpclient"
)

// ErrNoContract is returned when the contract address is not configured.
var ErrNoContract = errors.New("settlement contract is not configured")

// RootResponse is the answer to GET /v1/contracts/{contract}/root.
type RootResponse struct {
	Root types.Hash32 `json:"root"`
}

// BlockProof is a single proof in a submitted block.
type BlockProof struct {
	TxID     types.Hash32 `json:"tx_id"`
	PreRoot  types.Hash32 `json:"pre_root"`
	PostRoot types.Hash32 `json:"post_root"`
	Proof    []byte       `json:"proof"`
}

// BlockRequest is the body of POST /v1/contracts/{contract}/blocks.
type BlockRequest struct {
	Proofs []BlockProof `json:"proofs"`
}

// ClientOpt changes Client.
type ClientOpt func(*Client)

// WithClientLogger sets the logger.
func WithClientLogger(logger *zap.Logger) ClientOpt {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client talks to the settlement gateway over HTTP.
// Root reads are retried. Block submissions are sent once, a failed submission is reported to the caller.
type Client struct {
	logger  *zap.Logger
	baseURL *url.URL
	token   string
	reader  *retryablehttp.Client
	sender  *retryablehttp.Client
}

// NewClient creates a client for the contract in cfg.
func NewClient(cfg Config, opts ...ClientOpt) (*Client, error) {
	if cfg.Contract == "" {
		return nil, ErrNoContract
	}
	endpoint, err := httpclient.ParseBaseURL(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	c := &Client{
		logger:  zap.NewNop(),
		baseURL: endpoint.JoinPath("v1", "contracts", cfg.Contract),
		token:   cfg.Token,
	}
	if c.token == "" {
		c.token = os.Getenv(TokenEnv)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reader = httpclient.New(httpclient.Config{
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Timeout:    cfg.Timeout,
	}, c.logger)
	c.sender = httpclient.New(httpclient.Config{Timeout: cfg.Timeout}, c.logger)
	c.logger.Info("created settlement client",
		zap.Stringer("url", c.baseURL),
		zap.Bool("authenticated", c.token != ""),
		zap.Int("max retries", cfg.MaxRetries),
	)
	return c, nil
}

// CurrentRoot implements Layer.
func (c *Client) CurrentRoot(ctx context.Context) (types.Hash32, error) {
	var res RootResponse
	err := httpclient.Do(ctx, c.reader, httpclient.Request{
		Method: http.MethodGet,
		URL:    c.baseURL.JoinPath("root").String(),
		Token:  c.token,
		Result: &res,
	})
	if err != nil {
		return types.Hash32{}, fmt.Errorf("get contract root: %w", err)
	}
	return res.Root, nil
}

// SubmitBlock implements Layer.
func (c *Client) SubmitBlock(ctx context.Context, proofs []*types.TxProof) error {
	req := BlockRequest{Proofs: make([]BlockProof, 0, len(proofs))}
	for _, p := range proofs {
		req.Proofs = append(req.Proofs, BlockProof{
			TxID:     p.TxID,
			PreRoot:  p.PreRoot,
			PostRoot: p.PostRoot,
			Proof:    p.Data,
		})
	}
	err := httpclient.Do(ctx, c.sender, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.baseURL.JoinPath("blocks").String(),
		Token:  c.token,
		Body:   &req,
	})
	if err != nil {
		return fmt.Errorf("submit block: %w", err)
	}
	return nil
}
