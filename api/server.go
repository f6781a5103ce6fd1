// Package api serves the HTTP intake of the sequencer.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/rs/cors"
	httpmetrics "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/log"
	"github.com/trollup/go-trollup/metrics"
)

// maxBodySize bounds request bodies. A transaction is a few hundred bytes of JSON.
const maxBodySize = 16 << 10

// the recorder registers its collectors globally, servers share one.
var recorder = sync.OnceValue(func() middleware.Config {
	return middleware.Config{
		Recorder: httpmetrics.NewRecorder(httpmetrics.Config{Prefix: metrics.Namespace}),
	}
})

// Opt changes Server.
type Opt func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Opt {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithConfig sets the configuration.
func WithConfig(cfg Config) Opt {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// Server accepts signed transactions and hands them to the sequencer through the intake channel.
// Submissions block while the channel is full.
type Server struct {
	logger  *zap.Logger
	cfg     Config
	intake  chan<- *types.SignedTx
	view    sequencerView
	limiter *rate.Limiter

	// BoundAddress is the address the server listens on after Start.
	BoundAddress string
	server       *http.Server
	eg           errgroup.Group
}

// New creates a server.
func New(intake chan<- *types.SignedTx, view sequencerView, opts ...Opt) *Server {
	s := &Server{
		logger: zap.NewNop(),
		cfg:    DefaultConfig(),
		intake: intake,
		view:   view,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.limiter = s.cfg.limiter()
	s.server = &http.Server{Handler: s.Handler()}
	return s
}

// Handler returns the instrumented router.
func (s *Server) Handler() http.Handler {
	mdlw := middleware.New(recorder())
	mux := http.NewServeMux()
	mux.Handle("POST /v1/transactions", std.Handler("submit_transaction", mdlw, http.HandlerFunc(s.submitTransaction)))
	mux.Handle("GET /v1/accounts/{address}", std.Handler("get_account", mdlw, http.HandlerFunc(s.getAccount)))
	mux.Handle("GET /v1/status", std.Handler("get_status", mdlw, http.HandlerFunc(s.getStatus)))
	return s.rateLimit(newCorsHandler(mux, s.cfg.CORSOrigins))
}

func newCorsHandler(next http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		return next
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	})
	return c.Handler(next)
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Listen, err)
	}
	s.BoundAddress = lis.Addr().String()
	s.logger.Info("starting api server", zap.String("address", s.BoundAddress))
	s.eg.Go(func() error {
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serving api", zap.Error(err))
			return err
		}
		return nil
	})
	return nil
}

// Shutdown stops accepting requests and waits for the in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	if werr := s.eg.Wait(); werr != nil && err == nil {
		err = werr
	}
	if err != nil {
		return fmt.Errorf("shutdown api server: %w", err)
	}
	return nil
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			rateLimitedCnt.Inc()
			writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) submitTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode transaction: %w", err))
		return
	}
	tx, err := req.ToTx()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}
	select {
	case s.intake <- tx:
	case <-ctx.Done():
		droppedCnt.Inc()
		s.logger.Warn("transaction not queued",
			log.ZShortStringer("tx_id", tx.ID()),
			zap.Error(ctx.Err()),
		)
		writeError(w, http.StatusServiceUnavailable, errQueueFull)
		return
	}
	queuedCnt.Inc()
	s.logger.Debug("transaction queued",
		log.ZShortStringer("tx_id", tx.ID()),
		log.ZShortStringer("sender", tx.Sender.Address()),
		zap.String("nonce", tx.Nonce.Dec()),
	)
	writeJSON(w, http.StatusAccepted, &TransactionResponse{ID: tx.ID()})
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	addr, err := types.ParseAddress(r.PathValue("address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	acc := s.view.Current().Get(addr)
	writeJSON(w, http.StatusOK, &AccountResponse{
		Address: addr,
		Balance: acc.Balance.Dec(),
		Nonce:   acc.Nonce.Dec(),
	})
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newStatusResponse(s.view.Status()))
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, &ErrorResponse{Error: err.Error()})
}
