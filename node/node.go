// Package node contains the main executable for the trollup sequencer.
package node

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/jonboulle/clockwork"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/trollup/go-trollup/api"
	"github.com/trollup/go-trollup/cmd"
	"github.com/trollup/go-trollup/common/types"
	"github.com/trollup/go-trollup/config"
	"github.com/trollup/go-trollup/log"
	"github.com/trollup/go-trollup/metrics"
	"github.com/trollup/go-trollup/prover"
	"github.com/trollup/go-trollup/sequencer"
	"github.com/trollup/go-trollup/settlement"
	"github.com/trollup/go-trollup/signing"
	"github.com/trollup/go-trollup/state"
	"github.com/trollup/go-trollup/txs"
	"github.com/trollup/go-trollup/vm"
)

const (
	genesisFileName = "genesis.json"
	stateDirName    = "state"
)

// Logger names.
const (
	AppLogger        = "app"
	SequencerLogger  = "sequencer"
	MempoolLogger    = "mempool"
	VMLogger         = "vm"
	StateLogger      = "state"
	ProverLogger     = "prover"
	SettlementLogger = "settlement"
	APILogger        = "api"
)

// GetCommand returns the command that runs the sequencer.
func GetCommand() *cobra.Command {
	conf := config.DefaultConfig()
	var configPath *string
	c := &cobra.Command{
		Use:   "trollup",
		Short: "start the rollup sequencer",
		RunE: func(c *cobra.Command, args []string) error {
			if err := configure(c, *configPath, &conf); err != nil {
				return err
			}

			app := New(
				WithConfig(&conf),
				// child loggers can only raise the level, so the root logs everything.
				WithLog(log.NewWithLevel("trollup", zap.NewAtomicLevelAt(zap.DebugLevel))),
			)

			// os.Interrupt for all systems, syscall.SIGTERM is mainly for docker.
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := os.MkdirAll(app.Config.DataDir(), 0o700); err != nil {
				return fmt.Errorf("ensure folders exist: %w", err)
			}
			if err := app.Lock(); err != nil {
				return fmt.Errorf("getting exclusive file lock: %w", err)
			}
			defer app.Unlock()

			if err := app.Initialize(); err != nil {
				return fmt.Errorf("initializing app: %w", err)
			}

			// Don't print usage on error from this point forward
			c.SilenceUsage = true

			// This blocks until the context is finished or until an error is produced
			err := app.Start(ctx)
			cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cleanupCancel()
			done := make(chan struct{})
			go func() {
				app.Cleanup(cleanupCtx)
				close(done)
			}()
			select {
			case <-done:
			case <-cleanupCtx.Done():
				app.log.Error("app failed to clean up in time")
			}
			return err
		},
	}

	configPath = cmd.AddFlags(c.PersistentFlags(), &conf)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(c *cobra.Command, args []string) {
			fmt.Print(cmd.Version)
			fmt.Println()
		},
	}
	c.AddCommand(versionCmd)
	return c
}

func configure(c *cobra.Command, configPath string, conf *config.Config) error {
	if err := loadConfig(conf, configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	// apply CLI args to config
	if err := c.ParseFlags(os.Args[1:]); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	if conf.LOGGING.Encoder == config.JSONLogEncoder {
		log.JSONLog(true)
	}
	return nil
}

// loadConfig overrides cfg with values from the config file at path.
func loadConfig(cfg *config.Config, path string) error {
	v := viper.New()
	if err := config.LoadConfig(path, v); err != nil {
		return err
	}

	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithZeroFields(),
		WithIgnoreUntagged(),
		WithErrorUnused(),
	}
	if err := v.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func WithZeroFields() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ZeroFields = true
	}
}

func WithIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}

// Option to modify an App instance.
type Option func(app *App)

// WithLog enables logger for an App.
func WithLog(logger *zap.Logger) Option {
	return func(app *App) {
		app.log = logger
	}
}

// WithConfig overwrites default App config.
func WithConfig(conf *config.Config) Option {
	return func(app *App) {
		app.Config = conf
	}
}

// WithFs sets the filesystem used for the genesis record.
func WithFs(fs afero.Fs) Option {
	return func(app *App) {
		app.fs = fs
	}
}

// New creates an instance of the sequencer app.
func New(opts ...Option) *App {
	defaultConfig := config.DefaultConfig()
	app := &App{
		Config:  &defaultConfig,
		log:     zap.NewNop(),
		fs:      afero.NewOsFs(),
		loggers: make(map[string]*zap.AtomicLevel),
		started: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(app)
	}
	app.root = app.log
	app.log = app.addLogger(AppLogger, app.root)
	return app
}

// App is the cli app singleton.
type App struct {
	Config   *config.Config
	root     *zap.Logger
	log      *zap.Logger
	fs       afero.Fs
	fileLock *flock.Flock
	loggers  map[string]*zap.AtomicLevel

	intake        chan *types.SignedTx
	store         *state.Store
	seq           *sequencer.Sequencer
	layer         settlement.Layer
	apiServer     *api.Server
	metricsServer *http.Server

	started chan struct{} // closed once the app has finished starting
	eg      errgroup.Group
}

// Started is closed once all services run.
func (app *App) Started() <-chan struct{} {
	return app.started
}

// Lock locks the app for exclusive use. It returns an error if the app is already locked.
func (app *App) Lock() error {
	lockDir := filepath.Dir(app.Config.FileLock)
	if _, err := os.Stat(lockDir); errors.Is(err, fs.ErrNotExist) {
		err := os.MkdirAll(lockDir, os.ModePerm)
		if err != nil {
			return fmt.Errorf("creating dir %s for lock %s: %w", lockDir, app.Config.FileLock, err)
		}
	}
	fl := flock.New(app.Config.FileLock)
	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("flock %s: %w", app.Config.FileLock, err)
	} else if !locked {
		return fmt.Errorf("only one trollup instance should be running (locking file %s)", fl.Path())
	}
	app.fileLock = fl
	return nil
}

// Unlock unlocks the app. It is a no-op if the app is not locked.
func (app *App) Unlock() {
	if app.fileLock == nil {
		return
	}
	if err := app.fileLock.Unlock(); err != nil {
		app.log.Error("failed to unlock file",
			zap.String("path", app.fileLock.Path()),
			zap.Error(err),
		)
	}
}

// Initialize checks that the genesis did not change since the first start.
func (app *App) Initialize() error {
	gpath := filepath.Join(app.Config.DataDir(), genesisFileName)
	var existing config.GenesisConfig
	if err := existing.LoadFromFile(app.fs, gpath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load genesis config at %s: %w", gpath, err)
		}
		if err := app.Config.Genesis.Validate(); err != nil {
			return err
		}
		if err := app.Config.Genesis.WriteToFile(app.fs, gpath); err != nil {
			return fmt.Errorf("failed to write genesis config to %s: %w", gpath, err)
		}
	} else {
		diff := existing.Diff(&app.Config.Genesis)
		if len(diff) > 0 {
			app.log.Error("genesis config updated after initialization, if this update is required delete data at "+
				app.Config.DataDir(),
				zap.String("diff", diff),
			)
			return errors.New("genesis config updated after initialization")
		}
	}

	app.log.Info("starting trollup sequencer",
		zap.String("version", cmd.Version),
		zap.String("branch", cmd.Branch),
		zap.String("commit", cmd.Commit),
		zap.String("go", runtime.Version()),
		zap.String("os", runtime.GOOS+"-"+runtime.GOARCH),
		zap.String("network", app.Config.NetworkID),
	)
	return nil
}

// Start runs all services and blocks until ctx is done or the sequencer stops.
func (app *App) Start(ctx context.Context) error {
	if err := app.initServices(ctx); err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	if err := app.startServices(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	close(app.started)

	stopped := make(chan error, 1)
	app.eg.Go(func() error {
		stopped <- app.seq.Wait()
		return nil
	})
	select {
	case <-ctx.Done():
		return nil
	case err := <-stopped:
		if err != nil {
			return fmt.Errorf("sequencer stopped: %w", err)
		}
		return errors.New("sequencer stopped")
	}
}

func (app *App) initServices(ctx context.Context) error {
	store, err := state.Open(
		filepath.Join(app.Config.DataDir(), stateDirName),
		state.WithStoreLogger(app.addLogger(StateLogger, app.root)),
	)
	if err != nil {
		return err
	}
	app.store = store
	genesis, meta, err := app.loadState()
	if err != nil {
		return err
	}

	verifier, err := signing.NewEdVerifier(signing.WithVerifierPrefix([]byte(app.Config.NetworkID)))
	if err != nil {
		return err
	}
	machine := vm.New(verifier, vm.WithLogger(app.addLogger(VMLogger, app.root)))
	mempool := txs.NewMempool(machine,
		txs.WithThreshold(app.Config.Sequencer.MinBatchSize),
		txs.WithLogger(app.addLogger(MempoolLogger, app.root)),
	)

	proverLog := app.addLogger(ProverLogger, app.root)
	var p prover.Prover = prover.Local{}
	if !app.Config.Standalone {
		p, err = prover.NewClient(app.Config.Prover, prover.WithClientLogger(proverLog))
		if err != nil {
			return fmt.Errorf("create prover client: %w", err)
		}
	}
	dispatcher := prover.NewDispatcher(p,
		prover.WithConfig(app.Config.Prover),
		prover.WithLogger(proverLog),
	)

	settlementLog := app.addLogger(SettlementLogger, app.root)
	if app.Config.Standalone {
		app.layer = settlement.NewMemory(meta.ProvenRoot, settlement.WithVerifier(prover.VerifyCommitment))
	} else {
		app.layer, err = settlement.NewClient(app.Config.Settlement, settlement.WithClientLogger(settlementLog))
		if err != nil {
			return fmt.Errorf("create settlement client: %w", err)
		}
	}
	root, err := app.layer.CurrentRoot(ctx)
	if err != nil {
		return fmt.Errorf("read settlement root: %w", err)
	}
	if root != meta.ProvenRoot {
		app.log.Warn("settlement root differs from the last proven root",
			zap.Stringer("settlement_root", root),
			zap.Stringer("proven_root", meta.ProvenRoot),
		)
	}

	app.intake = make(chan *types.SignedTx, app.Config.Sequencer.IntakeCapacity)
	app.seq = sequencer.New(
		app.intake,
		mempool,
		machine,
		dispatcher,
		settlement.NewSubmitter(app.layer, settlement.WithLogger(settlementLog)),
		app.layer,
		genesis,
		sequencer.WithLogger(app.addLogger(SequencerLogger, app.root)),
		sequencer.WithClock(clockwork.NewRealClock()),
		sequencer.WithStore(store),
		sequencer.WithMeta(meta),
	)
	app.apiServer = api.New(app.intake, app.seq,
		api.WithConfig(app.Config.API),
		api.WithLogger(app.addLogger(APILogger, app.root)),
	)
	return nil
}

// loadState returns the stored state, or the genesis state on the first start.
func (app *App) loadState() (*state.Snapshot, *state.Meta, error) {
	snap, meta, err := app.store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load state: %w", err)
	}
	if meta != nil {
		app.log.Info("resuming from stored state",
			zap.Stringer("applied_root", meta.AppliedRoot),
			zap.Stringer("proven_root", meta.ProvenRoot),
			zap.Uint64("batches", meta.Batches),
			zap.Bool("diverged", meta.Diverged),
		)
		return snap, meta, nil
	}
	accounts, err := app.Config.Genesis.ToAccounts()
	if err != nil {
		return nil, nil, err
	}
	genesis := state.NewSnapshot(accounts...)
	meta = &state.Meta{AppliedRoot: genesis.Root(), ProvenRoot: genesis.Root()}
	touched := make([]types.Address, 0, len(accounts))
	for _, acc := range accounts {
		touched = append(touched, acc.Address)
	}
	if err := app.store.Commit(genesis, touched, meta); err != nil {
		return nil, nil, fmt.Errorf("store genesis: %w", err)
	}
	app.log.Info("created genesis state",
		zap.Int("accounts", len(accounts)),
		zap.Stringer("root", genesis.Root()),
	)
	return genesis, meta, nil
}

func (app *App) startServices(ctx context.Context) error {
	if app.Config.CollectMetrics {
		app.metricsServer = metrics.StartMetricsServer(app.log, app.Config.MetricsPort)
	}
	if app.Config.MetricsPush != "" {
		metrics.StartPushingMetrics(ctx, app.log, app.Config.MetricsPush,
			app.Config.MetricsPushPeriod, app.Config.NetworkID)
	}
	app.seq.Start(ctx)
	return app.apiServer.Start()
}

// Cleanup stops all app services.
func (app *App) Cleanup(ctx context.Context) {
	app.log.Info("app cleanup starting...")
	if app.apiServer != nil {
		if err := app.apiServer.Shutdown(ctx); err != nil {
			app.log.Error("failed to stop api server", zap.Error(err))
		}
	}
	if app.seq != nil {
		app.seq.Stop()
	}
	app.eg.Wait()
	if app.metricsServer != nil {
		if err := app.metricsServer.Shutdown(ctx); err != nil {
			app.log.Error("failed to stop metrics server", zap.Error(err))
		}
	}
	if app.store != nil {
		if err := app.store.Close(); err != nil {
			app.log.Error("failed to close state store", zap.Error(err))
		}
	}
	app.log.Info("app cleanup completed")
}

// addLogger returns a named child of logger at the level configured for name.
// Calling this method creates a new logger every time.
func (app *App) addLogger(name string, logger *zap.Logger) *zap.Logger {
	lvl, err := decodeLoggerLevel(app.Config, name)
	if err != nil {
		app.log.Warn("invalid log level, using default", zap.String("module", name), zap.Error(err))
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	app.loggers[name] = &lvl
	return logger.WithOptions(zap.IncreaseLevel(lvl)).Named(name)
}

// SetLogLevel updates the log level of an existing logger.
func (app *App) SetLogLevel(name, loglevel string) error {
	lvl, ok := app.loggers[name]
	if !ok {
		return fmt.Errorf("cannot find logger %v", name)
	}
	if err := lvl.UnmarshalText([]byte(loglevel)); err != nil {
		return fmt.Errorf("unmarshal text: %w", err)
	}
	return nil
}

func decodeLoggerLevel(cfg *config.Config, name string) (zap.AtomicLevel, error) {
	loggers := map[string]string{}
	if err := mapstructure.Decode(cfg.LOGGING, &loggers); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("error decoding mapstructure: %w", err)
	}
	return log.ParseLevel(loggers[name], zap.InfoLevel)
}
