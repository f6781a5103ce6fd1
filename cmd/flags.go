package cmd

import (
	"github.com/spf13/pflag"

	"github.com/trollup/go-trollup/config"
)

// AddFlags adds cobra flags to the app. Flags override values from the config file.
// The returned pointer holds the config file path once flags are parsed.
func AddFlags(flagSet *pflag.FlagSet, cfg *config.Config) (configPath *string) {
	configPath = flagSet.StringP("config", "c", "", "load configuration from file")

	/** ======================== BaseConfig Flags ========================== **/
	flagSet.StringVarP(&cfg.DataDirParent, "data-folder", "d",
		cfg.DataDirParent, "specify data directory for trollup")
	flagSet.StringVar(&cfg.FileLock, "filelock",
		cfg.FileLock, "filesystem lock to prevent running more than one instance")
	flagSet.StringVar(&cfg.NetworkID, "network-id",
		cfg.NetworkID, "network identifier, signed as part of every transaction")
	flagSet.StringVar(&cfg.LOGGING.Encoder, "log-encoder",
		cfg.LOGGING.Encoder, "log as JSON instead of plain text")
	flagSet.BoolVar(&cfg.CollectMetrics, "metrics",
		cfg.CollectMetrics, "collect sequencer metrics")
	flagSet.IntVar(&cfg.MetricsPort, "metrics-port",
		cfg.MetricsPort, "metric server port")
	flagSet.StringVar(&cfg.MetricsPush, "metrics-push",
		cfg.MetricsPush, "push metrics to url")
	flagSet.DurationVar(&cfg.MetricsPushPeriod, "metrics-push-period",
		cfg.MetricsPushPeriod, "push period")
	flagSet.BoolVar(&cfg.Standalone, "standalone",
		cfg.Standalone, "run with the local prover and an in-memory settlement layer")

	/** ======================== Sequencer Flags ========================== **/
	flagSet.IntVar(&cfg.Sequencer.MinBatchSize, "min-batch-size",
		cfg.Sequencer.MinBatchSize, "number of pending transactions that starts a batch")
	flagSet.IntVar(&cfg.Sequencer.IntakeCapacity, "intake-capacity",
		cfg.Sequencer.IntakeCapacity, "number of received transactions buffered before submissions block")

	/** ======================== Prover Flags ========================== **/
	flagSet.StringVar(&cfg.Prover.Endpoint, "prover-endpoint",
		cfg.Prover.Endpoint, "address of the proving service")
	flagSet.IntVar(&cfg.Prover.Parallelism, "prover-parallelism",
		cfg.Prover.Parallelism, "max number of concurrent proof requests, 0 uses the number of CPUs")
	flagSet.DurationVar(&cfg.Prover.Timeout, "prover-timeout",
		cfg.Prover.Timeout, "timeout of a single proof request, 0 waits forever")
	flagSet.IntVar(&cfg.Prover.MaxRetries, "prover-max-retries",
		cfg.Prover.MaxRetries, "retries of a failed proof request")
	flagSet.DurationVar(&cfg.Prover.RetryDelay, "prover-retry-delay",
		cfg.Prover.RetryDelay, "delay between proof request retries")

	/** ======================== Settlement Flags ========================== **/
	flagSet.StringVar(&cfg.Settlement.Endpoint, "settlement-endpoint",
		cfg.Settlement.Endpoint, "address of the settlement gateway")
	flagSet.StringVar(&cfg.Settlement.Contract, "settlement-contract",
		cfg.Settlement.Contract, "address of the rollup contract")
	flagSet.IntVar(&cfg.Settlement.MaxRetries, "settlement-max-retries",
		cfg.Settlement.MaxRetries, "retries of a failed settlement root read")
	flagSet.DurationVar(&cfg.Settlement.RetryDelay, "settlement-retry-delay",
		cfg.Settlement.RetryDelay, "delay between settlement root read retries")

	/** ======================== API Flags ========================== **/
	flagSet.StringVar(&cfg.API.Listen, "listen",
		cfg.API.Listen, "address of the transaction intake")
	flagSet.Float64Var(&cfg.API.RateLimit, "rate-limit",
		cfg.API.RateLimit, "requests per second accepted by the intake, 0 disables the limit")
	flagSet.IntVar(&cfg.API.RateBurst, "rate-burst",
		cfg.API.RateBurst, "burst of requests accepted above the rate limit")
	flagSet.DurationVar(&cfg.API.RequestTimeout, "request-timeout",
		cfg.API.RequestTimeout, "how long a submission waits for room in the intake queue")
	flagSet.StringSliceVar(&cfg.API.CORSOrigins, "cors-origins",
		cfg.API.CORSOrigins, "origins allowed to call the api from a browser")

	/** ======================== Genesis Flags ========================== **/
	flagSet.StringToStringVarP(&cfg.Genesis.Accounts, "accounts", "a",
		cfg.Genesis.Accounts, "list of prefunded accounts, address=balance")

	return configPath
}
