// Package config contains the sequencer configuration definitions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/trollup/go-trollup/api"
	"github.com/trollup/go-trollup/prover"
	"github.com/trollup/go-trollup/settlement"
)

const (
	defaultDataDirName = "trollup"
	defaultNetworkID   = "devnet"
)

// Config defines the top level configuration of the sequencer.
type Config struct {
	BaseConfig `mapstructure:"main"`
	Sequencer  SequencerConfig   `mapstructure:"sequencer"`
	Prover     prover.Config     `mapstructure:"prover"`
	Settlement settlement.Config `mapstructure:"settlement"`
	API        api.Config        `mapstructure:"api"`
	Genesis    GenesisConfig     `mapstructure:"genesis"`
	LOGGING    LoggerConfig      `mapstructure:"logging"`
}

// DataDir returns the path to the data of the configured network.
func (cfg *Config) DataDir() string {
	return filepath.Join(expandHome(cfg.DataDirParent), cfg.NetworkID)
}

// BaseConfig defines the process wide options.
type BaseConfig struct {
	DataDirParent string `mapstructure:"data-folder"`
	FileLock      string `mapstructure:"filelock"`
	// NetworkID is signed together with every transaction so signatures do not replay across networks.
	NetworkID string `mapstructure:"network-id"`

	CollectMetrics    bool          `mapstructure:"metrics"`
	MetricsPort       int           `mapstructure:"metrics-port"`
	MetricsPush       string        `mapstructure:"metrics-push"`
	MetricsPushPeriod time.Duration `mapstructure:"metrics-push-period"`

	// Standalone runs with the local prover and an in-memory settlement layer.
	Standalone bool `mapstructure:"standalone"`
}

// SequencerConfig configures batching.
type SequencerConfig struct {
	MinBatchSize   int `mapstructure:"min-batch-size"`
	IntakeCapacity int `mapstructure:"intake-capacity"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BaseConfig: defaultBaseConfig(),
		Sequencer: SequencerConfig{
			MinBatchSize:   1,
			IntakeCapacity: 1024,
		},
		Prover:     prover.DefaultConfig(),
		Settlement: settlement.DefaultConfig(),
		API:        api.DefaultConfig(),
		Genesis:    GenesisConfig{Accounts: map[string]string{}},
		LOGGING:    DefaultLoggingConfig(),
	}
}

// DefaultTestConfig returns a configuration for running the sequencer in process without external services.
func DefaultTestConfig() Config {
	conf := DefaultConfig()
	conf.Standalone = true
	conf.API.Listen = "127.0.0.1:0"
	conf.Prover.Parallelism = 2
	return conf
}

func defaultBaseConfig() BaseConfig {
	dataDir := filepath.Join("~", "."+defaultDataDirName)
	return BaseConfig{
		DataDirParent:     dataDir,
		FileLock:          filepath.Join(os.TempDir(), defaultDataDirName, "trollup.lock"),
		NetworkID:         defaultNetworkID,
		MetricsPort:       1010,
		MetricsPushPeriod: 60 * time.Second,
	}
}

// LoadConfig reads the config file into vip. An empty path leaves vip untouched.
func LoadConfig(path string, vip *viper.Viper) error {
	if path == "" {
		return nil
	}
	vip.SetConfigFile(path)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
