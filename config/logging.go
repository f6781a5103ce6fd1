package config

import "go.uber.org/zap/zapcore"

// LogEncoder defines a log encoder kind.
type LogEncoder = string

const (
	defaultLoggingLevel = zapcore.InfoLevel
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder LogEncoder = "console"
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder LogEncoder = "json"
)

// LoggerConfig holds the logging level for each module.
type LoggerConfig struct {
	Encoder               LogEncoder `mapstructure:"log-encoder"`
	AppLoggerLevel        string     `mapstructure:"app"`
	SequencerLoggerLevel  string     `mapstructure:"sequencer"`
	MempoolLoggerLevel    string     `mapstructure:"mempool"`
	VMLoggerLevel         string     `mapstructure:"vm"`
	StateLoggerLevel      string     `mapstructure:"state"`
	ProverLoggerLevel     string     `mapstructure:"prover"`
	SettlementLoggerLevel string     `mapstructure:"settlement"`
	APILoggerLevel        string     `mapstructure:"api"`
}

// DefaultLoggingConfig sets every module to the default level.
func DefaultLoggingConfig() LoggerConfig {
	return LoggerConfig{
		Encoder:               ConsoleLogEncoder,
		AppLoggerLevel:        defaultLoggingLevel.String(),
		SequencerLoggerLevel:  defaultLoggingLevel.String(),
		MempoolLoggerLevel:    defaultLoggingLevel.String(),
		VMLoggerLevel:         defaultLoggingLevel.String(),
		StateLoggerLevel:      defaultLoggingLevel.String(),
		ProverLoggerLevel:     defaultLoggingLevel.String(),
		SettlementLoggerLevel: defaultLoggingLevel.String(),
		APILoggerLevel:        defaultLoggingLevel.String(),
	}
}
