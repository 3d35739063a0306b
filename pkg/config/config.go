// Package config provides the configuration for qsopipe.
//
// A single Config structure covers the pipeline, the awards
// aggregator, the log store, and logging. Whether the accelerated
// parallel paths are used is an explicit configuration value handed
// into construction, not process-wide state.
package config

import (
	"github.com/qsopipe/qsopipe/pkg/qsoerrors"
)

// Config is the root configuration structure.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Pipeline PipelineConfig `yaml:"pipeline" json:"pipeline"`
	Awards   AwardsConfig   `yaml:"awards" json:"awards"`
	Storage  StorageConfig  `yaml:"storage" json:"storage"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" json:"level"`
	// Encoding is json or console.
	Encoding string `yaml:"encoding" json:"encoding"`
	// Development switches to colored, human-first output.
	Development bool `yaml:"development" json:"development"`
}

// PipelineConfig controls the ADIF import pipeline.
type PipelineConfig struct {
	// Parallel selects the chunked-parallel import implementation.
	// Both implementations satisfy the same conformance suite.
	Parallel bool `yaml:"parallel" json:"parallel"`
	// Workers is the worker-count hint. 0 means the CPU count.
	Workers int `yaml:"workers" json:"workers"`
	// SerialThreshold is the record count below which import always
	// runs serially. 0 keeps the built-in default.
	SerialThreshold int `yaml:"serial_threshold" json:"serial_threshold"`
}

// AwardsConfig controls the awards aggregator.
type AwardsConfig struct {
	// Parallel selects the chunked-parallel aggregation implementation.
	Parallel bool `yaml:"parallel" json:"parallel"`
	// ChunkSize is the records per aggregation chunk. 0 keeps the
	// built-in default.
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`
	// Workers is the worker-count hint. 0 means the CPU count.
	Workers int `yaml:"workers" json:"workers"`
}

// StorageConfig controls the log store location.
type StorageConfig struct {
	// Path to the SQLite database file. Empty resolves the default
	// location (QSOPIPE_DB_PATH or the user data directory).
	Path string `yaml:"path" json:"path"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		Pipeline: PipelineConfig{
			Parallel: true,
		},
		Awards: AwardsConfig{
			Parallel: true,
		},
	}
}

// Validate rejects configurations no component could accept.
func (c *Config) Validate() error {
	if c == nil {
		return qsoerrors.New(qsoerrors.ErrorTypeContract, "nil config")
	}
	if c.Pipeline.Workers < 0 {
		return qsoerrors.Newf(qsoerrors.ErrorTypeConfig, "pipeline.workers must be non-negative, got %d", c.Pipeline.Workers)
	}
	if c.Pipeline.SerialThreshold < 0 {
		return qsoerrors.Newf(qsoerrors.ErrorTypeConfig, "pipeline.serial_threshold must be non-negative, got %d", c.Pipeline.SerialThreshold)
	}
	if c.Awards.ChunkSize < 0 {
		return qsoerrors.Newf(qsoerrors.ErrorTypeConfig, "awards.chunk_size must be non-negative, got %d", c.Awards.ChunkSize)
	}
	if c.Awards.Workers < 0 {
		return qsoerrors.Newf(qsoerrors.ErrorTypeConfig, "awards.workers must be non-negative, got %d", c.Awards.Workers)
	}
	switch c.Logging.Encoding {
	case "", "json", "console":
	default:
		return qsoerrors.Newf(qsoerrors.ErrorTypeConfig, "logging.encoding must be json or console, got %q", c.Logging.Encoding)
	}
	return nil
}
