// Package log builds the zap loggers used by the platform's daemons and
// install tooling. The configuration packages themselves never log; they
// return coded errors and leave termination to the entry point.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a production logger at the given level, writing to stderr.
func New(level string) (*zap.Logger, error) {
	return build(level, nil)
}

// NewWithFile returns a production logger that writes to stderr and to the
// platform log file.
func NewWithFile(level, logFile string) (*zap.Logger, error) {
	return build(level, []string{"stderr", logFile})
}

func build(level string, outputs []string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	if outputs != nil {
		cfg.OutputPaths = outputs
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
