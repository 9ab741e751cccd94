package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fernandezvara/passentropy"
	"github.com/fernandezvara/passentropy/internal/logging"
)

// LoggerConfig converts the logging section into a logging.Config.
func (c *Config) LoggerConfig() (*logging.Config, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.Logging.Format)
	if err != nil {
		return nil, err
	}
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = format
	lc.Output = strings.ToLower(c.Logging.Output)
	lc.FilePath = c.Logging.FilePath
	return lc, nil
}

// EstimatorOptions translates the configuration into estimator options.
func (c *Config) EstimatorOptions(logger *slog.Logger) ([]passentropy.Option, error) {
	var graphs []*passentropy.KeyboardGraph
	for _, name := range c.Keyboards.Layouts {
		g, ok := passentropy.KeyboardByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown keyboard layout %q", name)
		}
		graphs = append(graphs, g)
	}

	opts := []passentropy.Option{
		passentropy.WithKeyboards(graphs...),
		passentropy.WithReferenceYear(c.Dates.ReferenceYear),
		passentropy.WithConcurrency(c.Engine.Concurrent),
	}
	if !c.Dictionaries.Builtin {
		opts = append(opts, passentropy.WithoutBuiltinWordLists())
	}
	if len(c.Dictionaries.Files) > 0 {
		opts = append(opts, passentropy.WithWordListFiles(c.Dictionaries.Files...))
	}
	if logger != nil {
		opts = append(opts, passentropy.WithLogger(logger))
	}
	return opts, nil
}

// NewEstimator builds an estimator from the configuration.
func (c *Config) NewEstimator(logger *slog.Logger) (*passentropy.Estimator, error) {
	opts, err := c.EstimatorOptions(logger)
	if err != nil {
		return nil, err
	}
	return passentropy.NewEstimator(opts...)
}

// NewPolicy builds the acceptance policy, checked with est.
func (c *Config) NewPolicy(est *passentropy.Estimator) *passentropy.Policy {
	p := c.Policy
	return passentropy.NewPolicyWithEstimator(est, p.MinLength, p.MaxLength,
		p.RequireLower, p.RequireUpper, p.RequireNumbers, p.RequireSymbols, p.MinEntropy)
}
