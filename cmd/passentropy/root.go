package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fernandezvara/passentropy"
	"github.com/fernandezvara/passentropy/internal/config"
	"github.com/fernandezvara/passentropy/internal/logging"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	userInfo   []string
	jsonOut    bool
	noColor    bool

	cfg    *config.Config
	logger *logging.Logger
	est    atomic.Pointer[passentropy.Estimator]
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Estimate how hard passwords are to guess",
		Long: `passentropy explains a password as a sequence of guessable patterns
(dictionary words, leet speak, repeats, sequences, keyboard walks, dates)
and reports the cheapest explanation in bits of entropy.

Examples:
  # Estimate a single password
  passentropy estimate 'Tr0ub4dour&3'

  # Treat the user's name and e-mail as known to the attacker
  passentropy estimate --user-info alice --user-info alice@example.com 'alice1990'

  # Estimate one password per line from stdin, as JSON
  cat passwords.txt | passentropy estimate --json

  # Enforce the configured policy
  passentropy check --config passentropy.toml 'hunter2'

  # Compare estimates against reference values
  passentropy verify testdata/vectors.txt`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.noColor {
				color.NoColor = true
			}
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (toml, yaml or json)")
	flags.StringSliceVarP(&a.userInfo, "user-info", "u", nil, "words the attacker is assumed to know (repeatable)")
	flags.BoolVar(&a.jsonOut, "json", false, "print results as JSON")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newEstimateCmd(a),
		newCheckCmd(a),
		newVerifyCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads the configuration and builds the logger and estimator.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	lc, err := cfg.LoggerConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(lc)
	if err != nil {
		return err
	}
	a.logger = logger

	est, err := cfg.NewEstimator(logger.Logger)
	if err != nil {
		return err
	}
	a.est.Store(est)
	logger.Debug("configuration loaded", "path", a.configPath, "summary", cfg.Summary())
	return nil
}

func (a *app) close() error {
	if a.logger != nil {
		return a.logger.Close()
	}
	return nil
}

// estimator returns the current estimator; a config reload may replace it.
func (a *app) estimator() *passentropy.Estimator {
	return a.est.Load()
}

// passwords yields the positional arguments, or one password per line of in
// when there are none.
func passwords(args []string, in io.Reader, fn func(string) error) error {
	if len(args) > 0 {
		for _, pw := range args {
			if err := fn(pw); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read passwords: %w", err)
	}
	return nil
}

func strengthColor(s passentropy.Strength) *color.Color {
	switch s {
	case passentropy.StrengthStrong:
		return colorGreen
	case passentropy.StrengthGood:
		return colorCyan
	case passentropy.StrengthFair:
		return colorYellow
	default:
		return colorRed
	}
}
