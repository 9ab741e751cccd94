package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/fernandezvara/passentropy"
	"github.com/fernandezvara/passentropy/internal/config"
)

// estimateOutput is the JSON form of one estimate.
type estimateOutput struct {
	Entropy          float64             `json:"entropy"`
	Strength         string              `json:"strength"`
	Score            int                 `json:"score"`
	CrackTimeSeconds float64             `json:"crack_time_seconds"`
	Matches          []passentropy.Match `json:"matches"`
}

func newEstimateCmd(a *app) *cobra.Command {
	var (
		watch            bool
		guessesPerSecond float64
	)

	cmd := &cobra.Command{
		Use:   "estimate [password...]",
		Short: "Estimate the entropy of passwords",
		Long: `Estimate the entropy of each password given as an argument, or of each
line read from stdin when no argument is given.

With --watch, the config file is reloaded whenever it changes and later
passwords are estimated with the new settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				stop, err := a.watchConfig()
				if err != nil {
					return err
				}
				defer stop()
			}

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			return passwords(args, cmd.InOrStdin(), func(pw string) error {
				res, err := a.estimator().Estimate(pw, a.userInfo...)
				if err != nil {
					return err
				}
				if a.jsonOut {
					return enc.Encode(newEstimateOutput(res, guessesPerSecond))
				}
				printEstimate(out, res, guessesPerSecond)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the config file when it changes")
	cmd.Flags().Float64Var(&guessesPerSecond, "guesses-per-second", 1e4, "attacker guess rate used for crack time")
	return cmd
}

// watchConfig swaps in a new estimator whenever the config file changes.
func (a *app) watchConfig() (func(), error) {
	if a.configPath == "" {
		return nil, fmt.Errorf("--watch requires --config")
	}

	loader := config.NewLoader(a.configPath)
	if _, err := loader.Load(); err != nil {
		return nil, err
	}
	loader.OnChange(func(cfg *config.Config) {
		est, err := cfg.NewEstimator(a.logger.Logger)
		if err != nil {
			a.logger.Warn("config reload rejected", "error", err)
			return
		}
		a.est.Store(est)
		a.logger.Info("config reloaded", "summary", cfg.Summary())
	})
	if err := loader.Watch(); err != nil {
		loader.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case err := <-loader.Errors():
				a.logger.Warn("config watch", "error", err)
			}
		}
	}()

	return func() {
		close(done)
		loader.Close()
	}, nil
}

func newEstimateOutput(res passentropy.Result, guessesPerSecond float64) estimateOutput {
	return estimateOutput{
		Entropy:          res.Entropy,
		Strength:         res.Strength().String(),
		Score:            res.Score(),
		CrackTimeSeconds: res.CrackTime(guessesPerSecond).Seconds(),
		Matches:          res.Matches,
	}
}

func printEstimate(w io.Writer, res passentropy.Result, guessesPerSecond float64) {
	s := res.Strength()
	fmt.Fprintf(w, "entropy: %.2f bits  ", res.Entropy)
	strengthColor(s).Fprintf(w, "%s", s)
	fmt.Fprintf(w, "  score: %d  crack time: %s\n", res.Score(), formatCrackTime(res.CrackTime(guessesPerSecond)))
	for _, m := range res.Matches {
		colorWhite.Fprintf(w, "  %-16s %-24q %3d..%-3d %8.2f\n", m.Type, m.Token, m.Begin, m.End(), m.Entropy)
	}
}

// formatCrackTime rounds d to the largest sensible unit.
func formatCrackTime(d time.Duration) string {
	const (
		day  = 24 * time.Hour
		year = 365 * day
	)
	switch {
	case d == time.Duration(math.MaxInt64):
		return "centuries"
	case d < time.Second:
		return "instant"
	case d < time.Hour:
		return d.Round(time.Second).String()
	case d < day:
		return fmt.Sprintf("%.1f hours", d.Hours())
	case d < year:
		return fmt.Sprintf("%.1f days", d.Hours()/24)
	case d < 100*year:
		return fmt.Sprintf("%.1f years", float64(d)/float64(year))
	default:
		return "centuries"
	}
}
