package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fernandezvara/passentropy"
)

// vector is a password with its reference entropy.
type vector struct {
	line     int
	password string
	expected float64
}

// vectorFile is a parsed vectors file. wordLists name the ranked lists the
// reference values were computed with, relative to the file.
type vectorFile struct {
	wordLists []string
	vectors   []vector
}

// parseVectors reads lines of "password expected". The password is everything
// before the last whitespace-separated field, joined by single spaces. A line
// "@words <file>" adds a word list. Blank lines and lines starting with # are
// skipped.
func parseVectors(r io.Reader) (vectorFile, error) {
	var vf vectorFile
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "@words" {
			if len(fields) != 2 {
				return vectorFile{}, fmt.Errorf("line %d: want \"@words <file>\"", n)
			}
			vf.wordLists = append(vf.wordLists, fields[1])
			continue
		}
		if len(fields) < 2 {
			return vectorFile{}, fmt.Errorf("line %d: want \"password expected\"", n)
		}
		expected, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return vectorFile{}, fmt.Errorf("line %d: %w", n, err)
		}
		vf.vectors = append(vf.vectors, vector{
			line:     n,
			password: strings.Join(fields[:len(fields)-1], " "),
			expected: expected,
		})
	}
	if err := scanner.Err(); err != nil {
		return vectorFile{}, err
	}
	return vf, nil
}

// verifyEstimator is the configured estimator, or, when the vectors file names
// its own word lists, the same configuration over those lists only.
func (a *app) verifyEstimator(path string, vf vectorFile) (*passentropy.Estimator, error) {
	if len(vf.wordLists) == 0 {
		return a.estimator(), nil
	}
	opts, err := a.cfg.EstimatorOptions(a.logger.Logger)
	if err != nil {
		return nil, err
	}
	files := make([]string, len(vf.wordLists))
	for i, name := range vf.wordLists {
		if !filepath.IsAbs(name) {
			name = filepath.Join(filepath.Dir(path), name)
		}
		files[i] = name
	}
	store, err := loadStore(files)
	if err != nil {
		return nil, err
	}
	return passentropy.NewEstimator(append(opts, passentropy.WithStore(store))...)
}

func loadStore(files []string) (*passentropy.Store, error) {
	lists := make([]*passentropy.WordList, 0, len(files))
	for _, f := range files {
		l, err := passentropy.LoadWordListFile(f)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return passentropy.NewStore(lists...), nil
}

// errorPercent is the relative error of got against want, in percent.
func errorPercent(got, want float64) float64 {
	denom := want
	if denom == 0 {
		denom = math.SmallestNonzeroFloat64
	}
	return math.Abs((got-want)/denom) * 100
}

func newVerifyCmd(a *app) *cobra.Command {
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Compare estimates against reference values",
		Long: `Estimate every password in a vectors file and compare the result with the
expected entropy on the same line. Fails if any estimate is off by more than
the tolerance, in percent.

A vectors file may pin the word lists its values were computed with, one
"@words <file>" line per list. Those lists then replace the configured ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			vf, err := parseVectors(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			est, err := a.verifyEstimator(args[0], vf)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, v := range vf.vectors {
				res, err := est.Estimate(v.password)
				if err != nil {
					return fmt.Errorf("line %d: %w", v.line, err)
				}
				if e := errorPercent(res.Entropy, v.expected); e > tolerance {
					failed++
					colorRed.Fprintf(out, "FAIL")
					fmt.Fprintf(out, "  line %d: %q = %.2f, expected %.2f (%.1f%%)\n",
						v.line, v.password, res.Entropy, v.expected, e)
				}
			}

			summary := fmt.Sprintf("%d/%d within %.1f%%\n", len(vf.vectors)-failed, len(vf.vectors), tolerance)
			if failed > 0 {
				colorYellow.Fprint(out, summary)
				return fmt.Errorf("%d vector(s) outside tolerance", failed)
			}
			colorGreen.Fprint(out, summary)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&tolerance, "tolerance", "t", 1, "allowed relative error in percent")
	return cmd
}
