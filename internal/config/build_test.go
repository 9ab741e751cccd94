package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernandezvara/passentropy"
	"github.com/fernandezvara/passentropy/internal/logging"
)

func TestNewEstimatorFromConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "words.txt", "hunter\ndragon\n")
	path := writeFile(t, dir, "config.toml", `
[dictionaries]
builtin = false
files = ["words.txt"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	est, err := cfg.NewEstimator(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"words.txt"}, est.Store().Lists())

	res, err := est.Estimate("dragon")
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, passentropy.Dictionary, res.Matches[0].Type)
	assert.InDelta(t, 1.0, res.Entropy, 1e-9)
}

func TestNewEstimatorMissingWordList(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dictionaries.Files = []string{"/nonexistent/words.txt"}
	_, err := cfg.NewEstimator(nil)
	assert.Error(t, err)
}

func TestEstimatorOptionsUnknownLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keyboards.Layouts = []string{"colemak"}
	_, err := cfg.EstimatorOptions(nil)
	assert.Error(t, err)
}

func TestNewPolicyFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dictionaries.Builtin = false
	cfg.Policy.MinLength = 4
	cfg.Policy.RequireNumbers = true
	cfg.Policy.MinEntropy = 0

	est, err := cfg.NewEstimator(nil)
	require.NoError(t, err)
	policy := cfg.NewPolicy(est)

	ok, _ := policy.Validate("abcdefgh")
	assert.False(t, ok, "missing digit should fail")
	ok, _ = policy.Validate("qz7vbx")
	assert.True(t, ok)
}

func TestLoggerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	lc, err := cfg.LoggerConfig()
	require.NoError(t, err)
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.Equal(t, logging.FormatJSON, lc.Format)

	var buf bytes.Buffer
	lc.Writer = &buf
	logger, err := logging.New(lc)
	require.NoError(t, err)

	est, err := cfg.NewEstimator(logger.Logger)
	require.NoError(t, err)
	_, err = est.Estimate("correcthorse")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"estimate"`)
	assert.NotContains(t, buf.String(), "correcthorse")
}

func TestLoggerConfigInvalidLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "chatty"
	_, err := cfg.LoggerConfig()
	assert.Error(t, err)
}
