package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernandezvara/passentropy"
)

// testConfig writes a config that uses only a small word list, so results
// do not depend on the bundled lists.
func testConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.txt"), []byte("hunter\ndragon\n"), 0o644))
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[dictionaries]
builtin = false
files = ["words.txt"]

[policy]
min_length = 8
max_length = 64
min_entropy = 20
`), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestEstimateJSON(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, "", "estimate", "--config", cfg, "--json", "dragon")
	require.NoError(t, err)

	var got estimateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 1.0, got.Entropy, 1e-9)
	assert.Equal(t, "Weak", got.Strength)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, passentropy.Dictionary, got.Matches[0].Type)
	assert.Equal(t, "dragon", got.Matches[0].Token)
}

func TestEstimateStdin(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, "hunter\r\n\ndragon\n", "estimate", "--config", cfg, "--json")
	require.NoError(t, err)

	scanner := bufio.NewScanner(strings.NewReader(out))
	var results []estimateOutput
	for scanner.Scan() {
		var o estimateOutput
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &o))
		results = append(results, o)
	}
	require.Len(t, results, 2)
	assert.InDelta(t, 0.0, results[0].Entropy, 1e-9)
	assert.InDelta(t, 1.0, results[1].Entropy, 1e-9)
}

func TestEstimateUserInfo(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, "", "estimate", "--config", cfg, "--json", "--user-info", "zebulon", "zebulon")
	require.NoError(t, err)

	var got estimateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Matches, 1)
	assert.Equal(t, passentropy.UserWord, got.Matches[0].Type)
}

func TestEstimateText(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, "", "estimate", "--config", cfg, "hunter123")
	require.NoError(t, err)
	assert.Contains(t, out, "entropy:")
	assert.Contains(t, out, "dictionary")
	assert.Contains(t, out, "sequence")
}

func TestEstimateWatchNeedsConfig(t *testing.T) {
	_, err := run(t, "", "estimate", "--watch", "abc")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, "", "check", "--config", cfg, "hunter")
	require.Error(t, err)
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "too short")
	assert.Contains(t, out, "below threshold")

	out, err = run(t, "", "check", "--config", cfg, "qz7!vbx#Lw2p")
	require.NoError(t, err)
	assert.Contains(t, out, "accepted")
}

func TestCheckJSON(t *testing.T) {
	cfg := testConfig(t)
	out, err := run(t, "", "check", "--config", cfg, "--json", "dragondragon")
	require.Error(t, err)

	var got checkOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Accepted)
	assert.NotEmpty(t, got.Findings)
}

func TestVerify(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("# comment\nhunter 0\n\ndragon 1.00\n"), 0o644))
	out, err := run(t, "", "verify", "--config", cfg, good)
	require.NoError(t, err)
	assert.Contains(t, out, "2/2 within")

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("dragon 5\n"), 0o644))
	out, err = run(t, "", "verify", "--config", cfg, bad)
	require.Error(t, err)
	assert.Contains(t, out, "FAIL")

	_, err = run(t, "", "verify", "--config", cfg, "--tolerance", "90", bad)
	assert.NoError(t, err)
}

func TestParseVectors(t *testing.T) {
	vf, err := parseVectors(strings.NewReader("# header\n@words ranks.txt\n\nzxcvbn   5.83\ndo you know   25.51\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ranks.txt"}, vf.wordLists)
	require.Len(t, vf.vectors, 2)
	assert.Equal(t, "zxcvbn", vf.vectors[0].password)
	assert.Equal(t, 4, vf.vectors[0].line)
	assert.Equal(t, "do you know", vf.vectors[1].password)
	assert.InDelta(t, 25.51, vf.vectors[1].expected, 1e-9)

	_, err = parseVectors(strings.NewReader("lonely\n"))
	assert.Error(t, err)
	_, err = parseVectors(strings.NewReader("password many\n"))
	assert.Error(t, err)
	_, err = parseVectors(strings.NewReader("@words\n"))
	assert.Error(t, err)
}

func TestVerifyWordListDirective(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ranks.txt"), []byte("zebulon 8\n"), 0o644))

	// the directive replaces hunter and dragon from the config
	vectors := filepath.Join(dir, "vectors.txt")
	require.NoError(t, os.WriteFile(vectors, []byte("@words ranks.txt\nzebulon 3\n"), 0o644))
	out, err := run(t, "", "verify", "--config", cfg, vectors)
	require.NoError(t, err, out)
	assert.Contains(t, out, "1/1 within")

	missing := filepath.Join(dir, "missing.txt")
	require.NoError(t, os.WriteFile(missing, []byte("@words nope.txt\nzebulon 3\n"), 0o644))
	_, err = run(t, "", "verify", "--config", cfg, missing)
	assert.Error(t, err)
}

func TestVerifyReferenceVectors(t *testing.T) {
	out, err := run(t, "", "verify", filepath.Join("..", "..", "testdata", "vectors.txt"))
	require.NoError(t, err, out)
	assert.NotContains(t, out, "FAIL")
	assert.Contains(t, out, "52/52 within 1.0%")
}

func TestErrorPercent(t *testing.T) {
	assert.InDelta(t, 10.0, errorPercent(11, 10), 1e-9)
	assert.InDelta(t, 0.0, errorPercent(0, 0), 1e-9)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	out, err := run(t, "", "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	_, err = run(t, "", "config", "init", "--config", path)
	assert.Error(t, err, "existing file needs --force")

	out, err = run(t, "", "config", "show", "--config", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "reference_year: 2020")
}

func TestFormatCrackTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{time.Millisecond, "instant"},
		{90 * time.Second, "1m30s"},
		{36 * time.Hour, "1.5 days"},
		{time.Duration(math.MaxInt64), "centuries"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCrackTime(tt.d))
	}
}
