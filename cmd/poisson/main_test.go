package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aouyang1/go-poisson"
	"github.com/aouyang1/go-poisson/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSolveCommand(t *testing.T) {
	dir := t.TempDir()
	grid := filepath.Join(dir, "output.txt")
	exact := filepath.Join(dir, "output2.txt")
	res := filepath.Join(dir, "results.json")
	plot := filepath.Join(dir, "grid.html")

	out, err := execute(t, "solve",
		"--problem", "constant",
		"--partitions", "4",
		"--method", "auto",
		"--grid", grid,
		"--exact", exact,
		"--json", res,
		"--plot", plot,
		"--log-level", "warn",
	)
	require.Nil(t, err)
	assert.Contains(t, out, "unknowns:   9")
	assert.Contains(t, out, "method:     auto")

	content, err := os.ReadFile(exact)
	require.Nil(t, err)
	assert.Equal(t, "1 1 1 1 1\n1 1 1 1 1\n1 1 1 1 1\n1 1 1 1 1\n1 1 1 1 1\n", string(content))

	_, err = os.Stat(grid)
	assert.Nil(t, err)
	_, err = os.Stat(plot)
	assert.Nil(t, err)

	loaded, err := poisson.ReadResults(res)
	require.Nil(t, err)
	assert.Equal(t, "constant", loaded.Problem)
	assert.Equal(t, 4, loaded.Partitions)
}

func TestSolveCommandConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Problem = "saddle"
	cfg.Partitions = 3
	cfg.Method = "gaussian"
	cfg.Output.Grid = ""
	cfg.Output.Exact = ""
	cfg.Output.JSON = filepath.Join(dir, "results.json")
	path := filepath.Join(dir, "config.yaml")
	require.Nil(t, config.Save(path, cfg))

	// flags take precedence over the file
	out, err := execute(t, "solve", "--config", path, "--partitions", "4", "--log-level", "error")
	require.Nil(t, err)
	assert.Contains(t, out, "problem:    saddle")
	assert.Contains(t, out, "method:     gaussian")

	loaded, err := poisson.ReadResults(cfg.Output.JSON)
	require.Nil(t, err)
	assert.Equal(t, 4, loaded.Partitions)
	assert.Less(t, loaded.Scores.MaxAbs, 1e-7)
}

func TestExactCommand(t *testing.T) {
	out, err := execute(t, "exact", "--problem", "constant", "--partitions", "2", "--exact", "", "--log-level", "error")
	require.Nil(t, err)
	assert.Equal(t, "1 1 1\n1 1 1\n1 1 1\n", out)
}

func TestStudyCommands(t *testing.T) {
	dir := t.TempDir()
	studyJSON := filepath.Join(dir, "study.json")

	out, err := execute(t, "error", "--problem", "harmonic-sin", "--sizes", "4,8", "--method", "cholesky", "--json", studyJSON, "--log-level", "error")
	require.Nil(t, err)
	assert.Contains(t, out, "GRID L2")
	content, err := os.ReadFile(studyJSON)
	require.Nil(t, err)
	assert.Contains(t, string(content), `"partitions": 8`)

	plot := filepath.Join(dir, "bench.html")
	out, err = execute(t, "bench", "--sizes", "3,5", "--methods", "gaussian,auto", "--plot", plot, "--log-level", "error")
	require.Nil(t, err)
	assert.Contains(t, out, "gaussian")
	assert.Contains(t, out, "auto")
	_, err = os.Stat(plot)
	assert.Nil(t, err)
}

func TestCommandErrors(t *testing.T) {
	testData := map[string]struct {
		args []string
	}{
		"unknown problem": {
			args: []string{"solve", "--problem", "missing", "--grid", "", "--exact", ""},
		},
		"unknown method": {
			args: []string{"solve", "--method", "lu", "--grid", "", "--exact", ""},
		},
		"too few partitions": {
			args: []string{"solve", "--partitions", "1", "--grid", "", "--exact", ""},
		},
		"invalid log level": {
			args: []string{"solve", "--log-level", "loud", "--grid", "", "--exact", ""},
		},
		"unknown bench method": {
			args: []string{"bench", "--sizes", "3", "--methods", "lu"},
		},
		"missing config": {
			args: []string{"solve", "--config", "missing.yaml"},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, td.args...)
			assert.NotNil(t, err)
		})
	}
}

func TestProblemsAndInit(t *testing.T) {
	out, err := execute(t, "problems")
	require.Nil(t, err)
	for _, name := range poisson.ListProblems() {
		assert.Contains(t, out, name)
	}

	path := filepath.Join(t.TempDir(), "poisson.yaml")
	_, err = execute(t, "init", path)
	require.Nil(t, err)
	cfg, err := config.Load(path)
	require.Nil(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}
