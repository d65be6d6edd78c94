package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/waverecipe/circuit"
	"github.com/katalvlaran/waverecipe/component"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.csv":    "MaxPowers=[10, 10]\nFrequency (Hz),S21 (dB)\n1e9,-3\n2e9,-3.5\n",
		"b.csv":    "Frequency (Hz),S21 (dB)\n1e9,-5\n",
		"net.yaml": "components:\n  - node: A\n    file: a.csv\n  - node: B\n    file: b.csv\nwires:\n  - from: A:2\n    to: B:1\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	return filepath.Join(dir, "net.yaml")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(envPolicy, "all")
	t.Setenv(envPathCache, "8")

	cfg, err := loadConfig([]string{"-netlist", "x.yaml", "-plot-port", "1, 2"})
	require.NoError(t, err)
	assert.Equal(t, "all", cfg.Policy)
	assert.Equal(t, 8, cfg.PathCache)
	assert.Equal(t, "-", cfg.Out)
	assert.Equal(t, 1, cfg.PlotOut)
	assert.Equal(t, 2, cfg.PlotIn)

	cfg, err = loadConfig([]string{"-netlist", "x.yaml", "-policy", "any"})
	require.NoError(t, err)
	assert.Equal(t, "any", cfg.Policy, "flags override the environment")

	_, err = loadConfig(nil)
	assert.Error(t, err)
	_, err = loadConfig([]string{"-netlist", "x.yaml", "-policy", "most"})
	assert.ErrorIs(t, err, circuit.ErrOptionViolation)
	_, err = loadConfig([]string{"-netlist", "x.yaml", "-plot-port", "21"})
	assert.Error(t, err)

	t.Setenv(envPathCache, "lots")
	_, err = loadConfig([]string{"-netlist", "x.yaml"})
	assert.Error(t, err)
}

func TestRun_WritesSynthesizedComponent(t *testing.T) {
	path := writeFixture(t)
	cfg := &config{Netlist: path, Out: "-", PathCache: 4, PlotOut: 2, PlotIn: 1}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &out))

	res, err := component.ReadCSV(strings.NewReader(out.String()))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Ports())
	assert.Equal(t, []float64{1e9}, res.Frequencies(), "b only has 1 GHz")
	m, err := res.Matrix()
	require.NoError(t, err)
	assert.Equal(t, -8.0, m.At(1, 0))
}

func TestRun_FileAndChart(t *testing.T) {
	path := writeFixture(t)
	dir := filepath.Dir(path)
	cfg := &config{
		Netlist:   path,
		Out:       filepath.Join(dir, "out.csv"),
		Plot:      filepath.Join(dir, "s21.svg"),
		PathCache: 4,
		PlotOut:   2,
		PlotIn:    1,
		Policy:    "all",
	}
	require.NoError(t, run(context.Background(), cfg, &bytes.Buffer{}))

	res, err := component.LoadFile(cfg.Out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Ports())
	_, err = os.Stat(cfg.Plot)
	assert.NoError(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	path := writeFixture(t)
	cfg := &config{Netlist: path, Out: "-", PathCache: 4, PlotOut: 2, PlotIn: 1}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	assert.ErrorIs(t, run(ctx, cfg, &out), context.Canceled)
	assert.Zero(t, out.Len())
}
