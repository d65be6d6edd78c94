package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/waverecipe/circuit"
)

// Environment variables read after .env is loaded; flags override them.
const (
	envPolicy    = "WAVERECIPE_POLICY"
	envPathCache = "WAVERECIPE_PATH_CACHE"
)

type config struct {
	Netlist   string
	Out       string
	Plot      string
	PlotOut   int
	PlotIn    int
	Policy    string // "" defers to the netlist
	PathCache int
	Verbose   bool
}

func loadConfig(args []string) (*config, error) {
	_ = godotenv.Load()

	cacheDefault := circuit.DefaultPathCacheSize
	if raw := strings.TrimSpace(os.Getenv(envPathCache)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envPathCache, err)
		}
		cacheDefault = n
	}

	cfg := &config{}
	fs := flag.NewFlagSet("waverecipe", flag.ContinueOnError)
	fs.StringVar(&cfg.Netlist, "netlist", "", "path to the YAML netlist")
	fs.StringVar(&cfg.Out, "out", "-", "CSV output path, - for stdout")
	fs.StringVar(&cfg.Plot, "plot", "", "optional chart output (.png, .svg, .pdf)")
	plotPort := fs.String("plot-port", "2,1", "gain to chart as out,in")
	fs.StringVar(&cfg.Policy, "policy", strings.TrimSpace(os.Getenv(envPolicy)), "frequency policy: any | all")
	fs.IntVar(&cfg.PathCache, "path-cache", cacheDefault, "shortest-path cache size")
	fs.BoolVar(&cfg.Verbose, "v", false, "log circuit diagnostics")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Netlist == "" {
		return nil, fmt.Errorf("-netlist is required")
	}
	if _, err := circuit.ParseFrequencyPolicy(cfg.Policy); err != nil {
		return nil, err
	}
	out, in, ok := strings.Cut(*plotPort, ",")
	var errOut, errIn error
	cfg.PlotOut, errOut = strconv.Atoi(strings.TrimSpace(out))
	cfg.PlotIn, errIn = strconv.Atoi(strings.TrimSpace(in))
	if !ok || errOut != nil || errIn != nil {
		return nil, fmt.Errorf("-plot-port: want out,in, got %q", *plotPort)
	}

	return cfg, nil
}
