// Command waverecipe loads a YAML netlist, synthesizes the circuit it
// describes and writes the equivalent component as CSV, optionally with a
// gain chart.
//
//	waverecipe -netlist frontend.yaml -out frontend.csv -plot s21.png
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/katalvlaran/waverecipe/chart"
	"github.com/katalvlaran/waverecipe/circuit"
	"github.com/katalvlaran/waverecipe/netlist"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("waverecipe: ")

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, os.Stdout)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config, stdout io.Writer) error {
	n, err := netlist.Load(cfg.Netlist)
	if err != nil {
		return err
	}

	opts := []circuit.Option{circuit.WithPathCacheSize(cfg.PathCache)}
	if cfg.Policy != "" {
		p, err := circuit.ParseFrequencyPolicy(cfg.Policy)
		if err != nil {
			return err
		}
		opts = append(opts, circuit.WithFrequencyPolicy(p))
	}
	if cfg.Verbose {
		opts = append(opts, circuit.WithLogger(log.Default()))
	}

	c, err := n.Build(filepath.Dir(cfg.Netlist), opts...)
	if err != nil {
		return err
	}
	res, err := c.SynthesizeContext(ctx)
	if err != nil {
		return err
	}
	log.Printf("%d nodes, %d wires → %d-port, %d rows (policy %s)",
		len(c.Nodes()), len(c.Wires()), res.Ports(), res.Table().Len(), c.Policy())

	if cfg.Out == "-" || cfg.Out == "" {
		err = res.WriteCSV(stdout)
	} else {
		err = res.SaveFile(cfg.Out)
	}
	if err != nil {
		return err
	}

	if cfg.Plot != "" {
		p, err := chart.Gain(res, cfg.PlotOut, cfg.PlotIn)
		if err != nil {
			return err
		}
		if err = chart.Save(p, cfg.Plot); err != nil {
			return err
		}
		log.Printf("chart written to %s", cfg.Plot)
	}

	return nil
}
