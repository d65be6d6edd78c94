// Package chart renders a component's gain curves with gonum/plot.
package chart

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/waverecipe/component"
	"github.com/katalvlaran/waverecipe/scattering"
)

// Default output size used by Save.
const (
	Width  = 8 * vg.Inch
	Height = 5 * vg.Inch
)

// series is one curve: the rows sharing a combination of dependency values.
type series struct {
	label string
	pts   plotter.XYs
}

// Gain plots Gain(out,in) in dB against frequency in Hz, one line per
// distinct combination of dependency values (in order of first appearance).
// Rows with a missing gain or a non-numeric frequency are skipped.
func Gain(c *component.Component, out, in int) (*plot.Plot, error) {
	if out < 1 || out > c.Ports() || in < 1 || in > c.Ports() {
		return nil, fmt.Errorf("%w: S(%d,%d) on a %d-port", component.ErrPortOutOfRange, out, in, c.Ports())
	}
	column := scattering.GainHeader(out, in)
	deps := c.Dependencies()
	table := c.Table()

	var curves []*series
	byLabel := make(map[string]*series)
	for r := 0; r < table.Len(); r++ {
		row, err := table.Row(r)
		if err != nil {
			return nil, err
		}
		x, okX := row[scattering.FrequencyHeader].Float()
		y, okY := row[column].Float()
		if !okX || !okY {
			continue
		}
		label := seriesLabel(column, deps, row)
		s, ok := byLabel[label]
		if !ok {
			s = &series{label: label}
			byLabel[label] = s
			curves = append(curves, s)
		}
		s.pts = append(s.pts, plotter.XY{X: x, Y: y})
	}
	if len(curves) == 0 {
		return nil, fmt.Errorf("%w: %s has no values", component.ErrNoData, column)
	}

	p := plot.New()
	p.Title.Text = strings.TrimSuffix(column, " (dB)")
	p.X.Label.Text = scattering.FrequencyHeader
	p.Y.Label.Text = "Gain (dB)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, s := range curves {
		sort.Slice(s.pts, func(a, b int) bool { return s.pts[a].X < s.pts[b].X })
		line, err := plotter.NewLine(s.pts)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		if len(deps) > 0 {
			p.Legend.Add(s.label, line)
		}
	}

	return p, nil
}

// Save renders p to path; the extension selects the format (png, svg, pdf, ...).
func Save(p *plot.Plot, path string) error {
	return p.Save(Width, Height, path)
}

func seriesLabel(column string, deps []string, row map[string]scattering.Value) string {
	if len(deps) == 0 {
		return column
	}
	parts := make([]string, len(deps))
	for i, d := range deps {
		parts[i] = d + "=" + row[d].String()
	}

	return strings.Join(parts, ", ")
}
