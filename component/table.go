package component

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/waverecipe/scattering"
)

// AssignTable installs values as the component's scattering data, or merges
// them into the rows already present (overlapping rows replaced, new rows
// appended). values is not retained.
//
// values must carry the Frequency column and may only carry gain columns of
// ports 1..Ports(); gain columns it lacks are added as Missing so the column
// set stays {Frequency} ∪ dependencies ∪ {Gain(i,j)}.
func (c *Component) AssignTable(values *scattering.Table) error {
	if values == nil {
		return fmt.Errorf("%w: nil table", scattering.ErrSchemaMismatch)
	}
	if !values.HasColumn(scattering.FrequencyHeader) {
		return fmt.Errorf("%w: missing %q column", scattering.ErrSchemaMismatch, scattering.FrequencyHeader)
	}
	for _, name := range values.Columns() {
		out, in, ok := scattering.ParseGainHeader(name)
		if !ok {
			continue
		}
		if out > c.ports || in > c.ports {
			return fmt.Errorf("%w: column %q on a %d-port", scattering.ErrSchemaMismatch, name, c.ports)
		}
		if name != scattering.GainHeader(out, in) {
			return fmt.Errorf("%w: non-canonical gain column %q", scattering.ErrSchemaMismatch, name)
		}
	}

	prepared := values.Clone()
	for _, name := range scattering.GainHeaders(c.ports) {
		if !prepared.HasColumn(name) {
			_ = prepared.AddColumn(name, scattering.Missing)
		}
	}

	if c.table.Len() == 0 {
		c.table = prepared
		return nil
	}
	merged, err := c.table.Merge(prepared, scattering.Outer)
	if err != nil {
		return err
	}
	c.table = merged

	return nil
}

// Rows returns the rows matching every filter, e.g.
// Rows(scattering.Where(scattering.FrequencyHeader, scattering.Number(1e9))).
func (c *Component) Rows(filters ...scattering.Filter) (*scattering.Table, error) {
	return c.table.Select(nil, filters...)
}

// Frequencies returns the distinct numeric frequencies in table order.
func (c *Component) Frequencies() []float64 {
	vals, _ := c.table.Distinct(scattering.FrequencyHeader)
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		}
	}

	return out
}

// Matrix returns the Ports()×Ports() gain matrix (dB) of the first row
// matching filters: element (out-1, in-1) is Gain(out,in), NaN when missing.
func (c *Component) Matrix(filters ...scattering.Filter) (*mat.Dense, error) {
	rows, err := c.Rows(filters...)
	if err != nil {
		return nil, err
	}
	if rows.Len() == 0 {
		return nil, ErrNoData
	}

	m := mat.NewDense(c.ports, c.ports, nil)
	for out := 1; out <= c.ports; out++ {
		for in := 1; in <= c.ports; in++ {
			v, err := rows.Get(scattering.GainHeader(out, in), 0)
			if err != nil {
				return nil, err
			}
			f, ok := v.Float()
			if !ok {
				f = math.NaN()
			}
			m.Set(out-1, in-1, f)
		}
	}

	return m, nil
}
