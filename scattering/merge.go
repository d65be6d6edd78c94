package scattering

import "fmt"

// MergeMode selects how Merge treats rows without a counterpart.
type MergeMode int

const (
	// Outer keeps every row of both tables; rows of the receiver that have a
	// counterpart take the other table's values (replacement), rows of the
	// other table without counterpart are appended.
	Outer MergeMode = iota
	// Inner keeps only rows present in both tables.
	Inner
)

func (m MergeMode) String() string {
	switch m {
	case Outer:
		return "outer"
	case Inner:
		return "inner"
	}

	return fmt.Sprintf("MergeMode(%d)", int(m))
}

// Merge joins t with o on every axis column (frequency and dependencies)
// the two tables share; gain columns are never join keys.
//
// The result has t's columns followed by the columns only o has. For a
// matched pair, columns present in o take o's value and the rest keep t's.
// When several rows of o share a key the last one wins.
//
// Merge fails with ErrSchemaMismatch when no axis column is shared.
func (t *Table) Merge(o *Table, mode MergeMode) (*Table, error) {
	var keys []string
	for _, n := range t.names {
		if IsAxis(n) && o.HasColumn(n) {
			keys = append(keys, n)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no shared key column to merge on", ErrSchemaMismatch)
	}
	if mode != Outer && mode != Inner {
		return nil, fmt.Errorf("scattering: unknown merge mode %v", mode)
	}

	cols := t.Columns()
	for _, n := range o.names {
		if !t.HasColumn(n) {
			cols = append(cols, n)
		}
	}
	out := New(cols...)

	latest := make(map[string]int, o.rows)
	for r := 0; r < o.rows; r++ {
		latest[o.rowKey(r, keys)] = r
	}
	matched := make(map[string]bool, o.rows)

	row := make([]Value, len(cols))
	for r := 0; r < t.rows; r++ {
		k := t.rowKey(r, keys)
		or, ok := latest[k]
		if !ok && mode == Inner {
			continue
		}
		for c, n := range cols {
			switch {
			case ok && o.HasColumn(n):
				row[c] = o.data[o.index[n]][or]
			case t.HasColumn(n):
				row[c] = t.data[t.index[n]][r]
			default:
				row[c] = Missing
			}
		}
		if ok {
			matched[k] = true
		}
		_ = out.AppendRow(row...)
	}

	if mode == Outer {
		for r := 0; r < o.rows; r++ {
			if matched[o.rowKey(r, keys)] {
				continue
			}
			for c, n := range cols {
				if o.HasColumn(n) {
					row[c] = o.data[o.index[n]][r]
				} else {
					row[c] = Missing
				}
			}
			_ = out.AppendRow(row...)
		}
	}

	return out, nil
}

// ExpandColumn returns a copy of t with a new column name, every existing
// row repeated once per entry of values and tagged with it. Copies are laid
// out value-major: all rows tagged values[0], then all rows tagged
// values[1], and so on. Row positions of t are not preserved.
//
// With no values the column is added filled with Missing and no row is
// dropped.
func (t *Table) ExpandColumn(name string, values []Value) (*Table, error) {
	if t.HasColumn(name) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if len(values) == 0 {
		out := t.Clone()
		_ = out.AddColumn(name, Missing)
		return out, nil
	}

	out := New(append(t.Columns(), name)...)
	last := len(t.names)
	for _, v := range values {
		for c := range t.data {
			out.data[c] = append(out.data[c], t.data[c]...)
		}
		for r := 0; r < t.rows; r++ {
			out.data[last] = append(out.data[last], v)
		}
	}
	out.rows = t.rows * len(values)

	return out, nil
}

// Lookup pairs every row of t with the first row of o holding equal values
// on cols, or -1 when o has none. Every name in cols must be a column of
// both tables.
func (t *Table) Lookup(o *Table, cols []string) ([]int, error) {
	for _, c := range cols {
		if !t.HasColumn(c) || !o.HasColumn(c) {
			return nil, fmt.Errorf("%w: lookup on %q", ErrSchemaMismatch, c)
		}
	}

	first := make(map[string]int, o.rows)
	for r := 0; r < o.rows; r++ {
		k := o.rowKey(r, cols)
		if _, seen := first[k]; !seen {
			first[k] = r
		}
	}

	out := make([]int, t.rows)
	for r := range out {
		m, ok := first[t.rowKey(r, cols)]
		if !ok {
			m = -1
		}
		out[r] = m
	}

	return out, nil
}
