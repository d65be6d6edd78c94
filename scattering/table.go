package scattering

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Sentinel errors for table operations.
var (
	// ErrSchemaMismatch indicates an operation referenced a column the table
	// does not have, or two tables whose columns cannot be lined up.
	ErrSchemaMismatch = errors.New("scattering: schema mismatch")

	// ErrDuplicateColumn indicates a column name that is already taken.
	ErrDuplicateColumn = errors.New("scattering: duplicate column")

	// ErrRowOutOfRange indicates a row index outside [0, Len()).
	ErrRowOutOfRange = errors.New("scattering: row out of range")
)

// Table is a column-oriented table with a dynamic column set. Each column
// holds one Value per row; all columns have the same length.
//
// Tables are not safe for concurrent mutation.
type Table struct {
	names []string       // column order
	index map[string]int // name → position in names/data
	data  [][]Value      // data[column][row]
	rows  int
}

// New returns an empty table with the given columns. Repeated names are
// kept once.
func New(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, dup := t.index[c]; dup {
			continue
		}
		t.index[c] = len(t.names)
		t.names = append(t.names, c)
		t.data = append(t.data, nil)
	}

	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// HasColumn reports whether name is a column of t.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// AddColumn appends a column filled with fill.
func (t *Table) AddColumn(name string, fill Value) error {
	if t.HasColumn(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	col := make([]Value, t.rows)
	for i := range col {
		col[i] = fill
	}
	t.index[name] = len(t.names)
	t.names = append(t.names, name)
	t.data = append(t.data, col)

	return nil
}

// AppendRow appends one row given in column order.
func (t *Table) AppendRow(values ...Value) error {
	if len(values) != len(t.names) {
		return fmt.Errorf("%w: row has %d values, table has %d columns", ErrSchemaMismatch, len(values), len(t.names))
	}
	for c, v := range values {
		t.data[c] = append(t.data[c], v)
	}
	t.rows++

	return nil
}

// AppendRecord appends one row given by column name; absent columns are
// Missing. Unknown names are rejected.
func (t *Table) AppendRecord(record map[string]Value) error {
	row := make([]Value, len(t.names))
	for name, v := range record {
		c, ok := t.index[name]
		if !ok {
			return fmt.Errorf("%w: unknown column %q", ErrSchemaMismatch, name)
		}
		row[c] = v
	}

	return t.AppendRow(row...)
}

// Get returns the cell at (column, row).
func (t *Table) Get(column string, row int) (Value, error) {
	c, ok := t.index[column]
	if !ok {
		return Missing, fmt.Errorf("%w: unknown column %q", ErrSchemaMismatch, column)
	}
	if row < 0 || row >= t.rows {
		return Missing, fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}

	return t.data[c][row], nil
}

// Set overwrites the cell at (column, row).
func (t *Table) Set(column string, row int, v Value) error {
	c, ok := t.index[column]
	if !ok {
		return fmt.Errorf("%w: unknown column %q", ErrSchemaMismatch, column)
	}
	if row < 0 || row >= t.rows {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	t.data[c][row] = v

	return nil
}

// Column returns a copy of one column's values.
func (t *Table) Column(name string) ([]Value, error) {
	c, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrSchemaMismatch, name)
	}

	return append([]Value(nil), t.data[c]...), nil
}

// Row returns row i as name → value.
func (t *Table) Row(i int) (map[string]Value, error) {
	if i < 0 || i >= t.rows {
		return nil, fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}
	out := make(map[string]Value, len(t.names))
	for c, name := range t.names {
		out[name] = t.data[c][i]
	}

	return out, nil
}

// Distinct returns the non-missing values of a column in order of first
// appearance.
func (t *Table) Distinct(column string) ([]Value, error) {
	c, ok := t.index[column]
	if !ok {
		return nil, fmt.Errorf("%w: unknown column %q", ErrSchemaMismatch, column)
	}
	seen := make(map[Value]struct{})
	var out []Value
	for _, v := range t.data[c] {
		if v.IsMissing() {
			continue
		}
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out, nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := New(t.names...)
	for c := range t.data {
		out.data[c] = append([]Value(nil), t.data[c]...)
	}
	out.rows = t.rows

	return out
}

// ColumnFilter decides which columns Select keeps.
type ColumnFilter func(name string) bool

// AllColumns keeps every column.
func AllColumns(string) bool { return true }

// KeepColumns keeps exactly the named columns.
func KeepColumns(names ...string) ColumnFilter {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	return func(name string) bool {
		_, ok := set[name]
		return ok
	}
}

// MatchColumns keeps columns whose name matches the regular expression.
func MatchColumns(pattern string) (ColumnFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("scattering: column pattern: %w", err)
	}

	return re.MatchString, nil
}

// Filter keeps rows whose Column equals Value.
type Filter struct {
	Column string
	Value  Value
}

// Where builds a Filter.
func Where(column string, v Value) Filter { return Filter{Column: column, Value: v} }

// Select returns a new table with the columns accepted by keep (nil keeps
// all) and the rows matching every filter. Filters may name columns that
// keep drops; they must exist in t.
func (t *Table) Select(keep ColumnFilter, filters ...Filter) (*Table, error) {
	if keep == nil {
		keep = AllColumns
	}
	for _, f := range filters {
		if !t.HasColumn(f.Column) {
			return nil, fmt.Errorf("%w: filter on unknown column %q", ErrSchemaMismatch, f.Column)
		}
	}

	var cols []string
	for _, n := range t.names {
		if keep(n) {
			cols = append(cols, n)
		}
	}
	out := New(cols...)
	for r := 0; r < t.rows; r++ {
		if !t.matches(r, filters) {
			continue
		}
		for oc, n := range cols {
			out.data[oc] = append(out.data[oc], t.data[t.index[n]][r])
		}
		out.rows++
	}

	return out, nil
}

func (t *Table) matches(row int, filters []Filter) bool {
	for _, f := range filters {
		if t.data[t.index[f.Column]][row] != f.Value {
			return false
		}
	}

	return true
}

// Rename returns a structural copy with column old renamed to name.
func (t *Table) Rename(old, name string) (*Table, error) {
	c, ok := t.index[old]
	if !ok {
		return nil, fmt.Errorf("%w: rename of unknown column %q", ErrSchemaMismatch, old)
	}
	if old == name {
		return t.Clone(), nil
	}
	if t.HasColumn(name) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	out := t.Clone()
	out.names[c] = name
	delete(out.index, old)
	out.index[name] = c

	return out, nil
}

// Equal reports whether t and o hold the same multiset of rows over the same
// column set; column order and row order are ignored.
func (t *Table) Equal(o *Table) bool {
	if t.rows != o.rows || len(t.names) != len(o.names) {
		return false
	}
	cols := t.Columns()
	sort.Strings(cols)
	for _, c := range cols {
		if !o.HasColumn(c) {
			return false
		}
	}

	counts := make(map[string]int, t.rows)
	for r := 0; r < t.rows; r++ {
		counts[t.rowKey(r, cols)]++
	}
	for r := 0; r < o.rows; r++ {
		k := o.rowKey(r, cols)
		if counts[k] == 0 {
			return false
		}
		counts[k]--
	}

	return true
}

// rowKey encodes the values of row r over cols into a map key.
func (t *Table) rowKey(r int, cols []string) string {
	var b strings.Builder
	for _, c := range cols {
		v := t.data[t.index[c]][r]
		b.WriteByte(byte('0' + v.kind))
		b.WriteString(v.Text())
		b.WriteByte(0)
	}

	return b.String()
}

// String renders the table as tab-separated text, for debugging.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.names, "\t"))
	for r := 0; r < t.rows; r++ {
		b.WriteByte('\n')
		for c := range t.names {
			if c > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(t.data[c][r].Text())
		}
	}

	return b.String()
}
