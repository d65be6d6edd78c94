package component

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/waverecipe/scattering"
)

// MaxPowersHeader prefixes the optional metadata line of the CSV form.
const MaxPowersHeader = "MaxPowers"

// ErrParse indicates malformed persisted input.
var ErrParse = errors.New("component: parse error")

var maxPowersLine = regexp.MustCompile(`^` + MaxPowersHeader + `\s*=\s*\[(.*)\]\s*$`)

// WriteCSV writes the MaxPowers line followed by the table (header row, one
// line per row, "\n" terminated). Unbounded powers are written as inf and
// missing cells as empty fields.
func (c *Component) WriteCSV(w io.Writer) error {
	powers := make([]string, len(c.maxPowers))
	for i, p := range c.maxPowers {
		powers[i] = formatPower(p)
	}
	if _, err := fmt.Fprintf(w, "%s=[%s]\n", MaxPowersHeader, strings.Join(powers, ", ")); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cols := c.table.Columns()
	if err := cw.Write(cols); err != nil {
		return err
	}
	record := make([]string, len(cols))
	for r := 0; r < c.table.Len(); r++ {
		for i, name := range cols {
			v, _ := c.table.Get(name, r)
			record[i] = v.Text()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// ReadCSV parses the form written by WriteCSV. The MaxPowers line is
// optional (unbounded when absent). The port count is the highest port
// index found in any gain column; gain columns the file lacks are filled
// with Missing.
func ReadCSV(r io.Reader) (*Component, error) {
	br := bufio.NewReader(r)
	first, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	var opts []Option
	body := io.Reader(br)
	if strings.HasPrefix(strings.TrimSpace(first), MaxPowersHeader) {
		powers, err := parseMaxPowers(strings.TrimSpace(first))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMaxPowers(powers...))
	} else {
		body = io.MultiReader(strings.NewReader(first), br)
	}

	cr := csv.NewReader(body)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header", ErrParse)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	ports, err := portsFromHeader(header)
	if err != nil {
		return nil, err
	}

	table := scattering.New(header...)
	if len(table.Columns()) != len(header) {
		return nil, fmt.Errorf("%w: duplicate column in header", ErrParse)
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	// one type per column: "007" next to "low" stays a string
	columns := make([][]scattering.Value, len(header))
	fields := make([]string, len(records))
	for c := range header {
		for r, record := range records {
			fields[r] = strings.TrimSpace(record[c])
		}
		columns[c] = scattering.ParseColumn(fields)
	}
	row := make([]scattering.Value, len(header))
	for r := range records {
		for c := range columns {
			row[c] = columns[c][r]
		}
		if err = table.AppendRow(row...); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
	}

	c, err := New(ports, opts...)
	if err != nil {
		return nil, err
	}
	if err = c.AssignTable(table); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadFile reads a component from a CSV file.
func LoadFile(path string) (*Component, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// SaveFile writes the component to a CSV file, replacing it.
func (c *Component) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = c.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func portsFromHeader(header []string) (int, error) {
	hasFrequency := false
	ports := 0
	for _, name := range header {
		if name == scattering.FrequencyHeader {
			hasFrequency = true
		}
		if out, in, ok := scattering.ParseGainHeader(name); ok {
			ports = max(ports, out, in)
		}
	}
	if !hasFrequency {
		return 0, fmt.Errorf("%w: header lacks %q", ErrParse, scattering.FrequencyHeader)
	}
	if ports == 0 {
		return 0, fmt.Errorf("%w: header has no gain column", ErrParse)
	}

	return ports, nil
}

func parseMaxPowers(line string) ([]float64, error) {
	m := maxPowersLine.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: malformed %s line %q", ErrParse, MaxPowersHeader, line)
	}
	if strings.TrimSpace(m[1]) == "" {
		return nil, nil
	}
	fields := strings.Split(m[1], ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: max power %q", ErrParse, strings.TrimSpace(f))
		}
		out[i] = v
	}

	return out, nil
}

func formatPower(p float64) string {
	if math.IsInf(p, 1) {
		return "inf"
	}

	return strconv.FormatFloat(p, 'g', -1, 64)
}
