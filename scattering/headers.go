package scattering

import (
	"fmt"
	"regexp"
	"strconv"
)

// FrequencyHeader names the frequency axis column.
const FrequencyHeader = "Frequency (Hz)"

// gainHeaderPattern accepts the compact form "S21 (dB)" and the separated
// form "S12,3 (dB)" used once a port index reaches two digits.
var gainHeaderPattern = regexp.MustCompile(`^S(?:(\d)(\d)|(\d+),(\d+)) \(dB\)$`)

// GainHeader names the column holding Gain(out,in), the transmission from
// port in to port out (out == in is the reflection at that port).
func GainHeader(out, in int) string {
	if out < 10 && in < 10 {
		return fmt.Sprintf("S%d%d (dB)", out, in)
	}

	return fmt.Sprintf("S%d,%d (dB)", out, in)
}

// ParseGainHeader extracts (out, in) from a gain column name.
func ParseGainHeader(name string) (out, in int, ok bool) {
	m := gainHeaderPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	o, i := m[1], m[2]
	if o == "" {
		o, i = m[3], m[4]
	}
	out, _ = strconv.Atoi(o)
	in, _ = strconv.Atoi(i)
	if out < 1 || in < 1 {
		return 0, 0, false
	}

	return out, in, true
}

// IsGainHeader reports whether name is a gain column.
func IsGainHeader(name string) bool {
	_, _, ok := ParseGainHeader(name)
	return ok
}

// GainHeaders lists every Gain(out,in) column of an n-port in canonical
// order: out-major, in-minor (S11, S12, S21, S22 for n == 2).
func GainHeaders(n int) []string {
	out := make([]string, 0, n*n)
	for o := 1; o <= n; o++ {
		for i := 1; i <= n; i++ {
			out = append(out, GainHeader(o, i))
		}
	}

	return out
}

// IsAxis reports whether name indexes rows rather than holding a gain:
// the frequency column and every dependency column are axes.
func IsAxis(name string) bool { return !IsGainHeader(name) }

// Dependencies lists the dependency columns of t in column order: every
// column except Frequency and the gain columns.
func Dependencies(t *Table) []string {
	var deps []string
	for _, c := range t.Columns() {
		if c != FrequencyHeader && !IsGainHeader(c) {
			deps = append(deps, c)
		}
	}

	return deps
}
