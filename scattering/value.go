package scattering

import (
	"math"
	"strconv"
)

// Kind discriminates the scalar held by a Value.
type Kind uint8

const (
	// KindMissing marks an absent cell (the zero Value).
	KindMissing Kind = iota
	// KindNumber marks a float64 cell.
	KindNumber
	// KindString marks a text cell.
	KindString
)

// Value is one table cell: a number, a string, or Missing.
//
// Values are comparable with ==, so they can key maps. NaN never reaches a
// Value: Number(NaN) is Missing.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Missing is the absent value.
var Missing = Value{}

// Number wraps f; NaN becomes Missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Missing
	}
	if f == 0 {
		f = 0 // fold -0 into +0 so equal numbers compare equal
	}

	return Value{kind: KindNumber, num: f}
}

// String wraps s.
func String(s string) Value { return Value{kind: KindString, str: s} }

// ParseColumn reads the CSV fields of one column with a single type: the
// column is numeric only when every non-empty field parses as a float,
// otherwise every non-empty field is kept as a String. "" is always Missing.
func ParseColumn(fields []string) []Value {
	out := make([]Value, len(fields))
	numeric := true
	for i, field := range fields {
		if field == "" {
			continue
		}
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			numeric = false
			break
		}
		out[i] = Number(f)
	}
	if numeric {
		return out
	}
	for i, field := range fields {
		if field == "" {
			out[i] = Missing
			continue
		}
		out[i] = String(field)
	}

	return out
}

// Kind reports the scalar kind.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is absent.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the numeric content; ok is false for strings and Missing.
func (v Value) Float() (f float64, ok bool) {
	if v.kind != KindNumber {
		return math.NaN(), false
	}

	return v.num, true
}

// Text renders v the way it is written to CSV: Missing is "", numbers use the
// shortest round-tripping form.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	}

	return ""
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.kind == KindMissing {
		return "<missing>"
	}

	return v.Text()
}

// Less orders Missing < numbers < strings; numbers numerically, strings bytewise.
func (v Value) Less(o Value) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case KindNumber:
		return v.num < o.num
	case KindString:
		return v.str < o.str
	}

	return false
}

// Add sums two decibel values following the cascade rule: Missing contributes
// nothing, so Add(Missing, x) == x and Add(x, Missing) == x.
// Non-numeric operands are treated as Missing.
func Add(total, contribution Value) Value {
	c, ok := contribution.Float()
	if !ok {
		return total
	}
	t, ok := total.Float()
	if !ok {
		return Number(c)
	}

	return Number(t + c)
}
