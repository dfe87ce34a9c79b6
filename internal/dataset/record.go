package dataset

import (
	"encoding/json"
)

// Value is one cell of a record: the original CSV text plus, when the column
// is a declared numeric metric and the decorated text parsed, its float form.
type Value struct {
	Raw     string
	Num     float64
	Numeric bool
}

// StringValue returns a plain text value.
func StringValue(s string) Value {
	return Value{Raw: s}
}

// NumberValue returns a parsed numeric value. Raw keeps the original text so
// normalization stays lossless.
func NumberValue(raw string, n float64) Value {
	return Value{Raw: raw, Num: n, Numeric: true}
}

// Float returns the numeric form and whether one exists.
func (v Value) Float() (float64, bool) {
	return v.Num, v.Numeric
}

// MarshalJSON renders numeric values as JSON numbers and everything else as
// strings, so serialized records look like the normalized rows the dashboard
// and the LLM context expect.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Num)
	}
	return json.Marshal(v.Raw)
}

// Record is one normalized CSV row, keyed by header name. The field set is
// driven by the CSV header, not statically enumerable.
type Record map[string]Value

// Text returns the original string for a field, or "" when absent.
func (r Record) Text(column string) string {
	return r[column].Raw
}

// Number returns the parsed float for a field and whether the field held one.
func (r Record) Number(column string) (float64, bool) {
	return r[column].Float()
}

// NumberOrZero returns the parsed float for a field, or 0 when the field is
// absent or non-numeric. Matches the tolerant zero-default the aggregations
// and top-performer sorts rely on.
func (r Record) NumberOrZero(column string) float64 {
	n, _ := r[column].Float()
	return n
}

// Dataset is the ordered, immutable sequence of normalized records loaded
// once at process start. Row order is CSV order and serves as the stable
// tiebreak for rankings.
type Dataset []Record

// Column collects the values of one column across all records, preserving
// row order. Absent fields yield zero Values, which the numeric coercion in
// Average and Sum discards.
func (d Dataset) Column(name string) []Value {
	out := make([]Value, 0, len(d))
	for _, rec := range d {
		out = append(out, rec[name])
	}
	return out
}
