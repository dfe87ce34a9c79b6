package dataset

import (
	"strconv"
	"strings"
)

// decorationStripper removes the unit decorations that appear on numeric
// columns: percent signs, the rupee symbol, thousands separators, and the
// "x" multiplier suffix (e.g. "3.8x", "₹1,200", "2.1%").
var decorationStripper = strings.NewReplacer("%", "", "₹", "", ",", "", "x", "")

// NormalizeRow converts one raw CSV row into a normalized Record. For every
// declared numeric column with a non-blank value, decorations are stripped
// and the remainder parsed as a float; values that fail to parse keep their
// original string. All other fields pass through unchanged.
//
// Normalization is total and idempotent: it never fails, never drops a
// field, and re-normalizing an already-normalized record is a no-op.
func NormalizeRow(schema *Schema, raw map[string]string) Record {
	rec := make(Record, len(raw))
	for column, val := range raw {
		if !schema.IsNumeric(column) || strings.TrimSpace(val) == "" {
			rec[column] = StringValue(val)
			continue
		}
		n, err := parseDecorated(val)
		if err != nil {
			rec[column] = StringValue(val)
			continue
		}
		rec[column] = NumberValue(val, n)
	}
	return rec
}

func parseDecorated(s string) (float64, error) {
	cleaned := strings.TrimSpace(decorationStripper.Replace(s))
	return strconv.ParseFloat(cleaned, 64)
}

// coerce turns an arbitrary cell into a float for aggregation: numeric values
// pass through, strings are reduced to their digit/sign/dot characters and
// parsed. The bool reports whether a usable number came out.
func coerce(v Value) (float64, bool) {
	if v.Numeric {
		return v.Num, true
	}
	var b strings.Builder
	for _, r := range v.Raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '+' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
