package dataset

import (
	"math"
	"strconv"
	"time"
)

// Kind discriminates the dynamic type of a cell value.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindTime
)

// Value is a typed semi-structured cell: exactly one of the payload fields is
// meaningful, selected by Kind. Spreadsheet exports mix numeric-as-text,
// date-like text and empty cells freely, so every accessor coerces rather
// than fails.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
	Time   time.Time
}

// Null returns the absent-value sentinel.
func Null() Value {
	return Value{Kind: KindNull}
}

// TextValue wraps a string cell.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// NumberValue wraps a numeric cell.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Number: f}
}

// TimeValue wraps an already-parsed instant.
func TimeValue(t time.Time) Value {
	return Value{Kind: KindTime, Time: t}
}

// IsNull reports whether the cell is absent.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// String coerces the value to text for exact-equality comparison and
// counting. Numbers render without a trailing ".0" when integral, matching
// how the source spreadsheets carry numeric codes.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		if v.Number == math.Trunc(v.Number) && math.Abs(v.Number) < 1e15 {
			return strconv.FormatInt(int64(v.Number), 10)
		}
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindTime:
		return v.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Int reports the value as an integer when it cleanly parses as one.
func (v Value) Int() (int, bool) {
	switch v.Kind {
	case KindNumber:
		if v.Number == math.Trunc(v.Number) {
			return int(v.Number), true
		}
		return 0, false
	case KindText:
		n, err := strconv.Atoi(v.Text)
		if err != nil {
			f, ferr := strconv.ParseFloat(v.Text, 64)
			if ferr != nil || f != math.Trunc(f) {
				return 0, false
			}
			return int(f), true
		}
		return n, true
	default:
		return 0, false
	}
}

// Interface returns a JSON-friendly representation (nil for null).
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return v.Number
	case KindTime:
		return v.Time.Format("2006-01-02 15:04:05")
	default:
		return nil
	}
}

// Record is one case row keyed by raw column name.
type Record map[string]Value

// Get is a null-safe lookup.
func (r Record) Get(column string) Value {
	if column == "" {
		return Null()
	}
	if v, ok := r[column]; ok {
		return v
	}
	return Null()
}

// Dataset is an in-memory snapshot of one uploaded case table. It is
// read-only to the analysis core and lives for a single request.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Record
}

// Column extracts one column in row order.
func (d *Dataset) Column(name string) []Value {
	values := make([]Value, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row.Get(name)
	}
	return values
}

// NonNullColumn extracts one column with absent cells dropped.
func (d *Dataset) NonNullColumn(name string) []Value {
	var values []Value
	for _, row := range d.Rows {
		if v := row.Get(name); !v.IsNull() {
			values = append(values, v)
		}
	}
	return values
}

// SampleRows returns up to n leading rows in JSON-friendly form.
func (d *Dataset) SampleRows(n int) []map[string]interface{} {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	samples := make([]map[string]interface{}, 0, n)
	for _, row := range d.Rows[:n] {
		sample := make(map[string]interface{}, len(d.Columns))
		for _, col := range d.Columns {
			sample[col] = row.Get(col).Interface()
		}
		samples = append(samples, sample)
	}
	return samples
}
