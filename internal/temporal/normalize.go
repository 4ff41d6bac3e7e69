package temporal

import (
	"strings"
	"time"

	"caselens-mcp/internal/dataset"
)

// absoluteLayouts are tried in fixed order; the first layout that parses
// wins. Order matters: the source systems emit all six.
var absoluteLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// flexibleLayouts back the free-form fallback step. A fixed list keeps the
// normalizer deterministic where the original relied on a library's
// auto-detection.
var flexibleLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.RFC1123,
	"2006年01月02日 15:04:05",
	"2006年1月2日 15:04:05",
	"2006年01月02日",
	"2006年1月2日",
	"Jan 2, 2006",
	"2 Jan 2006 15:04:05",
}

// relativeMarkers identify relative-duration strings ("1小时55分18秒").
// Those can never resolve to an absolute instant without a reference point,
// so any value containing one is unparsable, unconditionally.
var relativeMarkers = []string{"小时", "分", "秒"}

// Normalize parses one heterogeneous timestamp representation into a
// canonical instant. The bool result is false for the unparsable sentinel.
// Strategies run in fixed order; the first success wins.
func Normalize(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	// GMT form: "Wed, 31 Dec 2025 15:02:18 GMT". Drop the weekday prefix
	// and the zone suffix, then parse the remainder. Failures fall through.
	if strings.Contains(raw, "GMT") {
		if t, ok := parseGMT(raw); ok {
			return t, true
		}
	}

	for _, marker := range relativeMarkers {
		if strings.Contains(raw, marker) {
			return time.Time{}, false
		}
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	for _, layout := range flexibleLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseGMT(raw string) (time.Time, bool) {
	rest := raw
	if idx := strings.Index(rest, ", "); idx != -1 {
		rest = rest[idx+2:]
	}
	rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "GMT"))
	t, err := time.Parse("2 Jan 2006 15:04:05", rest)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NormalizeValue normalizes a dynamic cell. Already-typed instants pass
// through; numbers are never instants in these exports.
func NormalizeValue(v dataset.Value) (time.Time, bool) {
	switch v.Kind {
	case dataset.KindTime:
		return v.Time, true
	case dataset.KindText:
		return Normalize(v.Text)
	default:
		return time.Time{}, false
	}
}

// ColumnStats reports how much of a time column survived normalization.
type ColumnStats struct {
	Original int `json:"original_count"`
	Valid    int `json:"valid_count"`
}

// SuccessRatio returns Valid/Original. ok is false for an empty column,
// which downstream reports as "no data" instead of dividing by zero.
func (s ColumnStats) SuccessRatio() (float64, bool) {
	if s.Original == 0 {
		return 0, false
	}
	return float64(s.Valid) / float64(s.Original), true
}

// NormalizeColumn normalizes a whole column, dropping unparsable rows.
// Dropped rows are excluded from all time-based aggregation; they only
// contribute to the reported parse-success ratio.
func NormalizeColumn(values []dataset.Value) ([]time.Time, ColumnStats) {
	stats := ColumnStats{Original: len(values)}
	instants := make([]time.Time, 0, len(values))
	for _, v := range values {
		if t, ok := NormalizeValue(v); ok {
			instants = append(instants, t)
		}
	}
	stats.Valid = len(instants)
	return instants, stats
}
