package aggregate

import (
	"sort"
	"strconv"
	"time"
)

// Unit selects the calendar extraction for time grouping.
type Unit string

const (
	UnitDay   Unit = "day"   // day-of-month, not a rolling window
	UnitHour  Unit = "hour"  // hour-of-day
	UnitMonth Unit = "month" // year-month bucket
)

// GroupByUnit buckets canonical instants by a calendar unit. Buckets come
// back in chronological key order (the chart-friendly shape); use TopN for
// a peak view.
func GroupByUnit(instants []time.Time, unit Unit) []Bucket {
	counts := make(map[string]int)
	for _, t := range instants {
		counts[unitKey(t, unit)]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return unitLess(keys[i], keys[j], unit)
	})

	buckets := make([]Bucket, len(keys))
	for i, k := range keys {
		buckets[i] = Bucket{Value: k, Count: counts[k]}
	}
	return buckets
}

func unitKey(t time.Time, unit Unit) string {
	switch unit {
	case UnitHour:
		return strconv.Itoa(t.Hour())
	case UnitMonth:
		return MonthKey(t)
	default:
		return strconv.Itoa(t.Day())
	}
}

func unitLess(a, b string, unit Unit) bool {
	if unit == UnitMonth {
		return a < b
	}
	ai, _ := strconv.Atoi(a)
	bi, _ := strconv.Atoi(b)
	return ai < bi
}

// MonthKey renders the year-month bucket of an instant ("2025-12").
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DistinctMonthsDesc lists the distinct month buckets present, most recent
// first.
func DistinctMonthsDesc(instants []time.Time) []string {
	seen := make(map[string]bool)
	var months []string
	for _, t := range instants {
		key := MonthKey(t)
		if !seen[key] {
			seen[key] = true
			months = append(months, key)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}
