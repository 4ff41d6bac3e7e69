package aggregate

import (
	"sort"

	"caselens-mcp/internal/dataset"
)

// TopDefault is the distribution truncation used throughout the analyses.
const TopDefault = 10

// Bucket is one (value, count) pair of a frequency distribution.
type Bucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueCounts builds a frequency distribution over exact text equality
// (values coerced to text first). Null cells are skipped. The result is
// sorted by count descending with first-encounter order breaking ties, and
// truncated to topN. topN <= 0 means no truncation.
func ValueCounts(values []dataset.Value, topN int) []Bucket {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		key := v.String()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	buckets := make([]Bucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, Bucket{Value: key, Count: counts[key]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	if topN > 0 && len(buckets) > topN {
		buckets = buckets[:topN]
	}
	return buckets
}

// TopN re-sorts an existing distribution by count descending (stable) and
// truncates it. Used to derive peak views from chronological groupings.
func TopN(buckets []Bucket, n int) []Bucket {
	out := make([]Bucket, len(buckets))
	copy(out, buckets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Total sums the counts of a distribution.
func Total(buckets []Bucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return total
}

// BucketValues lists the values of a distribution in order.
func BucketValues(buckets []Bucket) []string {
	values := make([]string, len(buckets))
	for i, b := range buckets {
		values[i] = b.Value
	}
	return values
}
