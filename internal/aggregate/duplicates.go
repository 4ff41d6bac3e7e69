package aggregate

import (
	"strings"
	"unicode/utf8"

	"caselens-mcp/internal/dataset"
)

// Address precision tiers. Vague markers are checked before precise ones:
// "建设路10号附近" is vague even though it contains a house-number marker.
var (
	vagueMarkers   = []string{"附近", "周边", "旁边", "一带", "附近区域"}
	preciseMarkers = []string{"号", "栋", "楼", "室", "店", "铺", "单元", "号楼"}
)

// Precision is the address precision tier of one case record.
type Precision string

const (
	PrecisionPrecise Precision = "precise"
	PrecisionVague   Precision = "vague"
	PrecisionUnknown Precision = "unknown"
)

// ClassifyAddress tiers a free-form address string. Rune length, not byte
// length, drives the long-address default.
func ClassifyAddress(addr string) Precision {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return PrecisionUnknown
	}
	for _, m := range vagueMarkers {
		if strings.Contains(addr, m) {
			return PrecisionVague
		}
	}
	for _, m := range preciseMarkers {
		if strings.Contains(addr, m) {
			return PrecisionPrecise
		}
	}
	if utf8.RuneCountInString(addr) > 10 {
		return PrecisionPrecise
	}
	return PrecisionVague
}

// CategorizeViolation folds a free-form problem description into one of the
// three enforcement buckets.
func CategorizeViolation(problem string) string {
	if strings.Contains(problem, "店外") || strings.Contains(problem, "占道") {
		return "店外经营"
	}
	if strings.Contains(problem, "流动") || strings.Contains(problem, "摊") {
		return "流动摊点"
	}
	return "其他违规"
}

// RepeatGroup is one problem-at-location cluster reported more than once.
type RepeatGroup struct {
	Problem  string    `json:"problem"`
	Address  string    `json:"address"`
	Count    int       `json:"count"`
	Category string    `json:"category"`
	Tier     Precision `json:"address_precision"`
}

// DuplicateSummary is the repeat-report view over a dataset.
type DuplicateSummary struct {
	TotalRows      int            `json:"total_rows"`
	RepeatGroups   []RepeatGroup  `json:"repeat_groups"`
	RepeatRows     int            `json:"repeat_rows"`
	PrecisionSplit map[string]int `json:"precision_split"`
	CategorySplit  map[string]int `json:"category_split"`
}

// FindRepeats groups rows by the exact (problem, address) pair and keeps the
// groups seen more than once, largest first (ValueCounts ordering). Rows with
// a null problem or address never join a group.
func FindRepeats(ds *dataset.Dataset, problemCol, addressCol string, topN int) DuplicateSummary {
	const sep = "\x1f" // never appears in cell text

	summary := DuplicateSummary{
		TotalRows:      len(ds.Rows),
		PrecisionSplit: make(map[string]int),
		CategorySplit:  make(map[string]int),
	}

	keys := make([]dataset.Value, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		problem := row.Get(problemCol)
		address := row.Get(addressCol)
		if problem.IsNull() || address.IsNull() {
			continue
		}
		addr := address.String()
		summary.PrecisionSplit[string(ClassifyAddress(addr))]++
		summary.CategorySplit[CategorizeViolation(problem.String())]++
		keys = append(keys, dataset.TextValue(problem.String()+sep+addr))
	}

	for _, b := range ValueCounts(keys, 0) {
		if b.Count < 2 {
			continue
		}
		problem, addr, _ := strings.Cut(b.Value, sep)
		summary.RepeatGroups = append(summary.RepeatGroups, RepeatGroup{
			Problem:  problem,
			Address:  addr,
			Count:    b.Count,
			Category: CategorizeViolation(problem),
			Tier:     ClassifyAddress(addr),
		})
		summary.RepeatRows += b.Count
	}
	if topN > 0 && len(summary.RepeatGroups) > topN {
		summary.RepeatGroups = summary.RepeatGroups[:topN]
	}
	return summary
}
