package aggregate

import (
	"math"
	"time"

	"caselens-mcp/internal/dataset"
	"caselens-mcp/internal/temporal"
)

// CategoryShift compares one categorical field's top-10 distribution across
// the two windows and reports the set differences.
type CategoryShift struct {
	Field    string   `json:"field"`
	Previous []Bucket `json:"previous"`
	Recent   []Bucket `json:"recent"`
	Emerging []string `json:"emerging"` // present recently, absent before
	Receding []string `json:"receding"` // present before, absent recently
}

// WindowComparison is the month-over-month result. When fewer than two
// distinct months are present the comparison is skipped and Insufficient is
// set; that is a data condition, not an error.
type WindowComparison struct {
	Insufficient  bool                 `json:"insufficient,omitempty"`
	MonthsFound   []string             `json:"months_found,omitempty"`
	ParseStats    temporal.ColumnStats `json:"parse_stats"`
	PreviousMonth string               `json:"previous_month,omitempty"`
	RecentMonth   string               `json:"recent_month,omitempty"`
	PreviousCount int                  `json:"previous_count"`
	RecentCount   int                  `json:"recent_count"`
	Delta         int                  `json:"delta"`
	ChangeRate    float64              `json:"change_rate"` // percent; 0 when previous is 0
	Shifts        []CategoryShift      `json:"shifts,omitempty"`
}

// CompareWindows normalizes the time column, selects the two most recent
// distinct months present (calendar adjacency is not required; gaps are
// compared as-is), and reports count delta plus per-field category shifts.
func CompareWindows(ds *dataset.Dataset, timeCol string, catCols []string) WindowComparison {
	type stamped struct {
		month string
		row   dataset.Record
	}

	values := ds.Column(timeCol)
	stats := temporal.ColumnStats{Original: len(values)}

	var rows []stamped
	var instants []time.Time
	for i, v := range values {
		t, ok := temporal.NormalizeValue(v)
		if !ok {
			continue
		}
		instants = append(instants, t)
		rows = append(rows, stamped{month: MonthKey(t), row: ds.Rows[i]})
	}
	stats.Valid = len(instants)

	months := DistinctMonthsDesc(instants)
	if len(months) < 2 {
		return WindowComparison{
			Insufficient: true,
			MonthsFound:  months,
			ParseStats:   stats,
		}
	}

	recentMonth, previousMonth := months[0], months[1]
	var recentRows, previousRows []dataset.Record
	for _, s := range rows {
		switch s.month {
		case recentMonth:
			recentRows = append(recentRows, s.row)
		case previousMonth:
			previousRows = append(previousRows, s.row)
		}
	}

	delta := len(recentRows) - len(previousRows)
	rate := 0.0
	if len(previousRows) > 0 {
		rate = math.Round(float64(delta)/float64(len(previousRows))*100*100) / 100
	}

	cmp := WindowComparison{
		MonthsFound:   months,
		ParseStats:    stats,
		PreviousMonth: previousMonth,
		RecentMonth:   recentMonth,
		PreviousCount: len(previousRows),
		RecentCount:   len(recentRows),
		Delta:         delta,
		ChangeRate:    rate,
	}

	for _, col := range catCols {
		if col == "" {
			continue
		}
		cmp.Shifts = append(cmp.Shifts, shiftFor(col, previousRows, recentRows))
	}
	return cmp
}

func shiftFor(col string, previousRows, recentRows []dataset.Record) CategoryShift {
	previous := ValueCounts(columnOf(previousRows, col), TopDefault)
	recent := ValueCounts(columnOf(recentRows, col), TopDefault)

	prevSet := make(map[string]bool, len(previous))
	for _, b := range previous {
		prevSet[b.Value] = true
	}
	recentSet := make(map[string]bool, len(recent))
	for _, b := range recent {
		recentSet[b.Value] = true
	}

	shift := CategoryShift{Field: col, Previous: previous, Recent: recent}
	for _, b := range recent {
		if !prevSet[b.Value] {
			shift.Emerging = append(shift.Emerging, b.Value)
		}
	}
	for _, b := range previous {
		if !recentSet[b.Value] {
			shift.Receding = append(shift.Receding, b.Value)
		}
	}
	return shift
}

func columnOf(rows []dataset.Record, col string) []dataset.Value {
	values := make([]dataset.Value, len(rows))
	for i, row := range rows {
		values[i] = row.Get(col)
	}
	return values
}
