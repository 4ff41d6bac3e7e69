package scoring

import (
	"math"
	"sort"
	"strings"

	"caselens-mcp/internal/dataset"
	"caselens-mcp/internal/field"
	"caselens-mcp/internal/temporal"
)

// reworkMarker is the literal "yes" flag value in the source exports.
const reworkMarker = "是"

// suspendedMarker tags parked cases. The park/plaza variant drops any case
// whose stage contains it before scoring.
const suspendedMarker = "挂账"

// Fields names the columns a scoring pass reads. Any field may be empty;
// the corresponding sub-metric then stays at zero instead of failing.
type Fields struct {
	Department string
	ReportTime string
	Deadline   string
	CloseTime  string
	DelayCount string
	ReworkFlag string
	Stage      string
}

// FieldsFromBinding builds scoring fields from a resolved binding.
func FieldsFromBinding(b field.Binding) Fields {
	return Fields{
		Department: b.Column(field.RoleDepartment),
		ReportTime: b.Column(field.RoleReportTime),
		Deadline:   b.Column(field.RoleDeadline),
		CloseTime:  b.Column(field.RoleCloseTime),
		DelayCount: b.Column(field.RoleDelayCount),
		ReworkFlag: b.Column(field.RoleReworkFlag),
		Stage:      b.Column(field.RoleStage),
	}
}

// UnitScore is the per-unit scoring record.
type UnitScore struct {
	UnitName     string  `json:"unit_name"`
	TotalCases   int     `json:"total_cases"`
	OnTimeCount  int     `json:"on_time_count"`
	OverdueCount int     `json:"overdue_count"`
	DelayCount   int     `json:"delay_count"`
	ReworkCount  int     `json:"rework_count"`
	OnTimeRate   float64 `json:"on_time_rate"`
	OverdueRate  float64 `json:"overdue_rate"`
	DelayRate    float64 `json:"delay_rate"`
	ReworkRate   float64 `json:"rework_rate"`
	Score        float64 `json:"score"`
	Rank         int     `json:"rank"`
}

// CategoryReport bundles a full ranked category.
type CategoryReport struct {
	DepartmentCategory string      `json:"department_category"`
	TotalCases         int         `json:"total_cases"`
	PerUnit            []UnitScore `json:"per_unit"`
	OverallScore       float64     `json:"overall_score"`
}

// Round2 rounds to 2 decimal places. Every published rate and score goes
// through it.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ScoreUnit computes the composite score for one unit. Department matching
// is exact string equality on the raw cell value; missing fields degrade the
// affected sub-metric to zero rather than aborting. A unit with no matching
// cases scores 20.00 (all rates zero).
func ScoreUnit(rows []dataset.Record, fields Fields, unit string) UnitScore {
	s := UnitScore{UnitName: unit}

	for _, row := range rows {
		if fields.Department == "" || row.Get(fields.Department).String() != unit {
			continue
		}
		s.TotalCases++

		// Timeliness needs both instants; a parse failure on either side
		// skips the case for this sub-metric only.
		if fields.CloseTime != "" && fields.Deadline != "" {
			closeAt, okClose := temporal.NormalizeValue(row.Get(fields.CloseTime))
			deadline, okDeadline := temporal.NormalizeValue(row.Get(fields.Deadline))
			if okClose && okDeadline {
				switch {
				case closeAt.Before(deadline):
					s.OnTimeCount++
				case closeAt.After(deadline):
					s.OverdueCount++
				}
				// Equal instants count as neither.
			}
		}

		if fields.DelayCount != "" {
			if n, ok := row.Get(fields.DelayCount).Int(); ok && n != 0 {
				s.DelayCount++
			}
		}
		if fields.ReworkFlag != "" && row.Get(fields.ReworkFlag).String() == reworkMarker {
			s.ReworkCount++
		}
	}

	onTime, overdue, delay, rework := 0.0, 0.0, 0.0, 0.0
	if s.TotalCases > 0 {
		total := float64(s.TotalCases)
		onTime = float64(s.OnTimeCount) / total
		overdue = float64(s.OverdueCount) / total
		delay = float64(s.DelayCount) / total
		rework = float64(s.ReworkCount) / total
	}

	s.OnTimeRate = Round2(onTime * 100)
	s.OverdueRate = Round2(overdue * 100)
	s.DelayRate = Round2(delay * 100)
	s.ReworkRate = Round2(rework * 100)

	// Overdue cases still earn 0.4 relative to on-time's 1.0 inside the
	// 0.8-weighted throughput term; delay and rework carry the last 0.2.
	s.Score = Round2(((onTime*1.0+overdue*0.4)*0.8 + (1-delay)*0.1 + (1-rework)*0.1) * 100)
	return s
}

// RankUnits scores every roster member of a category, sorts descending by
// score and assigns rank 1..N. The sort is stable, so ties keep roster
// order. For the parks category, suspended cases are removed first.
func RankUnits(rows []dataset.Record, fields Fields, category string, roster []string) CategoryReport {
	if category == CategoryParks {
		rows = excludeSuspended(rows, fields.Stage)
	}

	report := CategoryReport{DepartmentCategory: category}
	for _, unit := range roster {
		report.PerUnit = append(report.PerUnit, ScoreUnit(rows, fields, unit))
	}
	for _, u := range report.PerUnit {
		report.TotalCases += u.TotalCases
	}

	assignRanks(report.PerUnit)

	if len(report.PerUnit) > 0 {
		sum := 0.0
		for _, u := range report.PerUnit {
			sum += u.Score
		}
		report.OverallScore = Round2(sum / float64(len(report.PerUnit)))
	}
	return report
}

// assignRanks orders descending by score (stable, so ties keep roster
// order) and writes rank 1..N in place.
func assignRanks(units []UnitScore) {
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].Score > units[j].Score
	})
	for i := range units {
		units[i].Rank = i + 1
	}
}

func excludeSuspended(rows []dataset.Record, stageCol string) []dataset.Record {
	if stageCol == "" {
		return rows
	}
	kept := make([]dataset.Record, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(row.Get(stageCol).String(), suspendedMarker) {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}
