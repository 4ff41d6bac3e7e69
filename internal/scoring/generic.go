package scoring

import (
	"caselens-mcp/internal/dataset"
	"caselens-mcp/internal/temporal"
)

// GenericQualityScore is the placeholder quality component of the generic
// scorer. It is a constant regardless of input; the generic score is a
// materially weaker metric than the roster formula and the two are not
// comparable.
var GenericQualityScore = 30.0

// handlingStandardHours is the fixed handling-time standard the generic
// scorer measures against.
const handlingStandardHours = 24.0

// GenericUnitScore is the fallback record for units outside the known
// roster categories.
type GenericUnitScore struct {
	UnitName        string  `json:"unit_name"`
	TotalCases      int     `json:"total_cases"`
	ClosedCases     int     `json:"closed_cases"`
	ClosureRate     float64 `json:"closure_rate"`
	AvgHandlingHrs  float64 `json:"avg_handling_hours"`
	TimelinessScore float64 `json:"timeliness_score"`
	QualityScore    float64 `json:"quality_score"`
	Score           float64 `json:"score"`
}

// ScoreGenericUnit scores a unit outside the roster categories. Weights:
// closure rate 40, timeliness against the 24-hour standard 30, quality
// placeholder 30. A case is closed when its close-time cell parses; handling
// time is close minus report for cases where both parse.
func ScoreGenericUnit(rows []dataset.Record, fields Fields, unit string) GenericUnitScore {
	g := GenericUnitScore{UnitName: unit, QualityScore: GenericQualityScore}

	handled := 0
	totalHours := 0.0
	for _, row := range rows {
		if fields.Department == "" || row.Get(fields.Department).String() != unit {
			continue
		}
		g.TotalCases++

		if fields.CloseTime == "" {
			continue
		}
		closeAt, okClose := temporal.NormalizeValue(row.Get(fields.CloseTime))
		if !okClose {
			continue
		}
		g.ClosedCases++

		if fields.ReportTime == "" {
			continue
		}
		reportAt, okReport := temporal.NormalizeValue(row.Get(fields.ReportTime))
		if !okReport || closeAt.Before(reportAt) {
			continue
		}
		handled++
		totalHours += closeAt.Sub(reportAt).Hours()
	}

	closure := 0.0
	if g.TotalCases > 0 {
		closure = float64(g.ClosedCases) / float64(g.TotalCases)
	}
	g.ClosureRate = Round2(closure * 100)

	timeliness := 30.0
	if handled > 0 {
		g.AvgHandlingHrs = Round2(totalHours / float64(handled))
		if g.AvgHandlingHrs > handlingStandardHours {
			timeliness = 30.0 * handlingStandardHours / g.AvgHandlingHrs
		}
	}
	g.TimelinessScore = Round2(timeliness)

	g.Score = Round2(closure*40 + timeliness + g.QualityScore)
	return g
}
