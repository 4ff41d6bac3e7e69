package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"caselens-mcp/internal/dataset"
	"caselens-mcp/internal/field"
	"caselens-mcp/internal/narrative"
	"caselens-mcp/internal/scoring"
)

// ScoreResult wraps a ranked category report with the narrative layer.
type ScoreResult struct {
	TableName      string                 `json:"table_name"`
	Report         scoring.CategoryReport `json:"report"`
	ResolvedFields map[string]string      `json:"resolved_fields"`
	DataSummary    string                 `json:"data_summary"`
	Narrative      string                 `json:"analysis_narrative"`
}

// ScoreDepartments scores and ranks every roster member of a category. The
// category must be one of the configured rosters; units outside those
// categories go through ScoreGeneric instead.
func (e *Engine) ScoreDepartments(ctx context.Context, ds *dataset.Dataset, category string) (*ScoreResult, error) {
	roster := e.rosters.Units(category)
	if len(roster) == 0 {
		return nil, fmt.Errorf("unknown department category %q", category)
	}

	binding := field.ResolveAll(ds.Columns)
	fields := scoring.FieldsFromBinding(binding)
	report := scoring.RankUnits(ds.Rows, fields, category, roster)

	log.Info().Str("table", ds.Name).Str("category", category).
		Int("units", len(report.PerUnit)).Float64("overall", report.OverallScore).
		Msg("department scores computed")

	res := &ScoreResult{
		TableName:      ds.Name,
		Report:         report,
		ResolvedFields: binding.Strings(),
		DataSummary:    fmt.Sprintf("Table has %d rows and %d columns", len(ds.Rows), len(ds.Columns)),
	}
	res.Narrative = e.assembler.Commentary(ctx, scorePrompt(ds.Name, report), res.DataSummary, narrative.AnalysisDepartment)
	return res, nil
}

// ScoreGeneric applies the fallback scorer to an arbitrary unit name. The
// result is a materially weaker metric and not comparable with the roster
// formula.
func (e *Engine) ScoreGeneric(ds *dataset.Dataset, unit string) scoring.GenericUnitScore {
	binding := field.ResolveAll(ds.Columns)
	return scoring.ScoreGenericUnit(ds.Rows, scoring.FieldsFromBinding(binding), unit)
}

func scorePrompt(tableName string, report scoring.CategoryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "数据表 %s 的 %s 考核结果：\n", tableName, report.DepartmentCategory)
	fmt.Fprintf(&b, "参与考核案件总数：%d\n", report.TotalCases)
	fmt.Fprintf(&b, "类别平均得分：%.2f\n\n", report.OverallScore)
	b.WriteString("各单位得分与排名：\n")
	for _, u := range report.PerUnit {
		fmt.Fprintf(&b, "第%d名 %s：得分 %.2f，案件数 %d，按时办结 %d，超期 %d，延期 %d，返工 %d\n",
			u.Rank, u.UnitName, u.Score, u.TotalCases, u.OnTimeCount, u.OverdueCount, u.DelayCount, u.ReworkCount)
	}
	return b.String()
}
