package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"caselens-mcp/internal/aggregate"
	"caselens-mcp/internal/dataset"
	"caselens-mcp/internal/field"
	"caselens-mcp/internal/narrative"
	"caselens-mcp/internal/scoring"
)

// Engine runs the analysis pipeline: resolve fields, aggregate, then hand
// the prompt and data summary to the assembler for commentary.
type Engine struct {
	assembler narrative.Assembler
	rosters   scoring.Rosters
}

func NewEngine(assembler narrative.Assembler, rosters scoring.Rosters) *Engine {
	if assembler == nil {
		assembler = narrative.Disabled{}
	}
	if rosters == nil {
		rosters = scoring.DefaultRosters
	}
	return &Engine{assembler: assembler, rosters: rosters}
}

var builders = map[string]func(*run){
	narrative.AnalysisTime:      buildTimeAnalysis,
	narrative.AnalysisSpace:     buildSpaceAnalysis,
	narrative.AnalysisSource:    buildSourceAnalysis,
	narrative.AnalysisType:      buildTypeAnalysis,
	narrative.AnalysisDuplicate: buildDuplicateAnalysis,
	narrative.AnalysisMonthly:   buildMonthlyComparison,
}

// Types lists the supported analysis type tags.
func Types() []string {
	return []string{
		narrative.AnalysisTime,
		narrative.AnalysisSpace,
		narrative.AnalysisSource,
		narrative.AnalysisType,
		narrative.AnalysisDuplicate,
		narrative.AnalysisMonthly,
	}
}

// Analyze runs one analysis over an in-memory dataset snapshot. A failing
// sub-section degrades to a note in the result; only an unknown analysis
// type is an error.
func (e *Engine) Analyze(ctx context.Context, ds *dataset.Dataset, analysisType string) (*Result, error) {
	build, ok := builders[analysisType]
	if !ok {
		return nil, fmt.Errorf("unknown analysis type %q", analysisType)
	}

	r := newRun(ds, analysisType)
	build(r)
	SanitizeResult(r.result)

	log.Info().Str("table", ds.Name).Str("analysis_type", analysisType).
		Int("rows", r.result.RowCount).Msg("analysis computed")

	r.result.Narrative = e.assembler.Commentary(ctx, r.prompt.String(), r.result.DataSummary, analysisType)
	return r.result, nil
}

// run carries the state of one analysis: the dataset, the resolved field
// binding, the result under construction and the prompt for the assembler.
type run struct {
	ds      *dataset.Dataset
	binding field.Binding
	result  *Result
	prompt  strings.Builder
}

func newRun(ds *dataset.Dataset, analysisType string) *run {
	binding := field.ResolveAll(ds.Columns)
	return &run{
		ds:      ds,
		binding: binding,
		result: &Result{
			TableName:      ds.Name,
			AnalysisType:   analysisType,
			RowCount:       len(ds.Rows),
			ColumnCount:    len(ds.Columns),
			DataSummary:    fmt.Sprintf("Table has %d rows and %d columns", len(ds.Rows), len(ds.Columns)),
			Columns:        ds.Columns,
			SampleRows:     ds.SampleRows(5),
			ResolvedFields: binding.Strings(),
		},
	}
}

func (r *run) addf(format string, args ...interface{}) {
	fmt.Fprintf(&r.prompt, format, args...)
}

func (r *run) chart(name string, data interface{}) {
	if r.result.ChartData == nil {
		r.result.ChartData = make(map[string]interface{})
	}
	r.result.ChartData[name] = data
}

func (r *run) note(text string) {
	r.result.Notes = append(r.result.Notes, text)
	r.addf("\n%s\n", text)
}

// section isolates one analysis step: a panic inside fn becomes a failure
// note on the result instead of aborting the whole analysis.
func (r *run) section(label string, fn func()) {
	defer func() {
		if p := recover(); p != nil {
			log.Warn().Str("table", r.ds.Name).Str("section", label).
				Interface("panic", p).Msg("analysis section failed")
			r.note(fmt.Sprintf("%s失败：%v", label, p))
		}
	}()
	fn()
}

// countSection appends a top-10 distribution for a bound role. The chart
// name may be empty for prompt-only sections.
func (r *run) countSection(label, chartName string, role field.Role) {
	col := r.binding.Column(role)
	if col == "" {
		return
	}
	r.section(label, func() {
		buckets := aggregate.ValueCounts(r.ds.Column(col), aggregate.TopDefault)
		r.addf("\n%s（前10）：\n%s", label, formatBuckets(buckets))
		if chartName != "" {
			r.chart(chartName, buckets)
		}
	})
}

func formatBuckets(buckets []aggregate.Bucket) string {
	var b strings.Builder
	for _, bucket := range buckets {
		fmt.Fprintf(&b, "%s：%d\n", bucket.Value, bucket.Count)
	}
	if b.Len() == 0 {
		return "无\n"
	}
	return b.String()
}
