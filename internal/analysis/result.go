package analysis

import "math"

// Result is the structured bundle returned for one analysis run. Narrative
// is the only field filled by the external text service; everything else is
// computed locally and stands alone when that service is unavailable.
type Result struct {
	TableName      string                   `json:"table_name"`
	AnalysisType   string                   `json:"analysis_type"`
	RowCount       int                      `json:"row_count"`
	ColumnCount    int                      `json:"column_count"`
	DataSummary    string                   `json:"data_summary"`
	Columns        []string                 `json:"columns"`
	SampleRows     []map[string]interface{} `json:"sample_rows"`
	ResolvedFields map[string]string        `json:"resolved_fields"`
	ChartData      map[string]interface{}   `json:"chart_data,omitempty"`
	Notes          []string                 `json:"notes,omitempty"`
	Narrative      string                   `json:"analysis_narrative"`
}

// Sanitize walks a JSON-bound value and replaces NaN and infinite floats
// with nil. encoding/json rejects those outright, so they must be scrubbed
// before the result crosses the wire.
func Sanitize(v interface{}) interface{} {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return x
	case map[string]interface{}:
		for k, val := range x {
			x[k] = Sanitize(val)
		}
		return x
	case []interface{}:
		for i, val := range x {
			x[i] = Sanitize(val)
		}
		return x
	default:
		return v
	}
}

// SanitizeResult scrubs the float-bearing parts of a result in place.
func SanitizeResult(r *Result) {
	for i, row := range r.SampleRows {
		r.SampleRows[i] = Sanitize(row).(map[string]interface{})
	}
	if r.ChartData != nil {
		r.ChartData = Sanitize(r.ChartData).(map[string]interface{})
	}
}
