package dataset

import "testing"

func TestCoerceCell(t *testing.T) {
	if v := CoerceCell(""); !v.IsNull() {
		t.Error("empty cell must be null")
	}
	if v := CoerceCell("12.5"); v.Kind != KindNumber || v.Number != 12.5 {
		t.Errorf("expected number 12.5, got %+v", v)
	}
	if v := CoerceCell("2025-12-01"); v.Kind != KindText {
		t.Errorf("date-like cells must stay text for the normalizer, got %+v", v)
	}
}

func TestValueStringIntegralNumbers(t *testing.T) {
	if got := NumberValue(12).String(); got != "12" {
		t.Errorf("integral numbers must render without a decimal part, got %q", got)
	}
	if got := NumberValue(12.5).String(); got != "12.5" {
		t.Errorf("expected 12.5, got %q", got)
	}
}

func TestValueInt(t *testing.T) {
	if n, ok := NumberValue(3).Int(); !ok || n != 3 {
		t.Errorf("expected 3, got %d (ok=%v)", n, ok)
	}
	if _, ok := NumberValue(3.7).Int(); ok {
		t.Error("non-integral numbers have no int form")
	}
	if _, ok := TextValue("3").Int(); !ok {
		t.Error("numeric text should convert")
	}
	if _, ok := TextValue("abc").Int(); ok {
		t.Error("non-numeric text has no int form")
	}
}

func TestFromRowsDuplicateHeadersKeepFirst(t *testing.T) {
	ds := FromRows("t", []string{"时间", "时间", "类型"}, [][]string{
		{"2025-12-01", "2025-12-02", "店外经营"},
	})

	if len(ds.Columns) != 2 {
		t.Fatalf("expected duplicate header dropped, got %v", ds.Columns)
	}
	if got := ds.Rows[0].Get("时间").String(); got != "2025-12-01" {
		t.Errorf("first occurrence must win, got %q", got)
	}
}

func TestFromRowsSkipsEmptyRowsAndRaggedCells(t *testing.T) {
	ds := FromRows("t", []string{"a", "b"}, [][]string{
		{"1", "2"},
		{"", ""},
		{"3"}, // short row: missing cells are null
	})

	if len(ds.Rows) != 2 {
		t.Fatalf("expected empty row skipped, got %d rows", len(ds.Rows))
	}
	if !ds.Rows[1].Get("b").IsNull() {
		t.Error("missing trailing cell must be null")
	}
}

func TestRecordGetMissingColumn(t *testing.T) {
	rec := Record{"a": TextValue("x")}
	if !rec.Get("missing").IsNull() {
		t.Error("missing column must read as null")
	}
}

func TestSampleRows(t *testing.T) {
	ds := FromRows("t", []string{"a"}, [][]string{{"1"}, {"2"}, {"3"}})

	sample := ds.SampleRows(5)
	if len(sample) != 3 {
		t.Errorf("sample is capped at the row count, got %d", len(sample))
	}
	sample = ds.SampleRows(2)
	if len(sample) != 2 {
		t.Errorf("expected 2 sample rows, got %d", len(sample))
	}
}
