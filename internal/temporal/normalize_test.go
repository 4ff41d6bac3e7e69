package temporal

import (
	"testing"
	"time"

	"caselens-mcp/internal/dataset"
)

func TestNormalizeGMT(t *testing.T) {
	got, ok := Normalize("Wed, 31 Dec 2025 15:02:18 GMT")
	if !ok {
		t.Fatal("expected GMT form to parse")
	}
	want := time.Date(2025, 12, 31, 15, 2, 18, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNormalizeMalformedGMTFallsThrough(t *testing.T) {
	// GMT marker present but the remainder is not the GMT shape; the value
	// still reaches the layout chain and fails there.
	if _, ok := Normalize("GMT something"); ok {
		t.Error("expected malformed GMT value to be unparsable")
	}
}

func TestNormalizeRelativeDurationUnparsable(t *testing.T) {
	for _, raw := range []string{"1小时55分18秒", "30分", "45秒"} {
		if _, ok := Normalize(raw); ok {
			t.Errorf("expected relative duration %q to be unparsable", raw)
		}
	}
}

func TestNormalizeLayoutChain(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2025-12-31 15:02:18", time.Date(2025, 12, 31, 15, 2, 18, 0, time.UTC)},
		{"2025/12/31 15:02:18", time.Date(2025, 12, 31, 15, 2, 18, 0, time.UTC)},
		{"2025-12-31", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"2025/12/31", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"31-12-2025", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"31/12/2025", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.raw)
		if !ok {
			t.Errorf("expected %q to parse", tc.raw)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("%q: expected %v, got %v", tc.raw, tc.want, got)
		}
	}
}

func TestNormalizeDayFirstAmbiguity(t *testing.T) {
	// 05-04-2025 is day-first per the layout order: year-first layouts fail,
	// then 02-01-2006 matches.
	got, ok := Normalize("05-04-2025")
	if !ok {
		t.Fatal("expected day-first date to parse")
	}
	if got.Day() != 5 || got.Month() != time.April {
		t.Errorf("expected April 5th, got %v", got)
	}
}

func TestNormalizeEmptyAndGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a date", "2025-13-45"} {
		if _, ok := Normalize(raw); ok {
			t.Errorf("expected %q to be unparsable", raw)
		}
	}
}

func TestNormalizeValueKinds(t *testing.T) {
	if _, ok := NormalizeValue(dataset.NumberValue(42)); ok {
		t.Error("numbers are never instants")
	}
	if _, ok := NormalizeValue(dataset.Null()); ok {
		t.Error("null is never an instant")
	}
	if _, ok := NormalizeValue(dataset.TextValue("2025-01-01")); !ok {
		t.Error("expected text date to parse")
	}
}

func TestNormalizeColumnStats(t *testing.T) {
	values := []dataset.Value{
		dataset.TextValue("2025-01-01"),
		dataset.TextValue("1小时55分18秒"),
		dataset.TextValue("2025-02-01 08:00:00"),
		dataset.Null(),
	}
	instants, stats := NormalizeColumn(values)

	if stats.Original != 4 || stats.Valid != 2 {
		t.Errorf("expected 2/4 valid, got %d/%d", stats.Valid, stats.Original)
	}
	if len(instants) != 2 {
		t.Errorf("expected 2 instants, got %d", len(instants))
	}
	ratio, ok := stats.SuccessRatio()
	if !ok || ratio != 0.5 {
		t.Errorf("expected ratio 0.5, got %v (ok=%v)", ratio, ok)
	}
}

func TestSuccessRatioEmptyColumn(t *testing.T) {
	_, stats := NormalizeColumn(nil)
	if _, ok := stats.SuccessRatio(); ok {
		t.Error("empty column must report no ratio, not divide by zero")
	}
}
