package aggregate

import (
	"testing"
	"time"

	"caselens-mcp/internal/dataset"
)

func textValues(values ...string) []dataset.Value {
	out := make([]dataset.Value, len(values))
	for i, v := range values {
		out[i] = dataset.TextValue(v)
	}
	return out
}

func TestValueCountsOrderAndTruncation(t *testing.T) {
	values := textValues("b", "a", "b", "c", "a", "b")
	buckets := ValueCounts(values, 2)

	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Value != "b" || buckets[0].Count != 3 {
		t.Errorf("expected b:3 first, got %v", buckets[0])
	}
	if buckets[1].Value != "a" || buckets[1].Count != 2 {
		t.Errorf("expected a:2 second, got %v", buckets[1])
	}
}

func TestValueCountsTiesKeepEncounterOrder(t *testing.T) {
	values := textValues("x", "y", "x", "y")
	buckets := ValueCounts(values, 0)

	if buckets[0].Value != "x" || buckets[1].Value != "y" {
		t.Errorf("expected encounter order for ties, got %v", buckets)
	}
}

func TestValueCountsSkipsNulls(t *testing.T) {
	values := []dataset.Value{dataset.TextValue("a"), dataset.Null(), dataset.TextValue("a")}
	buckets := ValueCounts(values, 0)

	if len(buckets) != 1 || buckets[0].Count != 2 {
		t.Errorf("expected single a:2 bucket, got %v", buckets)
	}
	if Total(buckets) != 2 {
		t.Errorf("total must equal non-null rows, got %d", Total(buckets))
	}
}

func TestValueCountsNumericText(t *testing.T) {
	// Numeric cells count by their rendered text; integral floats render
	// without a decimal part.
	values := []dataset.Value{dataset.NumberValue(12), dataset.TextValue("12"), dataset.NumberValue(12.5)}
	buckets := ValueCounts(values, 0)

	if buckets[0].Value != "12" || buckets[0].Count != 2 {
		t.Errorf("expected 12:2, got %v", buckets)
	}
}

func TestGroupByUnitDayAndHour(t *testing.T) {
	instants := []time.Time{
		time.Date(2025, 12, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 3, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 10, 9, 0, 0, 0, time.UTC),
	}

	daily := GroupByUnit(instants, UnitDay)
	if len(daily) != 2 || daily[0].Value != "3" || daily[0].Count != 2 {
		t.Errorf("unexpected daily buckets: %v", daily)
	}

	hourly := GroupByUnit(instants, UnitHour)
	if len(hourly) != 2 || hourly[0].Value != "9" || hourly[0].Count != 2 {
		t.Errorf("unexpected hourly buckets: %v", hourly)
	}
}

func TestGroupByUnitDayIsNumericOrder(t *testing.T) {
	instants := []time.Time{
		time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC),
	}
	daily := GroupByUnit(instants, UnitDay)
	if daily[0].Value != "3" || daily[1].Value != "21" {
		t.Errorf("expected numeric day order 3 before 21, got %v", daily)
	}
}

func TestTopNStableAndBounded(t *testing.T) {
	buckets := []Bucket{{"a", 1}, {"b", 3}, {"c", 3}, {"d", 2}}
	top := TopN(buckets, 3)

	if len(top) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(top))
	}
	if top[0].Value != "b" || top[1].Value != "c" || top[2].Value != "d" {
		t.Errorf("expected b,c,d, got %v", top)
	}
	// Input must stay untouched.
	if buckets[0].Value != "a" {
		t.Error("TopN must not mutate its input")
	}
}

func TestDistinctMonthsDesc(t *testing.T) {
	instants := []time.Time{
		time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
	}
	months := DistinctMonthsDesc(instants)
	want := []string{"2025-12", "2025-11", "2025-10"}
	if len(months) != len(want) {
		t.Fatalf("expected %v, got %v", want, months)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], months[i])
		}
	}
}
