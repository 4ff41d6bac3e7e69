package aggregate

import (
	"testing"

	"caselens-mcp/internal/dataset"
)

func TestClassifyAddressVagueBeatsPrecise(t *testing.T) {
	// 号 marks a precise address, but a vague marker anywhere wins.
	if got := ClassifyAddress("建设路10号附近"); got != PrecisionVague {
		t.Errorf("expected vague, got %s", got)
	}
}

func TestClassifyAddressPreciseMarkers(t *testing.T) {
	for _, addr := range []string{"建设路10号", "幸福小区3栋", "二单元501室"} {
		if got := ClassifyAddress(addr); got != PrecisionPrecise {
			t.Errorf("%s: expected precise, got %s", addr, got)
		}
	}
}

func TestClassifyAddressRuneLengthDefault(t *testing.T) {
	// No markers either way: more than 10 runes counts as precise. Rune
	// count, not byte count, or every short CJK address would pass.
	if got := ClassifyAddress("东风东路与建设大道交叉口"); got != PrecisionPrecise {
		t.Errorf("expected long address to default precise, got %s", got)
	}
	if got := ClassifyAddress("建设大道"); got != PrecisionVague {
		t.Errorf("expected short address to default vague, got %s", got)
	}
	if got := ClassifyAddress(""); got != PrecisionUnknown {
		t.Errorf("expected empty address unknown, got %s", got)
	}
}

func TestCategorizeViolation(t *testing.T) {
	cases := map[string]string{
		"店外经营占道":  "店外经营",
		"占道堆物":    "店外经营",
		"流动摊贩兜售":  "流动摊点",
		"无证摊位":    "流动摊点",
		"乱贴小广告":   "其他违规",
	}
	for problem, want := range cases {
		if got := CategorizeViolation(problem); got != want {
			t.Errorf("%s: expected %s, got %s", problem, want, got)
		}
	}
}

func TestFindRepeats(t *testing.T) {
	ds := &dataset.Dataset{
		Name:    "cases",
		Columns: []string{"问题描述", "地址描述"},
	}
	add := func(problem, addr string) {
		ds.Rows = append(ds.Rows, dataset.Record{
			"问题描述": dataset.TextValue(problem),
			"地址描述": dataset.TextValue(addr),
		})
	}
	add("店外经营", "建设路10号")
	add("店外经营", "建设路10号")
	add("店外经营", "建设路10号")
	add("流动摊贩", "公园附近")
	add("流动摊贩", "公园附近")
	add("乱堆物料", "人民路2号")

	summary := FindRepeats(ds, "问题描述", "地址描述", TopDefault)

	if len(summary.RepeatGroups) != 2 {
		t.Fatalf("expected 2 repeat groups, got %d", len(summary.RepeatGroups))
	}
	top := summary.RepeatGroups[0]
	if top.Problem != "店外经营" || top.Address != "建设路10号" || top.Count != 3 {
		t.Errorf("unexpected top group: %+v", top)
	}
	if top.Category != "店外经营" || top.Tier != PrecisionPrecise {
		t.Errorf("unexpected top group classification: %+v", top)
	}
	if summary.RepeatRows != 5 {
		t.Errorf("expected 5 repeat rows, got %d", summary.RepeatRows)
	}
	if summary.PrecisionSplit["vague"] != 2 {
		t.Errorf("expected 2 vague addresses, got %d", summary.PrecisionSplit["vague"])
	}
}

func TestFindRepeatsSkipsNullCells(t *testing.T) {
	ds := &dataset.Dataset{
		Name:    "cases",
		Columns: []string{"问题描述", "地址描述"},
		Rows: []dataset.Record{
			{"问题描述": dataset.TextValue("店外经营"), "地址描述": dataset.Null()},
			{"问题描述": dataset.TextValue("店外经营"), "地址描述": dataset.Null()},
		},
	}
	summary := FindRepeats(ds, "问题描述", "地址描述", TopDefault)
	if len(summary.RepeatGroups) != 0 {
		t.Errorf("null addresses must not form repeat groups, got %v", summary.RepeatGroups)
	}
}
