package field

import (
	"reflect"
	"testing"
)

func TestResolveBindsPrimaryBeforeFallback(t *testing.T) {
	// 处理时间 matches the report-time fallback (时间); 上报日期 matches the
	// primary (上报) even though it appears later.
	columns := []string{"处理时间", "上报日期"}
	binding := Resolve(columns, Specs(RoleReportTime))

	if got := binding.Column(RoleReportTime); got != "上报日期" {
		t.Errorf("expected primary rule to win, got %q", got)
	}
}

func TestResolveFallbackWhenPrimaryAbsent(t *testing.T) {
	columns := []string{"编号", "处理时间"}
	binding := Resolve(columns, Specs(RoleReportTime))

	if got := binding.Column(RoleReportTime); got != "处理时间" {
		t.Errorf("expected fallback binding 处理时间, got %q", got)
	}
}

func TestResolveFirstMatchWinsAndNeverRebinds(t *testing.T) {
	columns := []string{"上报时间", "上报时间2", "二次上报时间"}
	binding := Resolve(columns, Specs(RoleReportTime))

	if got := binding.Column(RoleReportTime); got != "上报时间" {
		t.Errorf("expected first matching column, got %q", got)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	columns := []string{"上报时间", "小类名称", "地址描述", "所属街道", "处置部门", "问题描述"}

	first := ResolveAll(columns)
	for i := 0; i < 10; i++ {
		again := ResolveAll(columns)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("resolution differed between runs: %v vs %v", first, again)
		}
	}
}

func TestResolveCaseInsensitiveAscii(t *testing.T) {
	columns := []string{"Case Type"}
	binding := Resolve(columns, Specs(RoleSubcategory))

	if got := binding.Column(RoleSubcategory); got != "Case Type" {
		t.Errorf("expected case-folded match on 'type', got %q", got)
	}
}

func TestResolveConjunctiveRule(t *testing.T) {
	// The deadline primary needs 捆绑 AND 截止 AND 时间 in one header.
	binding := Resolve([]string{"捆绑处置截止时间", "截止日期"}, Specs(RoleDeadline))
	if got := binding.Column(RoleDeadline); got != "捆绑处置截止时间" {
		t.Errorf("expected conjunctive match, got %q", got)
	}

	// A header with only part of the conjunction must not match the primary.
	binding = Resolve([]string{"捆绑编号"}, Specs(RoleDeadline))
	if binding.Has(RoleDeadline) {
		t.Errorf("partial conjunction should not bind, got %q", binding.Column(RoleDeadline))
	}
}

func TestResolveUnmatchedRoleAbsent(t *testing.T) {
	binding := ResolveAll([]string{"编号", "备注"})
	if binding.Has(RoleReportTime) {
		t.Error("expected no binding for report time")
	}
	if binding.Column(RoleReportTime) != "" {
		t.Error("unresolved role should return empty column")
	}
}

func TestResolveAllFullSchema(t *testing.T) {
	columns := []string{
		"上报时间", "捆绑处置截止时间", "办结时间", "小类名称", "大类名称",
		"问题类型", "所属街道", "所属社区", "所属片区", "提取的道路名称",
		"地址描述", "问题描述", "问题来源", "处置部门", "延期次数", "是否返工", "当前阶段",
	}
	binding := ResolveAll(columns)

	want := map[Role]string{
		RoleReportTime:  "上报时间",
		RoleDeadline:    "捆绑处置截止时间",
		RoleCloseTime:   "办结时间",
		RoleSubcategory: "小类名称",
		RoleStreet:      "所属街道",
		RoleDepartment:  "处置部门",
		RoleReworkFlag:  "是否返工",
	}
	for role, col := range want {
		if got := binding.Column(role); got != col {
			t.Errorf("role %s: expected %q, got %q", role, col, got)
		}
	}
}
