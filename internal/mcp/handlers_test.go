package mcp

import (
	"context"
	"encoding/json"
	"testing"
)

func TestRequireStr(t *testing.T) {
	args := arguments{"name": "cases", "count": float64(3)}

	if v, err := args.requireStr("name"); err != nil || v != "cases" {
		t.Errorf("expected cases, got %q (err=%v)", v, err)
	}
	if _, err := args.requireStr("missing"); err == nil {
		t.Error("expected error for missing parameter")
	}
	if _, err := args.requireStr("count"); err == nil {
		t.Error("expected error for non-string parameter")
	}

	args = arguments{"name": ""}
	if _, err := args.requireStr("name"); err == nil {
		t.Error("expected error for empty string")
	}
}

func TestCallToolUnknownTool(t *testing.T) {
	s := &Server{}
	params, _ := json.Marshal(map[string]interface{}{
		"name":      "does_not_exist",
		"arguments": map[string]interface{}{},
	})

	result, errRes := s.callTool(params)
	if result != nil || errRes == nil {
		t.Fatal("expected tool-not-found error")
	}
}

func TestCallToolInvalidParams(t *testing.T) {
	s := &Server{}
	result, errRes := s.callTool(json.RawMessage(`not json`))
	if result != nil || errRes == nil {
		t.Fatal("expected invalid-params error")
	}
}

func TestHandlersRejectMissingParams(t *testing.T) {
	// Param validation runs before any store access, so a zero server is
	// enough to exercise the rejection paths.
	s := &Server{}
	ctx := context.Background()

	if _, err := s.handleImportCaseTable(arguments{}); err == nil {
		t.Error("import without path must fail")
	}
	if _, err := s.handleDeleteCaseTable(arguments{}); err == nil {
		t.Error("delete without table_name must fail")
	}
	if _, err := s.handleAnalyzeCases(ctx, arguments{"table_name": "cases"}); err == nil {
		t.Error("analyze without analysis_type must fail")
	}
	if _, err := s.handleScoreDepartments(ctx, arguments{"table_name": "cases"}); err == nil {
		t.Error("score without category must fail")
	}
}

func TestListToolsShape(t *testing.T) {
	s := &Server{}
	listed := s.listTools().(map[string]interface{})
	tools := listed["tools"].([]interface{})

	want := map[string]bool{
		"import_case_table": false,
		"list_case_tables":  false,
		"delete_case_table": false,
		"analyze_cases":     false,
		"score_departments": false,
	}
	for _, raw := range tools {
		tool := raw.(map[string]interface{})
		name := tool["name"].(string)
		if _, ok := want[name]; ok {
			want[name] = true
		}
		if tool["inputSchema"] == nil {
			t.Errorf("tool %s has no input schema", name)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("tool %s not listed", name)
		}
	}
}
