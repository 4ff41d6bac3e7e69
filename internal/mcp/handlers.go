package mcp

import (
	"context"
	"fmt"

	"caselens-mcp/internal/dataset"
)

// arguments wraps a tool call's argument map with typed accessors. Params
// are validated up front in each handler; a missing required string is a
// call error, not a panic.
type arguments map[string]interface{}

func (a arguments) str(key string) string {
	v, _ := a[key].(string)
	return v
}

func (a arguments) requireStr(key string) (string, error) {
	v, ok := a[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	return v, nil
}

func (s *Server) handleImportCaseTable(args arguments) (interface{}, error) {
	path, err := args.requireStr("path")
	if err != nil {
		return nil, err
	}

	ds, err := dataset.ReadWorkbook(path)
	if err != nil {
		return nil, err
	}
	if name := args.str("table_name"); name != "" {
		ds.Name = name
	}

	if err := s.store.SaveDataset(ds.Name, ds); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"table_name": ds.Name,
		"rows":       len(ds.Rows),
		"columns":    ds.Columns,
	}, nil
}

func (s *Server) handleListCaseTables() (interface{}, error) {
	tables, err := s.store.ListTables()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"tables": tables}, nil
}

func (s *Server) handleDeleteCaseTable(args arguments) (interface{}, error) {
	name, err := args.requireStr("table_name")
	if err != nil {
		return nil, err
	}
	if err := s.store.DropTable(name); err != nil {
		return nil, err
	}
	return map[string]interface{}{"deleted": name}, nil
}

func (s *Server) handleAnalyzeCases(ctx context.Context, args arguments) (interface{}, error) {
	name, err := args.requireStr("table_name")
	if err != nil {
		return nil, err
	}
	analysisType, err := args.requireStr("analysis_type")
	if err != nil {
		return nil, err
	}

	ds, err := s.store.LoadDataset(name)
	if err != nil {
		return nil, err
	}
	return s.engine.Analyze(ctx, ds, analysisType)
}

func (s *Server) handleScoreDepartments(ctx context.Context, args arguments) (interface{}, error) {
	name, err := args.requireStr("table_name")
	if err != nil {
		return nil, err
	}
	category, err := args.requireStr("category")
	if err != nil {
		return nil, err
	}

	ds, err := s.store.LoadDataset(name)
	if err != nil {
		return nil, err
	}
	return s.engine.ScoreDepartments(ctx, ds, category)
}
