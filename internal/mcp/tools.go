package mcp

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "import_case_table",
				"description": "Import a case spreadsheet (.xlsx) into the store as a named table. The first sheet's header row supplies the column names. Guidance: call 'analyze_cases' or 'score_departments' next.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"path":       map[string]interface{}{"type": "string", "description": "Path to the .xlsx file"},
						"table_name": map[string]interface{}{"type": "string", "description": "Optional table name; defaults to the file name"},
					},
					"required": []string{"path"},
				},
			},
			map[string]interface{}{
				"name":        "list_case_tables",
				"description": "List the imported case tables.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "delete_case_table",
				"description": "Delete an imported case table. System tables are protected and cannot be deleted.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"table_name": map[string]interface{}{"type": "string", "description": "Name of the table to delete"},
					},
					"required": []string{"table_name"},
				},
			},
			map[string]interface{}{
				"name": "analyze_cases",
				"description": "Run one analysis over an imported case table: field resolution, time normalization and the requested aggregation, plus generated commentary. " +
					"Analysis types: time_analysis (daily trend and hourly peaks), space_analysis (street/community/area density), source_analysis (reporting channels), " +
					"type_analysis (category distributions), duplicate_analysis (repeat reports by problem and address), monthly_comparison (two most recent months).",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"table_name": map[string]interface{}{"type": "string", "description": "Name of the imported table"},
						"analysis_type": map[string]interface{}{
							"type": "string",
							"enum": []string{"time_analysis", "space_analysis", "source_analysis", "type_analysis", "duplicate_analysis", "monthly_comparison"},
						},
					},
					"required": []string{"table_name", "analysis_type"},
				},
			},
			map[string]interface{}{
				"name": "score_departments",
				"description": "Compute weighted composite performance scores and a ranking for every unit of an organizational category (enforcement squads, sanitation zones, greening zones, parks). " +
					"Scores combine on-time rate, overdue rate, delay rate and rework rate; ties keep roster order.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"table_name": map[string]interface{}{"type": "string", "description": "Name of the imported table"},
						"category":   map[string]interface{}{"type": "string", "description": "Organizational category, e.g. 执法中队"},
					},
					"required": []string{"table_name", "category"},
				},
			},
		},
	}
}
