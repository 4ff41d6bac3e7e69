package dataset

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook loads the first sheet of an .xlsx export into a Dataset.
// The first row supplies the column names; the table name defaults to the
// file name without extension, matching how uploads were named upstream.
func ReadWorkbook(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ds := FromRows(name, rows[0], rows[1:])

	log.Info().
		Str("path", path).
		Str("sheet", sheet).
		Int("rows", len(ds.Rows)).
		Int("columns", len(ds.Columns)).
		Msg("Workbook ingested")

	return ds, nil
}

// FromRows builds a Dataset from a header row and raw string rows.
// Duplicate headers keep the first occurrence; later duplicates are dropped
// so that field resolution stays first-match deterministic.
func FromRows(name string, header []string, raw [][]string) *Dataset {
	var columns []string
	keep := make([]bool, len(header))
	seen := make(map[string]bool, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		header[i] = col
		if col == "" || seen[col] {
			if col != "" {
				log.Warn().Str("column", col).Msg("Duplicate column header dropped")
			}
			continue
		}
		seen[col] = true
		keep[i] = true
		columns = append(columns, col)
	}

	records := make([]Record, 0, len(raw))
	for _, cells := range raw {
		record := make(Record, len(columns))
		empty := true
		for i, col := range header {
			if !keep[i] {
				continue
			}
			var cell string
			if i < len(cells) {
				cell = strings.TrimSpace(cells[i])
			}
			v := CoerceCell(cell)
			if !v.IsNull() {
				empty = false
			}
			record[col] = v
		}
		if empty {
			continue
		}
		records = append(records, record)
	}

	return &Dataset{Name: name, Columns: columns, Rows: records}
}

// CoerceCell classifies a raw spreadsheet cell into a typed Value.
// Purely-numeric text becomes a number; everything else stays text so that
// date-like cells reach the temporal normalizer untouched.
func CoerceCell(cell string) Value {
	if cell == "" {
		return Null()
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return NumberValue(f)
	}
	return TextValue(cell)
}
