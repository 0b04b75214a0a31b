// Package bridge connects the relational and spreadsheet sides: it drives
// exports of SQLite tables into a workbook and imports of workbook sheets
// into tables. Sheets are processed strictly sequentially: the shared
// string table and the sheet-name registry carry ordered state across the
// whole workbook.
package bridge

import (
	"fmt"

	"github.com/klytics/xlsq/internal/sqlite"
	"github.com/klytics/xlsq/internal/xlsx"
)

// ExportResult summarizes one export call.
type ExportResult struct {
	File      string          `json:"file"`
	Sheets    []ExportedSheet `json:"sheets"`
	Rows      int             `json:"rows"`
	Truncated xlsx.Truncation `json:"-"`
}

// ExportedSheet maps one source table to its final tab name.
type ExportedSheet struct {
	Table string `json:"table"`
	Sheet string `json:"sheet"`
	Rows  int    `json:"rows"`
}

// Warning renders the truncation tally as a one-line warning, or "" when
// nothing was truncated.
func (r *ExportResult) Warning() string {
	t := r.Truncated
	if t.Cells == 0 {
		return ""
	}
	return fmt.Sprintf(
		"%d cell(s) exceeded Excel's %d character limit and were truncated. First occurrence: sheet %q, row %d, column %d",
		t.Cells, xlsx.MaxCellLen, t.FirstSheet, t.FirstRow, t.FirstCol)
}

// Export writes the named tables to an .xlsx file at path, one sheet per
// table with a bold, autofiltered header row. With no tables named, every
// user table in the database is exported. Progress, when non-nil, is
// called once per finished table.
func Export(store *sqlite.Store, path string, tables []string, progress func(table string)) (*ExportResult, error) {
	if len(tables) == 0 {
		all, err := store.Tables()
		if err != nil {
			return nil, err
		}
		if len(all) == 0 {
			return nil, fmt.Errorf("database has no tables to export")
		}
		tables = all
	}

	w := xlsx.NewWorkbookWriter()
	result := &ExportResult{File: path}

	for _, table := range tables {
		cols, iter, err := store.ReadTable(table)
		if err != nil {
			return nil, err
		}
		sheet, err := w.NewSheet(table, cols)
		if err != nil {
			iter.Close()
			return nil, err
		}
		for {
			row, err := iter.Next()
			if err != nil {
				iter.Close()
				return nil, fmt.Errorf("could not read table %s: %w", table, err)
			}
			if row == nil {
				break
			}
			sheet.AppendRow(row)
		}
		if err := iter.Close(); err != nil {
			return nil, err
		}
		result.Sheets = append(result.Sheets, ExportedSheet{
			Table: table,
			Sheet: sheet.Name(),
			Rows:  sheet.Rows(),
		})
		result.Rows += sheet.Rows()
		if progress != nil {
			progress(table)
		}
	}

	if err := w.WriteFile(path); err != nil {
		return nil, err
	}
	result.Truncated = w.Truncated()
	return result, nil
}
