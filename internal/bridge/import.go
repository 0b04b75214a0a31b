package bridge

import (
	"fmt"

	"github.com/klytics/xlsq/internal/sqlite"
	"github.com/klytics/xlsq/internal/xlsx"
)

// ImportOptions tune how decoded sheets become tables.
type ImportOptions struct {
	// TablePrefix is prepended to every created table name.
	TablePrefix string
	// Overwrite drops an existing table of the same name before creating
	// it. Off by default: imports should not silently destroy data.
	Overwrite bool
}

// ImportResult summarizes one import call. Sheets that failed to decode
// are reported, not fatal; the rest of the workbook still lands.
type ImportResult struct {
	File    string          `json:"file"`
	Tables  []ImportedTable `json:"tables"`
	Rows    int             `json:"rows"`
	Skipped []SkippedSheet  `json:"skipped,omitempty"`
}

// ImportedTable maps one decoded sheet to the table it populated.
type ImportedTable struct {
	Sheet   string `json:"sheet"`
	Table   string `json:"table"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
}

// SkippedSheet is a sheet that could not be decoded or loaded.
type SkippedSheet struct {
	Sheet  string `json:"sheet"`
	Reason string `json:"reason"`
}

// Import decodes the workbook at path and creates one table per sheet,
// named after the sheet, with column names taken from the header row.
// Selectors restrict the import to specific sheets by tab name or 1-based
// position. Progress, when non-nil, is called once per finished sheet.
func Import(store *sqlite.Store, path string, selectors []string, opts ImportOptions, progress func(sheet string)) (*ImportResult, error) {
	wb, err := xlsx.ReadFile(path, selectors...)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{File: path}
	for _, sk := range wb.Skipped {
		result.Skipped = append(result.Skipped, SkippedSheet{
			Sheet:  sk.Name,
			Reason: sk.Err.Error(),
		})
	}

	for _, sheet := range wb.Sheets {
		table := opts.TablePrefix + sheet.Name
		if len(sheet.Columns) == 0 {
			result.Skipped = append(result.Skipped, SkippedSheet{
				Sheet:  sheet.Name,
				Reason: "sheet is empty",
			})
			continue
		}
		if err := store.CreateTable(table, sheet.Columns, opts.Overwrite); err != nil {
			return result, err
		}
		n, err := store.InsertRows(table, len(sheet.Columns), sheet.Rows)
		if err != nil {
			return result, fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		result.Tables = append(result.Tables, ImportedTable{
			Sheet:   sheet.Name,
			Table:   table,
			Columns: len(sheet.Columns),
			Rows:    n,
		})
		result.Rows += n
		if progress != nil {
			progress(sheet.Name)
		}
	}
	return result, nil
}
