// Package convert renders decoded worksheets as text formats. All
// conversions are pure Go; no spreadsheet application or subprocess calls.
package convert

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/klytics/xlsq/internal/xlsx"
)

// Formats lists the supported output formats for a sheet.
var Formats = []string{"csv", "json", "md"}

// Sheet renders one sheet in the requested format.
func Sheet(sheet *xlsx.Sheet, format string) (string, error) {
	switch format {
	case "csv":
		return ToCSV(sheet), nil
	case "json":
		return ToJSON(sheet)
	case "md":
		return ToMarkdown(sheet), nil
	default:
		return "", fmt.Errorf("unsupported format %q (supported: %v)", format, Formats)
	}
}

// ToCSV renders the header and data rows as CSV. Null cells become empty
// fields, which is as close as CSV gets to null.
func ToCSV(sheet *xlsx.Sheet) string {
	var b strings.Builder
	writeCSVRow(&b, sheet.Columns)
	for r := range sheet.Rows {
		fields := make([]string, len(sheet.Columns))
		for c := range fields {
			fields[c] = sheet.CellAt(r, c).String()
		}
		writeCSVRow(&b, fields)
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if needsQuoting(f) {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		} else {
			b.WriteString(f)
		}
	}
	b.WriteByte('\n')
}

func needsQuoting(s string) bool {
	return strings.ContainsAny(s, ",\"\n\r")
}

// ToJSON renders data rows as an array of objects keyed by column name.
// Null cells become JSON null; numbers stay numbers.
func ToJSON(sheet *xlsx.Sheet) (string, error) {
	records := make([]map[string]any, 0, len(sheet.Rows))
	for r := range sheet.Rows {
		record := make(map[string]any, len(sheet.Columns))
		for c, name := range sheet.Columns {
			record[name] = cellValue(sheet.CellAt(r, c))
		}
		records = append(records, record)
	}
	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func cellValue(c xlsx.Cell) any {
	switch c.Kind {
	case xlsx.KindInt:
		return c.Int
	case xlsx.KindFloat:
		return c.Float
	case xlsx.KindText:
		return c.Text
	default:
		return nil
	}
}

// ToMarkdown renders the sheet as a GFM table.
func ToMarkdown(sheet *xlsx.Sheet) string {
	var b strings.Builder

	b.WriteString("| ")
	b.WriteString(strings.Join(sheet.Columns, " | "))
	b.WriteString(" |\n|")
	for range sheet.Columns {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for r := range sheet.Rows {
		cells := make([]string, len(sheet.Columns))
		for c := range cells {
			cells[c] = sheet.CellAt(r, c).String()
		}
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	return b.String()
}
