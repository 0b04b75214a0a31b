package convert

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/klytics/xlsq/internal/xlsx"
)

func sampleSheet() *xlsx.Sheet {
	return &xlsx.Sheet{
		Name:    "t",
		Columns: []string{"id", "name", "score"},
		Rows: [][]xlsx.Cell{
			{xlsx.Int64(1), xlsx.Text("ada"), xlsx.Float64(9.5)},
			{xlsx.Int64(2), xlsx.Text(`comma, "quote"`), xlsx.Null()},
		},
	}
}

func TestToCSV(t *testing.T) {
	got := ToCSV(sampleSheet())
	want := "id,name,score\n" +
		"1,ada,9.5\n" +
		`2,"comma, ""quote""",` + "\n"
	if got != want {
		t.Errorf("ToCSV = %q, want %q", got, want)
	}
}

func TestToCSVShortRow(t *testing.T) {
	sheet := &xlsx.Sheet{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]xlsx.Cell{{xlsx.Int64(1)}},
	}
	if got := ToCSV(sheet); got != "a,b,c\n1,,\n" {
		t.Errorf("ToCSV = %q", got)
	}
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(sampleSheet())
	if err != nil {
		t.Fatal(err)
	}
	var records []map[string]any
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0]["id"] != float64(1) {
		t.Errorf("id should stay numeric, got %T %v", records[0]["id"], records[0]["id"])
	}
	if records[0]["name"] != "ada" {
		t.Errorf("name = %v", records[0]["name"])
	}
	if v, ok := records[1]["score"]; !ok || v != nil {
		t.Errorf("null cell should be JSON null, got %v (present=%v)", v, ok)
	}
}

func TestToJSONEmptySheet(t *testing.T) {
	sheet := &xlsx.Sheet{Columns: []string{"a"}}
	out, err := ToJSON(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("empty sheet = %q, want []", out)
	}
}

func TestToMarkdown(t *testing.T) {
	got := ToMarkdown(sampleSheet())
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines: %q", len(lines), got)
	}
	if lines[0] != "| id | name | score |" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "| --- | --- | --- |" {
		t.Errorf("separator = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "| 1 | ada | 9.5 |") {
		t.Errorf("row = %q", lines[2])
	}
}

func TestSheetDispatch(t *testing.T) {
	sheet := sampleSheet()
	for _, f := range Formats {
		if _, err := Sheet(sheet, f); err != nil {
			t.Errorf("format %q: %v", f, err)
		}
	}
	if _, err := Sheet(sheet, "xml"); err == nil {
		t.Error("unsupported format should fail")
	}
}
