package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klytics/xlsq/internal/sqlite"
	"github.com/klytics/xlsq/internal/xlsx"
)

func TestAllCommandsRegistered(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := Run([]string{"--help"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		"export", "import", "inspect", "convert", "watch",
		"shell", "config", "completion", "version",
	} {
		if !strings.Contains(stdout.String(), name) {
			t.Errorf("command %q not listed in --help output", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := Run([]string{"version"}, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "xlsq") {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestExportRequiresFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := Run([]string{"export"}, &stdout, &stderr); err == nil {
		t.Error("export without --db should fail")
	}
}

func TestExportImportInspect(t *testing.T) {
	t.Setenv("XLSQ_NO_PROGRESS", "1")
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "src.db")
	xlsxPath := filepath.Join(dir, "out.xlsx")

	store, err := sqlite.OpenOrCreate(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.CreateTable("people", []string{"id", "name"}, false); err != nil {
		t.Fatal(err)
	}
	rows := [][]xlsx.Cell{
		{xlsx.Int64(1), xlsx.Text("ada")},
		{xlsx.Int64(2), xlsx.Text("bob")},
	}
	if _, err := store.InsertRows("people", 2, rows); err != nil {
		t.Fatal(err)
	}
	store.Close()

	var stdout, stderr bytes.Buffer
	if err := Run([]string{"export", "--db", dbPath, "--output", xlsxPath}, &stdout, &stderr); err != nil {
		t.Fatalf("export: %v (stderr: %s)", err, stderr.String())
	}

	stdout.Reset()
	if err := Run([]string{"inspect", xlsxPath}, &stdout, &stderr); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(stdout.String(), "people") {
		t.Errorf("inspect output = %q", stdout.String())
	}

	destPath := filepath.Join(dir, "dest.db")
	stdout.Reset()
	if err := Run([]string{"import", xlsxPath, "--db", destPath}, &stdout, &stderr); err != nil {
		t.Fatalf("import: %v (stderr: %s)", err, stderr.String())
	}

	dest, err := sqlite.Open(destPath)
	if err != nil {
		t.Fatal(err)
	}
	defer dest.Close()
	tables, err := dest.Tables()
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 || tables[0] != "people" {
		t.Errorf("tables = %v", tables)
	}
}

func TestConvertCommand(t *testing.T) {
	t.Setenv("XLSQ_NO_PROGRESS", "1")
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "data.xlsx")

	wb := xlsx.NewWorkbookWriter()
	sheet, err := wb.NewSheet("t", []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	sheet.AppendRow([]xlsx.Cell{xlsx.Int64(1), xlsx.Text("x")})
	if err := wb.WriteFile(xlsxPath); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if err := Run([]string{"convert", xlsxPath, "--to", "csv"}, &stdout, &stderr); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(stdout.String(), "a,b") || !strings.Contains(stdout.String(), "1,x") {
		t.Errorf("csv output = %q", stdout.String())
	}
}
