package xlsx

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterHeaderStyle(t *testing.T) {
	wb := NewWorkbookWriter()
	sheet, err := wb.NewSheet("users", []string{"id", "name"})
	if err != nil {
		t.Fatal(err)
	}
	sheet.AppendRow([]Cell{Int64(1), Text("ada")})

	out := sheet.buf.String()
	if !strings.Contains(out, `<c r="A1" t="s" s="1">`) {
		t.Errorf("header cell missing bold style: %s", out)
	}
	if strings.Contains(out, `r="A2" t="s" s="1"`) {
		t.Errorf("data cell must not carry the header style: %s", out)
	}
}

func TestWriterSkipsNulls(t *testing.T) {
	wb := NewWorkbookWriter()
	sheet, err := wb.NewSheet("t", []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	sheet.AppendRow([]Cell{Int64(1), Null(), Int64(3)})

	out := sheet.buf.String()
	if !strings.Contains(out, `<c r="A2"><v>1</v></c>`) || !strings.Contains(out, `<c r="C2"><v>3</v></c>`) {
		t.Errorf("numeric cells missing: %s", out)
	}
	if strings.Contains(out, `r="B2"`) {
		t.Errorf("null cell must not be emitted: %s", out)
	}
}

func TestWriterAutoFilterRange(t *testing.T) {
	wb := NewWorkbookWriter()
	sheet, err := wb.NewSheet("t", []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	sheet.AppendRow([]Cell{Int64(1), Int64(2), Int64(3)})
	sheet.AppendRow([]Cell{Int64(4), Int64(5), Int64(6)})
	sheet.finish()

	if !strings.Contains(sheet.buf.String(), `<autoFilter ref="A1:C3"/>`) {
		t.Errorf("autofilter range wrong: %s", sheet.buf.String())
	}
}

func TestWriterSheetNameCollision(t *testing.T) {
	wb := NewWorkbookWriter()
	first, err := wb.NewSheet("Data", nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := wb.NewSheet("Data", nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.Name() != "Data" || second.Name() != "Data (1)" {
		t.Errorf("names = %q, %q", first.Name(), second.Name())
	}
}

func TestWriterTruncation(t *testing.T) {
	wb := NewWorkbookWriter()
	sheet, err := wb.NewSheet("big", []string{"text"})
	if err != nil {
		t.Fatal(err)
	}
	long := strings.Repeat("x", 40000)
	sheet.AppendRow([]Cell{Text(long)})
	sheet.AppendRow([]Cell{Text(long)})

	trunc := wb.Truncated()
	if trunc.Cells != 2 {
		t.Errorf("truncated cells = %d, want 2", trunc.Cells)
	}
	if trunc.FirstSheet != "big" || trunc.FirstRow != 2 || trunc.FirstCol != 1 {
		t.Errorf("first truncation = %+v", trunc)
	}

	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := ReadBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	got := back.Sheets[0].CellAt(0, 0)
	if got.Kind != KindText || len(got.Text) != MaxCellLen {
		t.Errorf("stored text length = %d, want %d", len(got.Text), MaxCellLen)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	wb := NewWorkbookWriter()
	sheet, err := wb.NewSheet("t", []string{"n"})
	if err != nil {
		t.Fatal(err)
	}
	sheet.AppendRow([]Cell{Int64(1)})
	if err := wb.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("workbook file is empty")
	}
	if _, err := ReadFile(path); err != nil {
		t.Errorf("written file does not read back: %v", err)
	}
}

func TestWriteToByteCount(t *testing.T) {
	wb := NewWorkbookWriter()
	if _, err := wb.NewSheet("t", []string{"a"}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	n, err := wb.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo reported %d bytes, buffer has %d", n, buf.Len())
	}
}
