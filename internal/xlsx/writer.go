package xlsx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Truncation records how many text cells were cut down to MaxCellLen while
// encoding, plus where it first happened, so callers can warn without
// failing the export.
type Truncation struct {
	Cells      int
	FirstSheet string
	FirstRow   int // 1-based worksheet row
	FirstCol   int // 1-based column
}

// WorkbookWriter assembles a workbook one sheet at a time and serializes it
// as a ZIP container. All sheets share a single string table and a single
// name registry, so sheets must be added strictly sequentially: finish one
// sheet before starting the next.
type WorkbookWriter struct {
	strings *SharedStrings
	names   *SheetNames
	sheets  []*SheetWriter
	trunc   Truncation
}

// NewWorkbookWriter returns an empty workbook.
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{
		strings: NewSharedStrings(),
		names:   NewSheetNames(),
	}
}

// Truncated reports the cell-truncation tally across all sheets so far.
func (w *WorkbookWriter) Truncated() Truncation { return w.trunc }

// NewSheet starts a worksheet named after table (sanitized and made unique)
// with the given header row. Header cells are interned as shared strings
// and written with the bold style.
func (w *WorkbookWriter) NewSheet(table string, columns []string) (*SheetWriter, error) {
	name, err := w.names.Sanitize(table, len(w.sheets)+1)
	if err != nil {
		return nil, err
	}

	s := &SheetWriter{wb: w, name: name, cols: len(columns)}
	s.buf.WriteString(xmlHeader)
	fmt.Fprintf(&s.buf, `<worksheet xmlns=%q xmlns:r=%q><sheetData>`, nsMain, nsRelationships)

	s.buf.WriteString(`<row r="1">`)
	for c, col := range columns {
		if len(col) > MaxCellLen {
			w.recordTruncation(s.name, 1, c+1)
			col = col[:MaxCellLen]
		}
		idx := w.strings.Intern(col)
		fmt.Fprintf(&s.buf, `<c r="%s" t="s" s="1"><v>%d</v></c>`, FormatRef(c, 1), idx)
	}
	s.buf.WriteString(`</row>`)
	s.lastRow = 1

	w.sheets = append(w.sheets, s)
	return s, nil
}

func (w *WorkbookWriter) recordTruncation(sheet string, row, col int) {
	w.trunc.Cells++
	if w.trunc.Cells == 1 {
		w.trunc.FirstSheet = sheet
		w.trunc.FirstRow = row
		w.trunc.FirstCol = col
	}
}

// SheetWriter emits one worksheet's rows. Rows are written in order; null
// cells are skipped entirely, which is the format's encoding for null.
type SheetWriter struct {
	wb      *WorkbookWriter
	name    string
	buf     bytes.Buffer
	cols    int
	lastRow int
}

// Name returns the sheet's final (sanitized, unique) tab name.
func (s *SheetWriter) Name() string { return s.name }

// Rows returns the number of data rows appended so far.
func (s *SheetWriter) Rows() int { return s.lastRow - 1 }

// AppendRow writes one data row. Integer and float values become numeric
// cells, text goes through the shared-string table, and nulls are not
// emitted at all. Text longer than MaxCellLen is truncated first.
func (s *SheetWriter) AppendRow(cells []Cell) {
	s.lastRow++
	fmt.Fprintf(&s.buf, `<row r="%d">`, s.lastRow)
	for c, cell := range cells {
		switch cell.Kind {
		case KindNull:
			continue
		case KindInt:
			fmt.Fprintf(&s.buf, `<c r="%s"><v>%d</v></c>`, FormatRef(c, s.lastRow), cell.Int)
		case KindFloat:
			fmt.Fprintf(&s.buf, `<c r="%s"><v>%s</v></c>`,
				FormatRef(c, s.lastRow), strconv.FormatFloat(cell.Float, 'g', 15, 64))
		case KindText:
			text := cell.Text
			if len(text) > MaxCellLen {
				s.wb.recordTruncation(s.name, s.lastRow, c+1)
				text = text[:MaxCellLen]
			}
			idx := s.wb.strings.Intern(text)
			fmt.Fprintf(&s.buf, `<c r="%s" t="s"><v>%d</v></c>`, FormatRef(c, s.lastRow), idx)
		}
	}
	s.buf.WriteString(`</row>`)
}

// finish closes the sheetData and appends the autofilter over the header
// and every data row. The range is only known once the last row has been
// written, which is why it trails sheetData.
func (s *SheetWriter) finish() {
	s.buf.WriteString(`</sheetData>`)
	if s.cols > 0 {
		fmt.Fprintf(&s.buf, `<autoFilter ref="A1:%s"/>`, FormatRef(s.cols-1, s.lastRow))
	}
	s.buf.WriteString(`</worksheet>`)
}

// WriteTo serializes the workbook container. The workbook is finalized by
// this call; adding sheets afterwards is not supported.
func (w *WorkbookWriter) WriteTo(out io.Writer) (int64, error) {
	cw := &countingWriter{w: out}
	zw := zip.NewWriter(cw)

	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.name
	}

	parts := []struct {
		name string
		data []byte
	}{
		{partContentTypes, contentTypesXML(len(w.sheets))},
		{partRels, []byte(relsXML)},
		{partWorkbookRels, workbookRelsXML(len(w.sheets))},
		{partWorkbook, workbookXML(names)},
		{partStyles, []byte(stylesXML)},
	}
	for _, p := range parts {
		if err := writePart(zw, p.name, p.data); err != nil {
			return cw.n, err
		}
	}

	for i, s := range w.sheets {
		s.finish()
		if err := writePart(zw, sheetPart(i+1), s.buf.Bytes()); err != nil {
			return cw.n, err
		}
	}

	var sst bytes.Buffer
	w.strings.writeXML(&sst)
	if err := writePart(zw, partSharedStrings, sst.Bytes()); err != nil {
		return cw.n, err
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("could not finalize container: %w", err)
	}
	return cw.n, nil
}

// WriteFile writes the workbook to path, replacing any existing file.
func (w *WorkbookWriter) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("could not create part %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("could not write part %s: %w", name, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
