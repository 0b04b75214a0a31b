package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Sheet is one fully decoded worksheet: the disambiguated header names and
// the dense data grid. Rows are ragged; short rows are implicitly padded
// with nulls on access, see CellAt.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]Cell
}

// CellAt returns the cell at data row r and column c (both 0-based).
// Positions beyond a row's materialized cells are null.
func (s *Sheet) CellAt(r, c int) Cell {
	if r < 0 || r >= len(s.Rows) || c < 0 || c >= len(s.Rows[r]) {
		return Null()
	}
	return s.Rows[r][c]
}

// SkippedSheet records a sheet that failed to decode. One sheet's failure
// does not abort the rest of the workbook.
type SkippedSheet struct {
	Name string
	Err  error
}

// Workbook is the result of decoding a container: the sheets that decoded
// cleanly, in workbook order, plus the ones that had to be skipped.
type Workbook struct {
	Sheets  []*Sheet
	Skipped []SkippedSheet
}

// Sheet returns a decoded sheet by name.
func (wb *Workbook) Sheet(name string) (*Sheet, error) {
	for _, s := range wb.Sheets {
		if s.Name == name {
			return s, nil
		}
	}
	available := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		available[i] = s.Name
	}
	return nil, fmt.Errorf("sheet %q not found — available sheets: %v", name, available)
}

// ReadFile decodes the workbook at path. Selectors restrict decoding to
// the named sheets (by tab name or 1-based position); with none given,
// every sheet is decoded.
func ReadFile(path string, selectors ...string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer zr.Close()
	return readContainer(&zr.Reader, selectors)
}

// ReadBytes decodes a workbook held in memory.
func ReadBytes(data []byte, selectors ...string) (*Workbook, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("could not read workbook data: %w", err)
	}
	return readContainer(zr, selectors)
}

func readContainer(zr *zip.Reader, selectors []string) (*Workbook, error) {
	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	wbData, err := readPart(parts, partWorkbook)
	if err != nil {
		return nil, err
	}
	if wbData == nil {
		return nil, ErrNoWorkbook
	}
	index, err := ParseWorkbookIndex(wbData)
	if err != nil {
		return nil, err
	}
	selected, err := SelectSheets(index, selectors)
	if err != nil {
		return nil, err
	}

	// A workbook holding only inline and numeric cells legitimately has no
	// shared strings part; that reads as an empty table, not an error.
	ssData, err := readPart(parts, partSharedStrings)
	if err != nil {
		return nil, err
	}
	shared, err := ParseSharedStrings(ssData)
	if err != nil {
		return nil, err
	}

	wb := &Workbook{}
	for _, info := range selected {
		data, err := readPart(parts, sheetPart(info.Pos))
		if err == nil && data == nil {
			err = fmt.Errorf("missing part %s", sheetPart(info.Pos))
		}
		if err != nil {
			wb.Skipped = append(wb.Skipped, SkippedSheet{Name: info.Name, Err: err})
			continue
		}
		sheet, err := decodeSheet(data, shared)
		if err != nil {
			wb.Skipped = append(wb.Skipped, SkippedSheet{Name: info.Name, Err: err})
			continue
		}
		sheet.Name = info.Name
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

func readPart(parts map[string]*zip.File, name string) ([]byte, error) {
	f, ok := parts[name]
	if !ok {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open part %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("could not read part %s: %w", name, err)
	}
	return data, nil
}

// cellType mirrors the worksheet t attribute.
type cellType int

const (
	typeNumber cellType = iota
	typeShared
	typeInline
	typeFormulaStr
	typeBool
)

// decodeSheet reconstructs the dense grid from one worksheet part. The
// format stores neither empty cells nor empty rows, so the decoder fills
// every gap with nulls: between cells within a row (from the column
// distance of consecutive references) and between rows (from the row
// numbers). The first row becomes the column names.
func decodeSheet(data []byte, shared *SharedStrings) (*Sheet, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		rows    [][]Cell
		cur     []Cell
		inRow   bool
		inCell  bool
		inV     bool
		inIS    bool
		inT     bool
		ctype   cellType
		hasRef  bool
		col     int
		prevCol int
		text    strings.Builder
		maxCols int
	)

	endRow := func() {
		if len(cur) > maxCols {
			maxCols = len(cur)
		}
		rows = append(rows, cur)
		cur = nil
		inRow = false
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("worksheet: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "row":
				rowNum := len(rows) + 1
				for _, a := range el.Attr {
					if a.Name.Local == "r" {
						if n, err := strconv.Atoi(a.Value); err == nil {
							rowNum = n
						}
					}
				}
				if rowNum <= len(rows) {
					return nil, fmt.Errorf("%w: row %d out of order", ErrMalformedRef, rowNum)
				}
				// Wholly absent rows still occupy their slots.
				for len(rows) < rowNum-1 {
					rows = append(rows, nil)
				}
				inRow = true
				prevCol = -1
				cur = nil
			case "c":
				if !inRow {
					continue
				}
				inCell = true
				ctype = typeNumber
				hasRef = false
				text.Reset()
				for _, a := range el.Attr {
					switch a.Name.Local {
					case "r":
						c, _, err := ParseRef(a.Value)
						if err != nil {
							return nil, err
						}
						col = c
						hasRef = true
					case "t":
						switch a.Value {
						case "s":
							ctype = typeShared
						case "inlineStr":
							ctype = typeInline
						case "str":
							ctype = typeFormulaStr
						case "b":
							ctype = typeBool
						}
					}
				}
				if !hasRef {
					col = prevCol + 1
				}
				gap := col - prevCol - 1
				if gap < 0 {
					return nil, fmt.Errorf("%w: column %s repeats or steps back",
						ErrMalformedRef, ColumnLetters(col))
				}
				for i := 0; i < gap; i++ {
					cur = append(cur, Null())
				}
			case "v":
				if inCell {
					inV = true
					text.Reset()
				}
			case "is":
				if inCell {
					inIS = true
				}
			case "t":
				if inIS {
					inT = true
					text.Reset()
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "row":
				if inRow {
					endRow()
				}
			case "c":
				if !inCell {
					continue
				}
				cell, err := classifyCell(ctype, text.String(), shared)
				if err != nil {
					return nil, err
				}
				cur = append(cur, cell)
				prevCol = col
				inCell = false
			case "v":
				inV = false
			case "is":
				inIS = false
			case "t":
				inT = false
			}
		case xml.CharData:
			if inV || inT {
				text.Write(el)
			}
		}
	}

	sheet := &Sheet{}
	if len(rows) > 0 {
		sheet.Columns = columnNames(rows[0], maxCols)
		sheet.Rows = rows[1:]
	}
	return sheet, nil
}

// classifyCell turns the accumulated payload into a typed cell. An untyped
// payload is numeric by convention; integers are kept exact, everything
// else becomes a float. A payload that does not parse as a number at all is
// carried as text rather than lost.
func classifyCell(ctype cellType, payload string, shared *SharedStrings) (Cell, error) {
	switch ctype {
	case typeShared:
		idx, err := strconv.Atoi(strings.TrimSpace(payload))
		if err != nil {
			return Cell{}, fmt.Errorf("%w: bad index %q", ErrStringIndex, payload)
		}
		s, err := shared.Resolve(idx)
		if err != nil {
			return Cell{}, err
		}
		return Text(s), nil
	case typeInline, typeFormulaStr, typeBool:
		return Text(payload), nil
	default:
		if payload == "" {
			return Null(), nil
		}
		if n, err := strconv.ParseInt(payload, 10, 64); err == nil {
			return Int64(n), nil
		}
		if f, err := strconv.ParseFloat(payload, 64); err == nil {
			return Float64(f), nil
		}
		return Text(payload), nil
	}
}

// columnNames derives the relational column names from the decoded header
// row. Empty headers get a positional name, and duplicates get _1, _2, …
// suffixes, so the result is always width distinct non-empty names.
func columnNames(header []Cell, width int) []string {
	if width < len(header) {
		width = len(header)
	}
	names := make([]string, 0, width)
	seen := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		var name string
		if i < len(header) {
			name = header[i].String()
		}
		if name == "" {
			name = fmt.Sprintf("col%d", i+1)
		}
		candidate := name
		for n := 1; seen[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		seen[candidate] = true
		names = append(names, candidate)
	}
	return names
}
