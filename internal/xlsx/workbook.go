package xlsx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

// SheetInfo is one entry of the workbook index: the declared tab name and
// the sheet's 1-based position in document order. Position, not the sheetId
// attribute, is what maps to the physical sheetN part; the two can differ
// and only position is reliable.
type SheetInfo struct {
	Name string
	Pos  int
}

type xmlWorkbook struct {
	Sheets struct {
		Sheet []struct {
			Name    string `xml:"name,attr"`
			SheetID string `xml:"sheetId,attr"`
		} `xml:"sheet"`
	} `xml:"sheets"`
}

// ParseWorkbookIndex reads xl/workbook.xml and returns the sheets in
// document order.
func ParseWorkbookIndex(data []byte) ([]SheetInfo, error) {
	var wb xmlWorkbook
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&wb); err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	infos := make([]SheetInfo, 0, len(wb.Sheets.Sheet))
	for i, s := range wb.Sheets.Sheet {
		infos = append(infos, SheetInfo{Name: s.Name, Pos: i + 1})
	}
	return infos, nil
}

// SelectSheets resolves selectors (sheet names or 1-based positions)
// against the index. With no selectors every sheet is returned in order. A
// selector that matches nothing is an error; resolution happens before any
// sheet is decoded.
func SelectSheets(index []SheetInfo, selectors []string) ([]SheetInfo, error) {
	if len(selectors) == 0 {
		return index, nil
	}
	out := make([]SheetInfo, 0, len(selectors))
	for _, sel := range selectors {
		info, err := findSheet(index, sel)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

func findSheet(index []SheetInfo, sel string) (SheetInfo, error) {
	for _, info := range index {
		if info.Name == sel {
			return info, nil
		}
	}
	if pos, err := strconv.Atoi(sel); err == nil && pos >= 1 && pos <= len(index) {
		return index[pos-1], nil
	}
	names := make([]string, len(index))
	for i, info := range index {
		names[i] = info.Name
	}
	return SheetInfo{}, fmt.Errorf("sheet %q not found — available sheets: %v", sel, names)
}
