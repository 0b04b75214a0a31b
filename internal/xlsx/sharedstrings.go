package xlsx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// SharedStrings is the workbook-level string table: an append-only,
// deduplicating interner. Each distinct raw string gets a stable integer
// index in first-insertion order; cells reference strings by that index.
//
// The table also tracks the total number of cell references separately from
// the unique count: the sst element's count attribute is "cells that used
// shared strings", not "distinct strings".
type SharedStrings struct {
	values  []string
	byValue map[string]int
	refs    int
}

// NewSharedStrings returns an empty table.
func NewSharedStrings() *SharedStrings {
	return &SharedStrings{byValue: make(map[string]int)}
}

// Intern returns the index for s, appending it if it has not been seen.
// Indices are never reused or reassigned within one workbook operation.
// Every call counts as one cell reference.
func (t *SharedStrings) Intern(s string) int {
	t.refs++
	if idx, ok := t.byValue[s]; ok {
		return idx
	}
	idx := len(t.values)
	t.values = append(t.values, s)
	t.byValue[s] = idx
	return idx
}

// Resolve returns the raw string for idx. A cell referencing an index with
// no entry means the source document is malformed.
func (t *SharedStrings) Resolve(idx int) (string, error) {
	if idx < 0 || idx >= len(t.values) {
		return "", fmt.Errorf("%w: %d of %d", ErrStringIndex, idx, len(t.values))
	}
	return t.values[idx], nil
}

// Count returns the number of distinct strings.
func (t *SharedStrings) Count() int { return len(t.values) }

// RefCount returns the number of cells that referenced the table.
func (t *SharedStrings) RefCount() int { return t.refs }

// writeXML serializes the table as xl/sharedStrings.xml, one si entry per
// distinct string in insertion order.
func (t *SharedStrings) writeXML(w *bytes.Buffer) {
	fmt.Fprintf(w, "%s<sst xmlns=%q count=\"%d\" uniqueCount=\"%d\">",
		xmlHeader, nsMain, t.refs, len(t.values))
	for _, s := range t.values {
		w.WriteString("<si><t")
		// xml:space keeps Excel from trimming significant whitespace.
		if needsSpacePreserve(s) {
			w.WriteString(` xml:space="preserve"`)
		}
		w.WriteString(">")
		w.WriteString(escapeXML(s))
		w.WriteString("</t></si>")
	}
	w.WriteString("</sst>")
}

func needsSpacePreserve(s string) bool {
	if s == "" {
		return false
	}
	return s[0] == ' ' || s[len(s)-1] == ' ' || strings.ContainsAny(s, "\t\n\r")
}

// ParseSharedStrings reads xl/sharedStrings.xml into a table. Rich-text
// runs collapse to their concatenated text: every t element inside one si
// contributes to the same entry. A nil or empty document yields an empty
// table, which is how a workbook with only inline and numeric cells looks.
func ParseSharedStrings(data []byte) (*SharedStrings, error) {
	t := NewSharedStrings()
	if len(data) == 0 {
		return t, nil
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		inSI  bool
		inT   bool
		depth int
		cur   strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("shared strings: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "si":
				inSI = true
				depth = 0
				cur.Reset()
			case "t":
				if inSI {
					inT = true
				}
			case "rPh":
				// Phonetic runs are annotations, not cell text.
				depth++
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "si":
				idx := len(t.values)
				s := cur.String()
				t.values = append(t.values, s)
				if _, ok := t.byValue[s]; !ok {
					t.byValue[s] = idx
				}
				inSI = false
			case "t":
				inT = false
			case "rPh":
				depth--
			}
		case xml.CharData:
			if inT && depth == 0 {
				cur.Write(el)
			}
		}
	}
	return t, nil
}
