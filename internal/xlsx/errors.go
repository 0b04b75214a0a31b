package xlsx

import "errors"

// Sentinel errors for decode-time failures. Both are sheet-scoped: a sheet
// that trips one of them is skipped, other sheets in the same workbook are
// unaffected.
var (
	// ErrMalformedRef marks a cell reference that fails to parse or that
	// steps backwards within its row.
	ErrMalformedRef = errors.New("malformed cell reference")

	// ErrStringIndex marks a shared-string index with no table entry.
	ErrStringIndex = errors.New("shared string index out of range")

	// ErrNoWorkbook marks a container with no xl/workbook.xml part. With no
	// sheet list to enumerate, the whole import is fatal.
	ErrNoWorkbook = errors.New("missing xl/workbook.xml")
)
