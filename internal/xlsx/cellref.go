package xlsx

import (
	"fmt"
	"strconv"
)

// ColumnLetters converts a zero-based column index to its spreadsheet
// letters: 0="A", 25="Z", 26="AA", 701="ZZ", 702="AAA". Column addressing
// is bijective base-26: there is no letter for zero, so each round borrows
// one from the next digit.
func ColumnLetters(col int) string {
	var buf [8]byte
	i := len(buf)
	for col >= 0 {
		i--
		buf[i] = byte('A' + col%26)
		col = col/26 - 1
	}
	return string(buf[i:])
}

// ColumnIndex converts column letters back to a zero-based index. It is
// case-insensitive and fails on empty input or non-letter characters.
func ColumnIndex(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty column letters", ErrMalformedRef)
	}
	acc := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		switch {
		case c >= 'A' && c <= 'Z':
			acc = acc*26 + int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			acc = acc*26 + int(c-'a') + 1
		default:
			return 0, fmt.Errorf("%w: %q is not a column", ErrMalformedRef, letters)
		}
	}
	return acc - 1, nil
}

// ParseRef splits a cell reference like "AB67" into a zero-based column and
// a 1-based row. The letters prefix is maximal: parsing stops at the first
// digit.
func ParseRef(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && (ref[i] < '0' || ref[i] > '9') {
		i++
	}
	col, err = ColumnIndex(ref[:i])
	if err != nil {
		return 0, 0, err
	}
	row, err = strconv.Atoi(ref[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: bad row in %q", ErrMalformedRef, ref)
	}
	return col, row, nil
}

// FormatRef renders a zero-based column and 1-based row as a cell
// reference.
func FormatRef(col, row int) string {
	return ColumnLetters(col) + strconv.Itoa(row)
}
