package xlsx

import (
	"fmt"
	"strings"
)

// forbidden characters are deleted from candidate sheet names outright,
// not replaced with a placeholder.
const forbiddenNameChars = `:\/?*[]`

// collisionCap bounds the suffix search. In practice unreachable; hitting
// it is treated like any other resource exhaustion.
const collisionCap = 10000

// SheetNames assigns valid, unique tab names within one workbook.
// Uniqueness is strictly sequential: sheet i is only checked against sheets
// 0..i-1, so which colliding source name gets which suffix depends on
// assignment order.
type SheetNames struct {
	used map[string]bool
}

// NewSheetNames returns an empty name registry.
func NewSheetNames() *SheetNames {
	return &SheetNames{used: make(map[string]bool)}
}

// Sanitize normalizes raw into a valid sheet name, unique among the names
// assigned so far, and records it. pos is the sheet's 1-based position,
// used for the fallback name when nothing survives sanitization.
//
// The result is non-empty, at most 31 characters, free of : \ / ? * [ ]
// and does not begin or end with an apostrophe.
func (n *SheetNames) Sanitize(raw string, pos int) (string, error) {
	name := strings.TrimSpace(raw)

	var b strings.Builder
	for _, r := range name {
		if !strings.ContainsRune(forbiddenNameChars, r) {
			b.WriteRune(r)
		}
	}
	name = b.String()

	// A single leading and/or trailing apostrophe is stripped; Excel
	// forbids names that start or end with one.
	name = strings.TrimPrefix(name, "'")
	name = strings.TrimSuffix(name, "'")

	if name == "" {
		name = fmt.Sprintf("Sheet%d", pos)
	}
	name = truncateRunes(name, MaxSheetNameLen)

	if !n.used[name] {
		n.used[name] = true
		return name, nil
	}
	for i := 1; i <= collisionCap; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		cand := truncateRunes(name, MaxSheetNameLen-len(suffix)) + suffix
		if !n.used[cand] {
			n.used[cand] = true
			return cand, nil
		}
	}
	return "", fmt.Errorf("could not find a unique sheet name for %q", raw)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == max {
			return s[:pos]
		}
		i++
	}
	return s
}
