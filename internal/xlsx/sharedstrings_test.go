package xlsx

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestInternAssignsStableIndices(t *testing.T) {
	tbl := NewSharedStrings()
	if idx := tbl.Intern("alpha"); idx != 0 {
		t.Fatalf("first intern = %d, want 0", idx)
	}
	if idx := tbl.Intern("beta"); idx != 1 {
		t.Fatalf("second intern = %d, want 1", idx)
	}
	if idx := tbl.Intern("alpha"); idx != 0 {
		t.Fatalf("repeat intern = %d, want 0", idx)
	}
	if tbl.Count() != 2 {
		t.Errorf("Count = %d, want 2", tbl.Count())
	}
	if tbl.RefCount() != 3 {
		t.Errorf("RefCount = %d, want 3", tbl.RefCount())
	}
}

func TestInternResolveRoundTrip(t *testing.T) {
	tbl := NewSharedStrings()
	values := []string{"", "a", "b", "a b", "\tindent"}
	for _, v := range values {
		idx := tbl.Intern(v)
		got, err := tbl.Resolve(idx)
		if err != nil {
			t.Fatalf("Resolve(%d): %v", idx, err)
		}
		if got != v {
			t.Errorf("Resolve(Intern(%q)) = %q", v, got)
		}
	}
}

func TestResolveOutOfRange(t *testing.T) {
	tbl := NewSharedStrings()
	tbl.Intern("only")
	for _, idx := range []int{-1, 1, 99} {
		if _, err := tbl.Resolve(idx); !errors.Is(err, ErrStringIndex) {
			t.Errorf("Resolve(%d) error = %v, want ErrStringIndex", idx, err)
		}
	}
}

func TestWriteXMLCounts(t *testing.T) {
	tbl := NewSharedStrings()
	tbl.Intern("x")
	tbl.Intern("y")
	tbl.Intern("x")

	var buf bytes.Buffer
	tbl.writeXML(&buf)
	out := buf.String()

	if !strings.Contains(out, `count="3"`) {
		t.Errorf("missing reference count in %s", out)
	}
	if !strings.Contains(out, `uniqueCount="2"`) {
		t.Errorf("missing unique count in %s", out)
	}
}

func TestWriteXMLSpacePreserve(t *testing.T) {
	tbl := NewSharedStrings()
	tbl.Intern(" leading")
	tbl.Intern("inner only")

	var buf bytes.Buffer
	tbl.writeXML(&buf)
	out := buf.String()

	if !strings.Contains(out, `<si><t xml:space="preserve"> leading</t></si>`) {
		t.Errorf("leading-space entry not preserved: %s", out)
	}
	if !strings.Contains(out, `<si><t>inner only</t></si>`) {
		t.Errorf("plain entry should not carry xml:space: %s", out)
	}
}

func TestParseSharedStrings(t *testing.T) {
	doc := xmlHeader + `<sst xmlns="` + nsMain + `" count="3" uniqueCount="3">` +
		`<si><t>first</t></si>` +
		`<si><r><t>rich </t></r><r><t>text</t></r></si>` +
		`<si><t xml:space="preserve"> padded </t></si>` +
		`</sst>`

	tbl, err := ParseSharedStrings([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "rich text", " padded "}
	if tbl.Count() != len(want) {
		t.Fatalf("Count = %d, want %d", tbl.Count(), len(want))
	}
	for i, w := range want {
		got, err := tbl.Resolve(i)
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Errorf("entry %d = %q, want %q", i, got, w)
		}
	}
}

func TestParseSharedStringsEmpty(t *testing.T) {
	tbl, err := ParseSharedStrings(nil)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Count() != 0 {
		t.Errorf("empty document should yield empty table, got %d entries", tbl.Count())
	}
}

func TestParseSharedStringsRoundTrip(t *testing.T) {
	src := NewSharedStrings()
	for _, v := range []string{"a", "b & c", "<d>", " e ", "line\nbreak"} {
		src.Intern(v)
	}
	var buf bytes.Buffer
	src.writeXML(&buf)

	back, err := ParseSharedStrings(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if back.Count() != src.Count() {
		t.Fatalf("Count = %d, want %d", back.Count(), src.Count())
	}
	for i := 0; i < src.Count(); i++ {
		want, _ := src.Resolve(i)
		got, err := back.Resolve(i)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("entry %d = %q, want %q", i, got, want)
		}
	}
}
