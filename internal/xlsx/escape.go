package xlsx

import "strings"

// escapeXML maps raw text to a form safe inside an XML text node. The five
// reserved characters become entities; control bytes below 0x20 other than
// tab, newline and carriage return become a single space; XML forbids them
// and dropping them would desync length accounting. Bytes are otherwise
// passed through opaquely, so invalid UTF-8 cannot make this fail.
//
// Worst case every byte becomes &quot; (6 bytes), so the builder is grown
// to 6*len+1 up front and never reallocates mid-escape.
func escapeXML(s string) string {
	var b strings.Builder
	b.Grow(6*len(s) + 1)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
				b.WriteByte(' ')
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}
