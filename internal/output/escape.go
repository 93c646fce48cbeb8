package output

import (
	"strings"

	"github.com/hurou927/spam-graph/internal/table"
)

// EscapeCopyValue escapes a single cell for PostgreSQL COPY text format.
func EscapeCopyValue(c table.Cell) string {
	switch c.Kind() {
	case table.KindFlag:
		if b, _ := c.Flag(); b {
			return "t"
		}
		return "f"
	case table.KindText:
		s, _ := c.Text()
		return escapeString(s)
	default:
		return `\N`
	}
}

// escapeString applies COPY text format escaping.
func escapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
