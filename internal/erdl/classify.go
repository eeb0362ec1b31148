package erdl

import (
	"strings"
	"unicode"
)

type lineKind int

const (
	unrecognizedLine lineKind = iota
	headerLine
	columnLine
)

// classify decides what a trimmed line declares. tableOpen reports whether
// a header has been seen before this line.
func classify(line string, tableOpen bool) lineKind {
	endsWithDash := strings.HasSuffix(line, "-")
	spaced := hasWhitespace(line)

	switch {
	case endsWithDash && !spaced:
		return headerLine
	case tableOpen && spaced && !endsWithDash:
		return columnLine
	default:
		return unrecognizedLine
	}
}

func hasWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
