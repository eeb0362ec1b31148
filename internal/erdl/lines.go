package erdl

import "strings"

// sourceLine is a trimmed, non-empty input line and its 1-based position
// in the original text.
type sourceLine struct {
	num  int
	text string
}

// splitLines drops blank lines but keeps counting them: line numbers are
// the ones an editor shows, not indexes among the non-blank lines.
func splitLines(text string) []sourceLine {
	var lines []sourceLine
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lines = append(lines, sourceLine{num: i + 1, text: trimmed})
	}
	return lines
}
