package mealmaster

import "strings"

// breakLine splits text so that head fits in width bytes. It breaks at the
// last space at or before width and drops that space; without one it cuts
// at width, moved back so a UTF-8 sequence is never split.
func breakLine(text string, width int) (head, rest string) {
	if len(text) <= width {
		return text, ""
	}
	if pos := strings.LastIndexByte(text[:width+1], ' '); pos > 0 {
		return text[:pos], text[pos+1:]
	}
	pos := width
	for pos > 1 && text[pos]&0xC0 == 0x80 {
		pos--
	}
	return text[:pos], text[pos:]
}

// wrap breaks text into lines of at most width bytes.
func wrap(text string, width int) []string {
	var lines []string
	for text != "" {
		var head string
		head, text = breakLine(text, width)
		lines = append(lines, head)
	}
	return lines
}
