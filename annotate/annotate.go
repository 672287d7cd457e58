// Package annotate flags significant rows in OCR text extracted from tables.
//
// OCR of a printed table yields one line per row. Rows carrying only figures
// (no letters) are grouped into runs; the last row of every run that is
// followed by a labelled row, and the last row of a run that ends the block,
// is prefixed with [Marker]:
//
//	lines := annotate.Lines([]string{"100", "200", "Total", "300"})
//	// ["100", "@ 200", "Total", "@ 300"]
//
// Annotation never reorders, merges or drops lines.
package annotate

import "strings"

// Marker is prepended to flagged lines.
const Marker = "@ "

// IsAlphabetic reports whether line contains at least one ASCII letter.
// Lines without letters (digits, punctuation, whitespace, empty) are
// numeric-or-symbolic.
func IsAlphabetic(line string) bool {
	for i := 0; i < len(line); i++ {
		c := line[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

// Lines returns a copy of lines with the last numeric-or-symbolic line of
// each run marked. The input slice is not modified.
func Lines(lines []string) []string {
	out := make([]string, 0, len(lines))
	pending := -1

	for _, line := range lines {
		if IsAlphabetic(line) {
			if pending >= 0 {
				out[pending] = mark(out[pending])
				pending = -1
			}
		} else {
			pending = len(out)
		}
		out = append(out, line)
	}

	// Block ended on a numeric run.
	if pending >= 0 {
		out[pending] = mark(out[pending])
	}

	return out
}

// mark prefixes line with Marker unless it already carries one.
func mark(line string) string {
	if strings.HasPrefix(line, Marker) {
		return line
	}
	return Marker + line
}

// Split trims surrounding whitespace from an OCR text block and splits it
// into lines. A blank block has no lines.
func Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Join joins lines with a single newline. No trailing newline is added.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// Text annotates a whole OCR text block.
func Text(text string) string {
	return Join(Lines(Split(text)))
}

// Marked returns the indices of lines that start with Marker.
func Marked(lines []string) []int {
	var idx []int
	for i, line := range lines {
		if strings.HasPrefix(line, Marker) {
			idx = append(idx, i)
		}
	}
	return idx
}
