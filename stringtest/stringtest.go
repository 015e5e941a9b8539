package stringtest

import (
	"strings"
	"unicode/utf8"
)

// Input dedents a multi-line string literal for use as test input.
//
// One leading and one trailing newline are removed, whitespace-only lines
// become empty, and the indentation shared by all remaining lines is
// stripped. This lets inputs be written as indented raw strings:
//
//	input := stringtest.Input(`
//		a: 1
//		b:
//		  - x
//	`) // -> "a: 1\nb:\n  - x\n"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	prefix := ""
	first := true

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

		if first {
			prefix = indent
			first = false

			continue
		}

		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins lines with LF line endings, for expected multi-line
// renderings:
//
//	want := stringtest.JoinLF(
//		"[1111,",
//		" 2222]",
//	) // -> "[1111,\n 2222]"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// LineWidths returns the number of runes on each line of s. Occurrences of
// any marker are removed first, so wrap glyphs can be left out of a width
// budget.
func LineWidths(s string, markers ...string) []int {
	for _, m := range markers {
		s = strings.ReplaceAll(s, m, "")
	}

	lines := strings.Split(s, "\n")
	widths := make([]int, len(lines))

	for i, line := range lines {
		widths[i] = utf8.RuneCountInString(line)
	}

	return widths
}
