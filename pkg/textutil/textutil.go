// Package textutil holds the line handling shared by the text file
// properties.
package textutil

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// SplitLines splits content into lines without their terminators. A
// trailing newline does not produce an empty last line and a "\r" before
// a newline is dropped.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// SplitRawLines splits content into lines that keep their terminators,
// so joining them gives back content. Only the last line can lack a
// newline.
func SplitRawLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffContext is how many unchanged lines surround each change.
const diffContext = 2

// Diff returns a line diff of before and after with "-", "+" and " "
// prefixes, or "" when they are equal. Long unchanged runs are elided.
func Diff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var sb strings.Builder
	for i, d := range diffs {
		lines := SplitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			writeLines(&sb, "+", lines)
		case diffmatchpatch.DiffDelete:
			writeLines(&sb, "-", lines)
		default:
			head, tail := diffContext, diffContext
			if i == 0 {
				head = 0
			}
			if i == len(diffs)-1 {
				tail = 0
			}
			if len(lines) <= head+tail {
				writeLines(&sb, " ", lines)
				continue
			}
			writeLines(&sb, " ", lines[:head])
			sb.WriteString("@@\n")
			writeLines(&sb, " ", lines[len(lines)-tail:])
		}
	}
	return sb.String()
}

func writeLines(sb *strings.Builder, prefix string, lines []string) {
	for _, line := range lines {
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
}
