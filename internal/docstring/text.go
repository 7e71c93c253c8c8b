package docstring

import "strings"

const blankChars = " \t\r\v\f"

// CleanDoc normalizes docstring indentation: leading whitespace is removed
// from the first line, the common margin of the remaining lines is removed,
// and empty lines at the start and end are dropped.
func CleanDoc(text string) string {
	lines := strings.Split(text, "\n")

	margin := -1
	for _, line := range lines[1:] {
		content := strings.TrimLeft(line, blankChars)
		if content == "" {
			continue
		}
		indent := len(line) - len(content)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeft(lines[0], blankChars)
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) < margin {
				lines[i] = ""
				continue
			}
			lines[i] = lines[i][margin:]
		}
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

// Dedent removes the longest whitespace prefix shared by every non-blank
// line. Lines holding only spaces and tabs are emptied.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	var margin string
	first := true
	for i, line := range lines {
		content := strings.TrimLeft(line, " \t")
		if content == "" {
			lines[i] = ""
			continue
		}
		indent := line[:len(line)-len(content)]
		if first {
			margin = indent
			first = false
			continue
		}
		margin = commonPrefix(margin, indent)
	}

	if margin == "" {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// splitLines splits on line breaks without producing a trailing empty
// element for text that ends in a line break.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
