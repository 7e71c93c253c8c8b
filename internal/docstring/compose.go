package docstring

import "strings"

const indent = "    "

// Compose renders a parsed docstring in expanded style: every entry head
// sits on its own line with the description lines indented below it, so
// blank lines inside a description survive a later Parse. Trailing text
// comes last, separated by a blank line.
func Compose(d *Docstring) string {
	var parts []string
	if d.Summary != "" {
		parts = append(parts, d.Summary)
	}
	if d.BlankAfterSummary {
		parts = append(parts, "")
	}
	if d.Body != "" {
		parts = append(parts, d.Body)
	}
	if d.BlankAfterBody {
		parts = append(parts, "")
	}

	for _, kind := range composeOrder {
		parts = appendKind(parts, d.Sections, kind)
	}
	for _, s := range d.Sections {
		if isOrdered(s.Kind) {
			continue
		}
		parts = appendBlock(parts, s.Kind.Title(), s.Text)
	}
	if d.Trailing != "" {
		parts = append(parts, d.Trailing)
	}

	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "\n")
}

func isOrdered(k Kind) bool {
	for _, o := range composeOrder {
		if o == k {
			return true
		}
	}
	return false
}

func appendKind(parts []string, sections []*Section, kind Kind) []string {
	if !kind.HasEntries() {
		for _, s := range sections {
			if s.Kind == kind {
				parts = appendBlock(parts, kind.Title(), s.Text)
			}
		}
		return parts
	}

	var entries []*Entry
	for _, s := range sections {
		if s.Kind == kind {
			entries = append(entries, s.Entries...)
		}
	}
	if len(entries) == 0 {
		return parts
	}
	parts = append(parts, kind.Title())
	for _, e := range entries {
		parts = append(parts, composeEntry(e))
	}
	return append(parts, "")
}

func appendBlock(parts []string, title, text string) []string {
	parts = append(parts, title)
	if text != "" {
		lines := splitLines(text)
		for i, l := range lines {
			lines[i] = indent + l
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return append(parts, "")
}

func composeEntry(e *Entry) string {
	head := e.Name
	optional := ""
	if e.Optional {
		optional = ", optional"
	}
	switch {
	case e.Type != "" && head != "":
		head += " (" + e.Type + optional + "):"
	case e.Type != "":
		head += e.Type + optional + ":"
	default:
		head += ":"
	}
	head = indent + head

	if e.Description == "" {
		return head
	}
	lines := append([]string{head}, splitLines(e.Description)...)
	return strings.Join(lines, "\n"+indent+indent)
}
