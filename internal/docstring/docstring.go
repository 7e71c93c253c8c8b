// Package docstring parses and renders structured (Google-style)
// documentation text: a summary line, an optional body and titled sections
// such as "Args:" whose entries read "name (type): description".
package docstring

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParse reports documentation text that does not follow the grammar.
var ErrParse = errors.New("malformed docstring")

// Kind identifies a section and decides how it is parsed and where it is
// rendered.
type Kind int

const (
	KindArgs Kind = iota
	KindAttributes
	KindReturns
	KindYields
	KindRaises
	KindExamples
)

// Title is the canonical heading a section is rendered under.
func (k Kind) Title() string {
	switch k {
	case KindArgs:
		return "Args:"
	case KindAttributes:
		return "Attributes:"
	case KindReturns:
		return "Returns:"
	case KindYields:
		return "Yields:"
	case KindRaises:
		return "Raises:"
	case KindExamples:
		return "Examples:"
	default:
		return ""
	}
}

// HasEntries reports whether the section is a list of named entries rather
// than a free-form block.
func (k Kind) HasEntries() bool {
	return k == KindArgs || k == KindAttributes || k == KindRaises
}

var sectionKinds = map[string]Kind{
	"Args":       KindArgs,
	"Arguments":  KindArgs,
	"Parameters": KindArgs,
	"Params":     KindArgs,
	"Attributes": KindAttributes,
	"Raises":     KindRaises,
	"Exceptions": KindRaises,
	"Except":     KindRaises,
	"Returns":    KindReturns,
	"Yields":     KindYields,
	"Example":    KindExamples,
	"Examples":   KindExamples,
}

// Rendering order of entry and block sections. Anything else follows in
// the order it was parsed.
var composeOrder = []Kind{KindArgs, KindAttributes, KindReturns, KindYields, KindRaises}

var (
	titleRe       = regexp.MustCompile(`(?m)^(Args|Arguments|Parameters|Params|Attributes|Raises|Exceptions|Except|Returns|Yields|Examples|Example):[ \t\r\f\v]*$`)
	unknownMetaRe = regexp.MustCompile(`\n\S`)
	leadingWSRe   = regexp.MustCompile(`^\s*`)
	typedArgRe    = regexp.MustCompile(`^\s*(.+?)\s*\(\s*(.*\S)\s*\)`)
)

// Entry is one named item of an entry section.
type Entry struct {
	Name        string
	Type        string
	Optional    bool
	Description string
}

// Section is one titled block. Entry sections fill Entries, block sections
// fill Text.
type Section struct {
	Title   string
	Kind    Kind
	Entries []*Entry
	Text    string
}

// Docstring is the parsed form of documentation text.
type Docstring struct {
	Summary           string
	BlankAfterSummary bool
	Body              string
	BlankAfterBody    bool
	Sections          []*Section
	// Trailing holds column-zero text that follows a section, such as a
	// closing "Deprecated:" paragraph. Compose writes it after all sections.
	Trailing string
}

// Arguments returns the entries of every argument section in order.
func (d *Docstring) Arguments() []*Entry {
	var out []*Entry
	for _, s := range d.Sections {
		if s.Kind == KindArgs {
			out = append(out, s.Entries...)
		}
	}
	return out
}

// Parse splits text into summary, body and sections.
func Parse(text string) (*Docstring, error) {
	doc := &Docstring{}
	if text == "" {
		return doc, nil
	}
	text = CleanDoc(text)

	descChunk, metaChunk := text, ""
	if loc := titleRe.FindStringIndex(text); loc != nil {
		descChunk, metaChunk = text[:loc[0]], text[loc[0]:]
	}

	summary, rest, found := strings.Cut(descChunk, "\n")
	doc.Summary = summary
	if found {
		doc.BlankAfterSummary = strings.HasPrefix(rest, "\n")
		doc.BlankAfterBody = strings.HasSuffix(rest, "\n\n")
		doc.Body = strings.TrimSpace(rest)
	}

	matches := titleRe.FindAllStringSubmatchIndex(metaChunk, -1)
	for j, m := range matches {
		end := len(metaChunk)
		if j+1 < len(matches) {
			end = matches[j+1][0]
		}
		title := metaChunk[m[2]:m[3]]
		details := metaChunk[m[1]:end]
		if loc := unknownMetaRe.FindStringIndex(details); loc != nil {
			doc.appendTrailing(strings.Trim(details[loc[0]:], "\n"))
			details = details[:loc[0]]
		}
		section, err := parseSection(title, strings.Trim(details, "\n"))
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

func (d *Docstring) appendTrailing(text string) {
	if text == "" {
		return
	}
	if d.Trailing != "" {
		d.Trailing += "\n\n"
	}
	d.Trailing += text
}

func parseSection(title, chunk string) (*Section, error) {
	kind := sectionKinds[title]
	section := &Section{Title: title, Kind: kind}

	if !kind.HasEntries() {
		section.Text = CleanDoc(chunk)
		return section, nil
	}

	indent := leadingWSRe.FindString(chunk)
	entryRe, err := regexp.Compile(`(?m)^` + regexp.QuoteMeta(indent) + `\S`)
	if err != nil {
		return nil, fmt.Errorf("%w: section %q: %v", ErrParse, title, err)
	}
	starts := entryRe.FindAllStringIndex(chunk, -1)
	if len(starts) == 0 {
		return nil, fmt.Errorf("%w: no entries in section %q", ErrParse, title)
	}

	for i, loc := range starts {
		start := loc[0] + len(indent)
		end := len(chunk)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		entry, err := parseEntry(kind, strings.Trim(chunk[start:end], "\n"))
		if err != nil {
			return nil, err
		}
		section.Entries = append(section.Entries, entry)
	}
	return section, nil
}

func parseEntry(kind Kind, text string) (*Entry, error) {
	before, desc, found := strings.Cut(text, ":")
	if !found {
		return nil, fmt.Errorf("%w: expected a colon in %q", ErrParse, text)
	}
	if desc != "" {
		desc = strings.TrimPrefix(desc, " ")
		if first, rest, ok := strings.Cut(desc, "\n"); ok {
			desc = first + "\n" + CleanDoc(rest)
		}
		desc = strings.Trim(desc, "\n")
	}

	entry := &Entry{Name: before, Description: desc}
	if kind == KindRaises {
		return entry, nil
	}
	if m := typedArgRe.FindStringSubmatch(before); m != nil {
		entry.Name, entry.Type = m[1], m[2]
		switch {
		case strings.HasSuffix(entry.Type, ", optional"):
			entry.Optional = true
			entry.Type = strings.TrimSuffix(entry.Type, ", optional")
		case strings.HasSuffix(entry.Type, "?"):
			entry.Optional = true
			entry.Type = strings.TrimSuffix(entry.Type, "?")
		}
	}
	return entry, nil
}
