// Package render turns an annotation report into Markdown or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olehluchkiv/docnote/internal/annotator"
	"github.com/olehluchkiv/docnote/internal/pipeline"
)

// Options controls rendering.
type Options struct {
	// PublicOnly keeps only symbols carrying the public marker and strips
	// the marker from their text, the way a documentation generator
	// whitelists public API.
	PublicOnly bool
}

// Select returns the symbols to render, with the marker stripped when
// PublicOnly is set.
func Select(report *pipeline.Report, opts Options) []pipeline.AnnotatedSymbol {
	out := make([]pipeline.AnnotatedSymbol, 0, len(report.Symbols))
	for _, s := range report.Symbols {
		if opts.PublicOnly {
			if !s.Public {
				continue
			}
			s.Doc = strings.TrimPrefix(s.Doc, annotator.PublicMarker)
		}
		out = append(out, s)
	}
	return out
}

// Markdown renders one section per symbol with its signature and the
// annotated documentation verbatim.
func Markdown(report *pipeline.Report, opts Options) string {
	var b strings.Builder

	title := report.ModulePath
	if title == "" {
		title = report.Input
	}
	fmt.Fprintf(&b, "# %s\n", title)

	symbols := Select(report, opts)
	if len(symbols) == 0 {
		b.WriteString("\nNo symbols to document.\n")
	}

	for _, s := range symbols {
		fmt.Fprintf(&b, "\n## %s\n\n", displayName(s))
		fmt.Fprintf(&b, "`%s`", s.Declaration())
		if s.SourceFile != "" {
			fmt.Fprintf(&b, " (%s)", s.SourceFile)
		}
		b.WriteString("\n")
		if s.Doc != "" {
			b.WriteString("\n```rst\n")
			b.WriteString(s.Doc)
			if !strings.HasSuffix(s.Doc, "\n") {
				b.WriteString("\n")
			}
			b.WriteString("```\n")
		}
	}

	if len(report.Unmatched) > 0 {
		b.WriteString("\n## Unmatched manifest entries\n\n")
		for _, key := range report.Unmatched {
			fmt.Fprintf(&b, "- `%s`\n", key)
		}
	}
	return b.String()
}

// JSON renders the selected symbols as an indented JSON document.
func JSON(report *pipeline.Report, opts Options) ([]byte, error) {
	out := *report
	out.Symbols = Select(report, opts)
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

func displayName(s pipeline.AnnotatedSymbol) string {
	if s.Receiver != "" {
		return s.PkgName + "." + s.Receiver + "." + s.Name
	}
	return s.PkgName + "." + s.Name
}
