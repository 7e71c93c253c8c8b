// Package annotator injects API-stability annotations (public marker,
// versionadded and deprecated notes) into documentation text.
package annotator

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/olehluchkiv/docnote/internal/docstring"
)

// Config selects the argument editor and how a missing parser is treated.
type Config struct {
	// Editor handles argument directives; nil means a GoogleEditor.
	Editor ArgumentEditor
	// StrictArguments turns argument directives against an unavailable
	// editor into ErrParserUnavailable instead of a silent no-op.
	StrictArguments bool
}

// Annotator applies directives to documentation text.
type Annotator struct {
	editor ArgumentEditor
	strict bool
	logger *slog.Logger
}

// New creates an Annotator. A nil logger discards output.
func New(cfg Config, logger *slog.Logger) *Annotator {
	if cfg.Editor == nil {
		cfg.Editor = NewGoogleEditor()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Annotator{
		editor: cfg.Editor,
		strict: cfg.StrictArguments,
		logger: logger.With("component", "annotator"),
	}
}

var defaultAnnotator = New(Config{}, nil)

// Apply rewrites doc with a single directive.
func (a *Annotator) Apply(doc string, d Directive) (string, error) {
	switch {
	case d.Kind == KindPublic:
		return ApplyMarker(doc), nil
	case d.Kind != KindVersionAdded && d.Kind != KindDeprecated:
		return "", fmt.Errorf("unsupported directive kind %s", d.Kind)
	case d.Argument == "":
		return ApplyAfterSummary(doc, d.Text()), nil
	}

	if !a.editor.Available() {
		if a.strict {
			return "", fmt.Errorf("%s: %w", d, ErrParserUnavailable)
		}
		a.logger.Debug("argument directive skipped, no parser", "directive", d.String())
		return doc, nil
	}
	return a.editor.AppendToArgument(doc, d.Argument, d.Text())
}

// ApplyMarker prefixes the public marker onto doc without a separator.
func ApplyMarker(doc string) string {
	return PublicMarker + doc
}

// ApplyAfterSummary inserts text between the trimmed summary line and the
// dedented remainder of doc.
func ApplyAfterSummary(doc, text string) string {
	if doc == "" {
		return text + "\n"
	}
	summary, rest, found := strings.Cut(doc, "\n")
	summary = strings.TrimSpace(summary)
	if !found {
		return summary + "\n\n" + text + "\n"
	}
	return summary + "\n\n" + text + "\n\n" + docstring.Dedent(rest)
}

// ApplyBelowArgument inserts text below the description of argument using
// the Google-style grammar.
func ApplyBelowArgument(doc, argument, text string) (string, error) {
	return NewGoogleEditor().AppendToArgument(doc, argument, text)
}
