package annotator

import (
	"fmt"

	"github.com/olehluchkiv/docnote/internal/docstring"
)

// ArgumentEditor inserts text below one argument of structured
// documentation.
type ArgumentEditor interface {
	AppendToArgument(doc, argument, text string) (string, error)
	// Available reports whether the editor actually understands the
	// docstring grammar.
	Available() bool
}

// GoogleEditor edits Google-style docstrings through the docstring package.
type GoogleEditor struct{}

// NewGoogleEditor returns an editor backed by the docstring grammar.
func NewGoogleEditor() *GoogleEditor { return &GoogleEditor{} }

// Available always reports true.
func (e *GoogleEditor) Available() bool { return true }

// AppendToArgument appends a blank line, text and a trailing blank line to
// every entry named argument, then re-renders the whole docstring.
func (e *GoogleEditor) AppendToArgument(doc, argument, text string) (string, error) {
	parsed, err := docstring.Parse(doc)
	if err != nil {
		return "", fmt.Errorf("parsing docstring: %w", err)
	}

	found := false
	for _, entry := range parsed.Arguments() {
		if entry.Name != argument {
			continue
		}
		found = true
		entry.Description += "\n\n" + text + "\n\n"
	}
	if !found {
		return "", &ArgumentNotFoundError{Name: argument}
	}

	return docstring.Compose(parsed), nil
}

// NoopEditor stands in when no structured parser is available: argument
// directives leave the documentation unchanged.
type NoopEditor struct{}

// NewNoopEditor returns an editor that never changes documentation.
func NewNoopEditor() *NoopEditor { return &NoopEditor{} }

// Available always reports false.
func (e *NoopEditor) Available() bool { return false }

// AppendToArgument returns doc unchanged.
func (e *NoopEditor) AppendToArgument(doc, _, _ string) (string, error) {
	return doc, nil
}
