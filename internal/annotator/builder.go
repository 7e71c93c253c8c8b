package annotator

import (
	"fmt"
	"strings"
)

// Target pairs a callable with its documentation. Only Doc is rewritten.
type Target struct {
	Name      string
	Signature string
	Doc       string
}

// Builder applies directives to a Target one at a time, innermost first:
// the first With corresponds to the decorator closest to the definition.
type Builder struct {
	annotator *Annotator
	target    Target
	err       error
}

// Annotate starts a builder on target using the default annotator.
func Annotate(target Target) *Builder {
	return defaultAnnotator.Annotate(target)
}

// Annotate starts a builder on target.
func (a *Annotator) Annotate(target Target) *Builder {
	return &Builder{annotator: a, target: target}
}

// With applies d to the current documentation. After a failure further
// directives are ignored.
func (b *Builder) With(d Directive) *Builder {
	if b.err != nil {
		return b
	}
	doc, err := b.annotator.Apply(b.target.Doc, d)
	if err != nil {
		b.err = fmt.Errorf("annotating %q: %w", b.target.Name, err)
		return b
	}
	b.target.Doc = doc
	return b
}

// Build returns the annotated target or the first error.
func (b *Builder) Build() (Target, error) {
	if b.err != nil {
		return Target{}, b.err
	}
	return b.target, nil
}

// IsPublic reports whether doc carries the public marker.
func IsPublic(doc string) bool {
	return strings.HasPrefix(doc, PublicMarker)
}
