// Package manifest loads the YAML file that declares which annotations
// apply to which symbols.
//
// A manifest looks like:
//
//	version: 1
//	symbols:
//	  - symbol: example.com/shop/cart.Checkout
//	    directives:
//	      - kind: public
//	      - kind: deprecated
//	        version: 1.4.0
//	        argument: coupon
//	        message: Use discounts instead.
//
// Kinds are public, versionadded (alias new) and deprecated. Directives are
// written in declaration order, top to bottom, the way a decorator stack
// reads: the last one listed is applied first.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olehluchkiv/docnote/internal/annotator"
)

// DefaultFile is looked up in the module root when no path is given.
const DefaultFile = "docnote.yaml"

// CurrentVersion is the only manifest version understood.
const CurrentVersion = 1

// Manifest models docnote.yaml.
type Manifest struct {
	Version int     `yaml:"version"`
	Symbols []Entry `yaml:"symbols"`
}

// Entry lists the directives for one symbol key.
type Entry struct {
	Symbol string          `yaml:"symbol"`
	Specs  []DirectiveSpec `yaml:"directives"`
}

// DirectiveSpec is the YAML form of annotator.Directive.
type DirectiveSpec struct {
	Kind     string `yaml:"kind"`
	Version  string `yaml:"version,omitempty"`
	Message  string `yaml:"message,omitempty"`
	Argument string `yaml:"argument,omitempty"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates manifest YAML. Unknown fields are rejected.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the version, symbol keys and every directive.
func (m *Manifest) Validate() error {
	if m.Version != CurrentVersion {
		return fmt.Errorf("unsupported manifest version %d (want %d)", m.Version, CurrentVersion)
	}

	var errs []error
	seen := make(map[string]bool)
	for i, e := range m.Symbols {
		if e.Symbol == "" {
			errs = append(errs, fmt.Errorf("symbols[%d]: missing symbol", i))
			continue
		}
		if seen[e.Symbol] {
			errs = append(errs, fmt.Errorf("symbols[%d]: duplicate symbol %s", i, e.Symbol))
		}
		seen[e.Symbol] = true
		if _, err := e.Stack(); err != nil {
			errs = append(errs, fmt.Errorf("symbols[%d] (%s): %w", i, e.Symbol, err))
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the entry for a symbol key.
func (m *Manifest) Lookup(symbol string) (Entry, bool) {
	for _, e := range m.Symbols {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return Entry{}, false
}

// Stack converts the entry's directives to application order: innermost
// (last listed) first.
func (e Entry) Stack() ([]annotator.Directive, error) {
	out := make([]annotator.Directive, 0, len(e.Specs))
	for i := len(e.Specs) - 1; i >= 0; i-- {
		d, err := e.Specs[i].Directive()
		if err != nil {
			return nil, fmt.Errorf("directives[%d]: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Directive converts the manifest entry, rejecting unknown kinds and version-less
// notes.
func (s DirectiveSpec) Directive() (annotator.Directive, error) {
	kind, err := annotator.ParseKind(s.Kind)
	if err != nil {
		return annotator.Directive{}, err
	}
	if kind == annotator.KindPublic {
		if s.Argument != "" {
			return annotator.Directive{}, fmt.Errorf("public directive cannot target argument %q", s.Argument)
		}
		return annotator.MarkPublic(), nil
	}
	if s.Version == "" {
		return annotator.Directive{}, fmt.Errorf("%s directive requires a version", kind)
	}
	return annotator.Directive{
		Kind:     kind,
		Version:  s.Version,
		Message:  s.Message,
		Argument: s.Argument,
	}, nil
}
