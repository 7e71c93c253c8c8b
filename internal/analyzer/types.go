package analyzer

// SymbolKind classifies a documented declaration.
type SymbolKind string

const (
	KindFunc   SymbolKind = "func"
	KindMethod SymbolKind = "method"
	KindType   SymbolKind = "type"
)

// Symbol is a documented top-level declaration.
type Symbol struct {
	Key        string     `json:"key"` // pkgPath.Name or pkgPath.Recv.Name
	Name       string     `json:"name"`
	Receiver   string     `json:"receiver,omitempty"`
	PkgPath    string     `json:"pkg_path"`
	PkgName    string     `json:"pkg_name"`
	Kind       SymbolKind `json:"kind"`
	Signature  string     `json:"signature"`
	Doc        string     `json:"doc"`
	SourceFile string     `json:"source_file,omitempty"`
}

// Declaration renders the symbol the way it reads in Go source, without
// the body.
func (s Symbol) Declaration() string {
	switch s.Kind {
	case KindMethod:
		return "func (" + s.Receiver + ") " + s.Signature
	case KindType:
		return "type " + s.Signature
	default:
		return "func " + s.Signature
	}
}

// Result holds the complete analysis output.
type Result struct {
	Symbols    []Symbol
	ModulePath string // module path from go.mod (e.g. "github.com/user/repo")
}

// Lookup finds a symbol by key.
func (r *Result) Lookup(key string) (*Symbol, bool) {
	for i := range r.Symbols {
		if r.Symbols[i].Key == key {
			return &r.Symbols[i], true
		}
	}
	return nil, false
}

// AnalyzeOptions controls analysis behavior.
type AnalyzeOptions struct {
	Filter            string // package path prefix filter
	IncludeUnexported bool
}
