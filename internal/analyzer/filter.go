package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Filter applies filtering options to the analysis result.
func Filter(result *Result, opts AnalyzeOptions) *Result {
	filtered := &Result{ModulePath: result.ModulePath}

	for _, sym := range result.Symbols {
		// Filter unexported
		if !opts.IncludeUnexported {
			if isUnexported(sym.Name) || (sym.Receiver != "" && isUnexported(sym.Receiver)) {
				continue
			}
		}

		// Filter by package prefix
		if opts.Filter != "" && !strings.HasPrefix(sym.PkgPath, opts.Filter) {
			continue
		}

		filtered.Symbols = append(filtered.Symbols, sym)
	}

	return filtered
}

func isUnexported(name string) bool {
	if name == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}
