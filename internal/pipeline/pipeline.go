// Package pipeline runs resolve -> analyze -> filter -> annotate and
// produces the report consumed by the renderers and the server.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/olehluchkiv/docnote/internal/analyzer"
	"github.com/olehluchkiv/docnote/internal/annotator"
	"github.com/olehluchkiv/docnote/internal/manifest"
	"github.com/olehluchkiv/docnote/internal/resolver"
)

// Config holds parameters for the annotation pipeline.
type Config struct {
	Input             string
	ManifestPath      string // defaults to <module root>/docnote.yaml
	Filter            string
	IncludeUnexported bool
	StrictArguments   bool
	DisableParser     bool // annotate without the structured docstring parser
}

// AnnotatedSymbol is an analyzed symbol with its rewritten documentation.
type AnnotatedSymbol struct {
	analyzer.Symbol
	OriginalDoc string   `json:"original_doc"`
	Public      bool     `json:"public"`
	Directives  []string `json:"directives,omitempty"`
}

// Report is the outcome of one pipeline run.
type Report struct {
	Input      string            `json:"input"`
	ModulePath string            `json:"module_path"`
	Symbols    []AnnotatedSymbol `json:"symbols"`
	Unmatched  []string          `json:"unmatched,omitempty"` // manifest keys with no symbol
}

// Run executes the full pipeline. The returned cleanup releases the
// resolved checkout and is safe to call on error.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (*Report, func(), error) {
	logger = logger.With("component", "pipeline")
	noop := func() {}

	logger.Info("resolving input", "input", cfg.Input)
	dir, cleanup, err := resolver.Resolve(ctx, cfg.Input, logger)
	if err != nil {
		return nil, noop, fmt.Errorf("resolve: %w", err)
	}

	manifestPath := cfg.ManifestPath
	if manifestPath == "" {
		manifestPath = filepath.Join(dir, manifest.DefaultFile)
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("manifest: %w", err)
	}

	logger.Info("analyzing packages", "dir", dir)
	opts := analyzer.AnalyzeOptions{
		Filter:            cfg.Filter,
		IncludeUnexported: cfg.IncludeUnexported,
	}
	result, err := analyzer.Analyze(ctx, dir, opts, logger)
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("analyze: %w", err)
	}
	result = analyzer.Filter(result, opts)

	var editor annotator.ArgumentEditor = annotator.NewGoogleEditor()
	if cfg.DisableParser {
		editor = annotator.NewNoopEditor()
	}
	a := annotator.New(annotator.Config{Editor: editor, StrictArguments: cfg.StrictArguments}, logger)

	report, err := Annotate(result, m, a, logger)
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	report.Input = cfg.Input
	return report, cleanup, nil
}

// Annotate applies the manifest to every analyzed symbol. The first
// annotation failure aborts the run.
func Annotate(result *analyzer.Result, m *manifest.Manifest, a *annotator.Annotator, logger *slog.Logger) (*Report, error) {
	report := &Report{ModulePath: result.ModulePath}

	for _, entry := range m.Symbols {
		if _, ok := result.Lookup(entry.Symbol); !ok {
			logger.Warn("manifest symbol not found", "symbol", entry.Symbol)
			report.Unmatched = append(report.Unmatched, entry.Symbol)
		}
	}

	for _, sym := range result.Symbols {
		out := AnnotatedSymbol{Symbol: sym, OriginalDoc: sym.Doc}

		if entry, ok := m.Lookup(sym.Key); ok {
			stack, err := entry.Stack()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", sym.Key, err)
			}
			b := a.Annotate(annotator.Target{Name: sym.Key, Signature: sym.Signature, Doc: sym.Doc})
			for _, d := range stack {
				b = b.With(d)
				out.Directives = append(out.Directives, d.String())
			}
			target, err := b.Build()
			if err != nil {
				return nil, err
			}
			out.Doc = target.Doc
			logger.Debug("symbol annotated", "symbol", sym.Key, "directives", len(stack))
		}

		out.Public = annotator.IsPublic(out.Doc)
		report.Symbols = append(report.Symbols, out)
	}

	logger.Info("annotation complete", "symbols", len(report.Symbols), "unmatched", len(report.Unmatched))
	return report, nil
}
