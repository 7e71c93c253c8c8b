package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/docnote/internal/analyzer"
	"github.com/olehluchkiv/docnote/internal/annotator"
	"github.com/olehluchkiv/docnote/internal/manifest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sampleResult() *analyzer.Result {
	return &analyzer.Result{
		ModulePath: "example.com/shop",
		Symbols: []analyzer.Symbol{
			{
				Key:       "example.com/shop/cart.Checkout",
				Name:      "Checkout",
				PkgPath:   "example.com/shop/cart",
				PkgName:   "cart",
				Kind:      analyzer.KindFunc,
				Signature: "Checkout(items []Item, coupon string) error",
				Doc:       "Checkout charges the cart.\n\nArgs:\n\n\titems: Items to charge.\n\tcoupon: Optional coupon code.\n",
			},
			{
				Key:     "example.com/shop/cart.Total",
				Name:    "Total",
				PkgPath: "example.com/shop/cart",
				PkgName: "cart",
				Kind:    analyzer.KindFunc,
				Doc:     "Total counts the items.\n",
			},
		},
	}
}

func TestAnnotate(t *testing.T) {
	m := &manifest.Manifest{
		Version: 1,
		Symbols: []manifest.Entry{
			{
				Symbol: "example.com/shop/cart.Checkout",
				Specs: []manifest.DirectiveSpec{
					{Kind: "public"},
					{Kind: "deprecated", Version: "1.4.0", Argument: "coupon", Message: "Use discounts instead."},
				},
			},
			{Symbol: "example.com/shop/cart.Gone", Specs: []manifest.DirectiveSpec{{Kind: "public"}}},
		},
	}

	report, err := Annotate(sampleResult(), m, annotator.New(annotator.Config{}, nil), testLogger())
	require.NoError(t, err)

	assert.Equal(t, "example.com/shop", report.ModulePath)
	assert.Equal(t, []string{"example.com/shop/cart.Gone"}, report.Unmatched)
	require.Len(t, report.Symbols, 2)

	checkout := report.Symbols[0]
	assert.True(t, checkout.Public)
	assert.Equal(t, []string{"deprecated 1.4.0 (argument coupon)", "public"}, checkout.Directives)
	assert.Equal(t, "--Public API--Checkout charges the cart.\n"+
		"\n"+
		"Args:\n"+
		"    items:\n"+
		"        Items to charge.\n"+
		"    coupon:\n"+
		"        Optional coupon code.\n"+
		"        \n"+
		"        .. deprecated:: 1.4.0\n"+
		"            Use discounts instead.\n"+
		"        ", checkout.Doc)
	assert.Equal(t, sampleResult().Symbols[0].Doc, checkout.OriginalDoc)

	total := report.Symbols[1]
	assert.False(t, total.Public)
	assert.Empty(t, total.Directives)
	assert.Equal(t, total.OriginalDoc, total.Doc)
}

func TestAnnotate_MissingArgumentAborts(t *testing.T) {
	m := &manifest.Manifest{
		Version: 1,
		Symbols: []manifest.Entry{{
			Symbol: "example.com/shop/cart.Total",
			Specs:  []manifest.DirectiveSpec{{Kind: "versionadded", Version: "1.0", Argument: "nope"}},
		}},
	}

	_, err := Annotate(sampleResult(), m, annotator.New(annotator.Config{}, nil), testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, annotator.ErrArgumentNotFound)
	assert.Contains(t, err.Error(), "you specified nope.")
}

func TestAnnotate_ParserDisabled(t *testing.T) {
	m := &manifest.Manifest{
		Version: 1,
		Symbols: []manifest.Entry{{
			Symbol: "example.com/shop/cart.Total",
			Specs:  []manifest.DirectiveSpec{{Kind: "versionadded", Version: "1.0", Argument: "nope"}},
		}},
	}
	a := annotator.New(annotator.Config{Editor: annotator.NewNoopEditor()}, nil)

	report, err := Annotate(sampleResult(), m, a, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "Total counts the items.\n", report.Symbols[1].Doc)
}

func TestRunWithTestdata(t *testing.T) {
	// go test sets cwd to the package directory.
	dir := filepath.Join("..", "..", "testdata", "01_shop")

	report, cleanup, err := Run(context.Background(), Config{Input: dir}, testLogger())
	t.Cleanup(cleanup)
	require.NoError(t, err)

	assert.Equal(t, "example.com/shop", report.ModulePath)
	assert.Equal(t, dir, report.Input)
	assert.Equal(t, []string{"example.com/shop/cart.Removed"}, report.Unmatched)

	byKey := make(map[string]AnnotatedSymbol)
	for _, s := range report.Symbols {
		byKey[s.Key] = s
	}
	assert.NotContains(t, byKey, "example.com/shop/cart.normalize")
	assert.Contains(t, byKey, "example.com/shop/internal/ledger.Record")

	checkout := byKey["example.com/shop/cart.Checkout"]
	assert.True(t, checkout.Public)
	assert.Contains(t, checkout.Doc, "--Public API--Checkout charges the cart.\n\n.. versionadded:: 1.2.3\n    Added in version 1.2.3\n\n\n")
	assert.Contains(t, checkout.Doc, "    coupon:\n        Optional coupon code.\n\n        .. deprecated:: 1.4.0\n            Use discounts instead.\n")

	add := byKey["example.com/shop/cart.Cart.Add"]
	assert.Equal(t, analyzer.KindMethod, add.Kind)
	assert.True(t, add.Public)
}

func TestRunWithTestdata_Filter(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "01_shop")

	report, cleanup, err := Run(context.Background(), Config{Input: dir, Filter: "example.com/shop/internal"}, testLogger())
	t.Cleanup(cleanup)
	require.NoError(t, err)

	for _, s := range report.Symbols {
		assert.Equal(t, "example.com/shop/internal/ledger", s.PkgPath)
	}
	assert.Contains(t, report.Unmatched, "example.com/shop/cart.Checkout")
}

func TestRunMissingManifest(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "01_shop")

	_, cleanup, err := Run(context.Background(), Config{Input: dir, ManifestPath: filepath.Join(t.TempDir(), "none.yaml")}, testLogger())
	t.Cleanup(cleanup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest:")
}
