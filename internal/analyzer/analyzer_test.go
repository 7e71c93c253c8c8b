package analyzer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func keys(r *Result) []string {
	out := make([]string, 0, len(r.Symbols))
	for _, s := range r.Symbols {
		out = append(out, s.Key)
	}
	return out
}

func TestAnalyzeShop(t *testing.T) {
	// go test sets cwd to the package directory.
	dir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "01_shop"))
	require.NoError(t, err)

	result, err := Analyze(context.Background(), dir, AnalyzeOptions{}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "example.com/shop", result.ModulePath)
	assert.Equal(t, []string{
		"example.com/shop/cart.Cart",
		"example.com/shop/cart.Cart.Add",
		"example.com/shop/cart.Cart.Total",
		"example.com/shop/cart.Checkout",
		"example.com/shop/cart.Item",
		"example.com/shop/cart.normalize",
		"example.com/shop/internal/ledger.Record",
	}, keys(result))

	checkout, ok := result.Lookup("example.com/shop/cart.Checkout")
	require.True(t, ok)
	assert.Equal(t, KindFunc, checkout.Kind)
	assert.Equal(t, "Checkout(items []cart.Item, coupon string) error", checkout.Signature)
	assert.Equal(t, "func Checkout(items []cart.Item, coupon string) error", checkout.Declaration())
	assert.Equal(t, filepath.Join("cart", "cart.go"), checkout.SourceFile)
	assert.Equal(t, "Checkout charges the cart.\n\n"+
		"Totals are computed from the current price list.\n\n"+
		"Args:\n\n"+
		"\titems: Items to charge.\n"+
		"\tcoupon: Optional coupon code.\n", checkout.Doc)

	add, ok := result.Lookup("example.com/shop/cart.Cart.Add")
	require.True(t, ok)
	assert.Equal(t, KindMethod, add.Kind)
	assert.Equal(t, "Cart", add.Receiver, "pointer receivers are stripped")
	assert.Equal(t, "func (Cart) Add(item cart.Item)", add.Declaration())

	cart, ok := result.Lookup("example.com/shop/cart.Cart")
	require.True(t, ok)
	assert.Equal(t, "type Cart struct", cart.Declaration())
	assert.Contains(t, cart.Doc, "Attributes:")
}

func TestAnalyzeMissingDir(t *testing.T) {
	_, err := Analyze(context.Background(), filepath.Join(t.TempDir(), "absent"), AnalyzeOptions{}, testLogger())
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	result := &Result{
		ModulePath: "example.com/m",
		Symbols: []Symbol{
			{Key: "example.com/m/a.Run", Name: "Run", PkgPath: "example.com/m/a"},
			{Key: "example.com/m/a.run", Name: "run", PkgPath: "example.com/m/a"},
			{Key: "example.com/m/a.dog.Run", Name: "Run", Receiver: "dog", PkgPath: "example.com/m/a"},
			{Key: "example.com/m/b.Walk", Name: "Walk", PkgPath: "example.com/m/b"},
		},
	}

	tests := []struct {
		name string
		opts AnalyzeOptions
		want []string
	}{
		{
			name: "exported only",
			want: []string{"example.com/m/a.Run", "example.com/m/b.Walk"},
		},
		{
			name: "include unexported",
			opts: AnalyzeOptions{IncludeUnexported: true},
			want: []string{"example.com/m/a.Run", "example.com/m/a.run", "example.com/m/a.dog.Run", "example.com/m/b.Walk"},
		},
		{
			name: "package prefix",
			opts: AnalyzeOptions{Filter: "example.com/m/b"},
			want: []string{"example.com/m/b.Walk"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(result, tt.opts)
			assert.Equal(t, tt.want, keys(got))
			assert.Equal(t, "example.com/m", got.ModulePath)
		})
	}
}

func TestDeclaration(t *testing.T) {
	assert.Equal(t, "func Run()", Symbol{Kind: KindFunc, Signature: "Run()"}.Declaration())
	assert.Equal(t, "func (Cat) Run()", Symbol{Kind: KindMethod, Receiver: "Cat", Signature: "Run()"}.Declaration())
	assert.Equal(t, "type Runner interface", Symbol{Kind: KindType, Signature: "Runner interface"}.Declaration())
}
