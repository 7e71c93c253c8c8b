package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/docnote/internal/analyzer"
	"github.com/olehluchkiv/docnote/internal/pipeline"
	"github.com/olehluchkiv/docnote/internal/render"
)

func testReport() *pipeline.Report {
	return &pipeline.Report{
		Input:      "./shop",
		ModulePath: "example.com/shop",
		Symbols: []pipeline.AnnotatedSymbol{
			{
				Symbol: analyzer.Symbol{
					Key: "example.com/shop/cart.Checkout", Name: "Checkout", PkgName: "cart",
					Kind: analyzer.KindFunc, Signature: "Checkout() error",
					Doc: "--Public API--Checkout charges the cart.\n",
				},
				Public: true,
			},
			{
				Symbol: analyzer.Symbol{
					Key: "example.com/shop/cart.Cart.Total", Name: "Total", Receiver: "Cart", PkgName: "cart",
					Kind: analyzer.KindMethod, Signature: "Total() int", Doc: "Total counts <items>.",
				},
			},
		},
		Unmatched: []string{"example.com/shop/cart.Removed"},
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandlerIndex(t *testing.T) {
	h, err := NewHandler(testReport(), render.Options{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<h1>example.com/shop</h1>")
	assert.Contains(t, body, "cart.Checkout<span class=\"badge\">public</span>")
	assert.Contains(t, body, "cart.Cart.Total")
	assert.Contains(t, body, "Total counts &lt;items&gt;.", "docs must be HTML-escaped")
	assert.Contains(t, body, "example.com/shop/cart.Removed")
}

func TestHandlerUnknownPath(t *testing.T) {
	h, err := NewHandler(testReport(), render.Options{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/nope").Code)
}

func TestHandlerMarkdown(t *testing.T) {
	h, err := NewHandler(testReport(), render.Options{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	rec := get(t, h, "/docs.md")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, render.Markdown(testReport(), render.Options{}), rec.Body.String())
}

func TestHandlerSymbols_PublicOnly(t *testing.T) {
	h, err := NewHandler(testReport(), render.Options{PublicOnly: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	rec := get(t, h, "/api/symbols")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var decoded pipeline.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	require.Len(t, decoded.Symbols, 1)
	assert.Equal(t, "Checkout charges the cart.\n", decoded.Symbols[0].Doc)
}

func TestServeStopsOnCancel(t *testing.T) {
	srv := httptest.NewUnstartedServer(nil)
	port := srv.Listener.Addr().(*net.TCPAddr).Port
	srv.Listener.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, testReport(), Options{Port: port}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	url := "http://localhost:" + strconv.Itoa(port) + "/docs.md"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
