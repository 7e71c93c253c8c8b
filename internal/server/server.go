package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olehluchkiv/docnote/internal/pipeline"
	"github.com/olehluchkiv/docnote/internal/render"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>docnote - {{.Title}}</title>
  <style>
    *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      max-width: 60rem;
      margin: 0 auto;
      padding: 1rem;
      background-color: #f8f9fa;
      color: #212529;
    }

    @media (prefers-color-scheme: dark) {
      body { background-color: #1a1a2e; color: #e0e0e0; }
      pre { background-color: #2d2d44; border-color: #444; }
    }

    h1 { margin: 1rem 0; font-size: 1.4rem; font-weight: 600; }
    h2 { margin: 1.5rem 0 0.3rem; font-size: 1.1rem; }
    code.sig { font-size: 0.9rem; }

    .badge {
      display: inline-block;
      padding: 0.1rem 0.5rem;
      margin-left: 0.4rem;
      border-radius: 6px;
      font-size: 0.75rem;
      background-color: #2374ab;
      color: #fff;
    }

    pre {
      margin-top: 0.5rem;
      padding: 0.8rem;
      border: 1px solid #ccc;
      border-radius: 6px;
      background-color: #ffffff;
      white-space: pre-wrap;
    }

    .unmatched { margin-top: 2rem; color: #a33; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p>{{len .Symbols}} symbols. <a href="/docs.md">Markdown</a> | <a href="/api/symbols">JSON</a></p>
  {{range .Symbols}}
  <h2 id="{{.Key}}">{{.PkgName}}.{{if .Receiver}}{{.Receiver}}.{{end}}{{.Name}}{{if .Public}}<span class="badge">public</span>{{end}}</h2>
  <code class="sig">{{.Declaration}}</code>
  {{if .Doc}}<pre>{{.Doc}}</pre>{{end}}
  {{end}}
  {{if .Unmatched}}
  <div class="unmatched">
    <h2>Unmatched manifest entries</h2>
    <ul>{{range .Unmatched}}<li><code>{{.}}</code></li>{{end}}</ul>
  </div>
  {{end}}
</body>
</html>
`

// pageData holds the data passed to the HTML template.
type pageData struct {
	Title     string
	Symbols   []pipeline.AnnotatedSymbol
	Unmatched []string
}

// Options controls what the server exposes.
type Options struct {
	Port        int
	OpenBrowser bool
	Render      render.Options
}

// NewHandler builds the HTTP routes for a report.
func NewHandler(report *pipeline.Report, opts render.Options, logger *slog.Logger) (http.Handler, error) {
	tmpl, err := template.New("docs").Parse(htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML template: %w", err)
	}

	title := report.ModulePath
	if title == "" {
		title = report.Input
	}
	data := pageData{
		Title:     title,
		Symbols:   render.Select(report, opts),
		Unmatched: report.Unmatched,
	}
	markdown := render.Markdown(report, opts)
	symbolsJSON, err := render.JSON(report, opts)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request received", "method", r.Method, "path", r.URL.Path)
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			logger.Error("failed to render template", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/docs.md", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request received", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(markdown))
	})

	mux.HandleFunc("/api/symbols", func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request received", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(symbolsJSON)
	})

	return mux, nil
}

// Serve starts the HTTP server for the annotated report.
// It blocks until the context is cancelled or the listener fails.
func Serve(ctx context.Context, report *pipeline.Report, opts Options, logger *slog.Logger) error {
	logger = logger.With("component", "server")

	handler, err := NewHandler(report, opts.Render, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	url := fmt.Sprintf("http://localhost:%d", opts.Port)
	logger.Info("starting HTTP server", "addr", url, "symbols", len(report.Symbols))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		return nil
	})

	if opts.OpenBrowser {
		openInBrowser(url, logger)
	}

	return g.Wait()
}

// openInBrowser opens the given URL in the default system browser.
func openInBrowser(url string, logger *slog.Logger) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		logger.Warn("unsupported platform for opening browser", "os", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		logger.Warn("failed to open browser", "error", err)
	}
}
