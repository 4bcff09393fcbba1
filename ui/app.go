// Package ui is a small report browser: it lists generated report
// directories and renders their report.md as HTML.
package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"edakit/internal"
)

// Config holds UI application configuration
type Config struct {
	Port       string
	ReportsDir string
}

// App represents the report browser application
type App struct {
	router     *chi.Mux
	reportsDir string
	logger     *internal.Logger
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title>
<style>body{font-family:sans-serif;max-width:60rem;margin:2rem auto;padding:0 1rem}
table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:0.3rem 0.6rem}</style>
</head>
<body>{{.Body}}</body>
</html>`))

// NewApp creates a new report browser
func NewApp(config Config) (*App, error) {
	if config.ReportsDir == "" {
		return nil, fmt.Errorf("reports directory is required")
	}

	app := &App{
		router:     chi.NewRouter(),
		reportsDir: config.ReportsDir,
		logger:     internal.NewDefaultLogger(),
	}

	app.router.Use(middleware.RequestID)
	app.router.Use(middleware.Logger)
	app.router.Use(middleware.Recoverer)

	app.router.Get("/", app.handleIndex)
	app.router.Get("/view/{name}", app.handleView)

	filesDir := http.Dir(config.ReportsDir)
	app.router.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(filesDir)))

	return app, nil
}

// Router exposes the chi mux for tests
func (a *App) Router() *chi.Mux {
	return a.router
}

// Run serves until the listener fails
func (a *App) Run(addr string) error {
	a.logger.Info("[UI] report browser listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// handleIndex lists every directory under reportsDir that carries a report.md
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(a.reportsDir)
	if err != nil {
		http.Error(w, "reports directory not readable", http.StatusInternalServerError)
		return
	}

	body := "<h1>Reports</h1><ul>"
	found := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(a.reportsDir, entry.Name(), "report.md")); err != nil {
			continue
		}
		body += fmt.Sprintf(`<li><a href="/view/%s">%s</a></li>`, entry.Name(), entry.Name())
		found++
	}
	body += "</ul>"
	if found == 0 {
		body = "<h1>Reports</h1><p>No reports generated yet.</p>"
	}

	a.renderPage(w, "Reports", template.HTML(body))
}

// handleView renders one report.md as HTML
func (a *App) handleView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name != filepath.Base(name) || name == "." || name == ".." {
		http.Error(w, "invalid report name", http.StatusBadRequest)
		return
	}

	raw, err := os.ReadFile(filepath.Join(a.reportsDir, name, "report.md"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	rendered := markdown.Render(p.Parse(raw), renderer)

	a.renderPage(w, name, template.HTML(rendered))
}

func (a *App) renderPage(w http.ResponseWriter, title string, body template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, map[string]interface{}{"Title": title, "Body": body}); err != nil {
		a.logger.Error("[UI] template render failed: %v", err)
	}
}
