// Package site renders the standings as a single HTML page.
package site

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/midex/tourboard/internal/domain/types"
)

// Error constants
var (
	ErrRender = errors.New("standings page render failed")
)

//go:embed templates/index.html.tmpl
var templatesFS embed.FS

var page = template.Must(template.ParseFS(templatesFS, "templates/index.html.tmpl"))

// Dependencies are the read views the page shows.
type Dependencies interface {
	Leaderboard(ctx context.Context, limit int) (types.Standings, error)
	Events() []types.EventInfo
	PointsTable() types.PointsTable
}

// RootHandler handles root path requests.
type RootHandler struct {
	deps  Dependencies
	title string
}

// NewRootHandler creates a new root handler.
func NewRootHandler(deps Dependencies, title string) *RootHandler {
	return &RootHandler{deps: deps, title: title}
}

type pageData struct {
	Title     string
	Standings types.Standings
	Events    []types.EventInfo
	Points    types.PointsTable
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	st, err := h.deps.Leaderboard(r.Context(), 0)
	if err != nil {
		http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{Title: h.title, Standings: st, Events: h.deps.Events(), Points: h.deps.PointsTable()}
	if err := page.Execute(w, data); err != nil {
		http.Error(w, ErrRender.Error(), http.StatusInternalServerError)
	}
}

// Register attaches the standings page to mux at /.
func Register(_ context.Context, mux *http.ServeMux, h *RootHandler) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", h.HandleRoot)
}
