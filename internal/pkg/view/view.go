// Package view renders the web console's server-side HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/georgemunganga/printa-orders/internal/pkg/money"
	"github.com/georgemunganga/printa-orders/internal/pkg/notice"
)

//go:embed templates/*.html
var files embed.FS

// Page names.
const (
	PageOrders   = "orders"
	PageEditor   = "editor"
	PageProducts = "products"
)

// Page is the data every template receives. Data holds the page-specific view model.
type Page struct {
	Title  string
	Nav    string
	Notice notice.Notice
	Data   any
}

// Renderer holds one parsed template set per page, each combined with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"money": money.Format,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"decimal": func(d decimal.Decimal) string { return d.String() },
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageOrders, PageEditor, PageProducts} {
		t, err := template.New(page).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes page into a buffer first so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Page) {
	t, ok := r.pages[page]
	if !ok {
		http.Error(w, "unknown page "+page, http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("render %s: %v", page, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// StatusFor maps a notice to the HTTP status of the page that shows it.
func StatusFor(n notice.Notice) int {
	switch n.Kind {
	case notice.KindValidation:
		return http.StatusUnprocessableEntity
	case notice.KindFailure:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}
