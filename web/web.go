// Package web holds the server rendered templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/orders"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/money"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/pagination"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/types"
	"github.com/shopspring/decimal"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutTemplate = "layout"

// Views is the parsed template set, one tree per page so every page can define its own content block.
type Views struct {
	pages map[string]*template.Template
}

// New parses the layout, the partials and every page under templates/pages.
func New() (*Views, error) {
	base, err := template.New(layoutTemplate).Funcs(Funcs()).ParseFS(templateFS, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	entries, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(templateFS, entry); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry, err)
		}
		pages[strings.TrimSuffix(path.Base(entry), ".html")] = clone
	}
	return &Views{pages: pages}, nil
}

// Has reports whether a page template exists.
func (v *Views) Has(name string) bool {
	_, ok := v.pages[name]
	return ok
}

// Render executes a page inside the layout.
func (v *Views) Render(w io.Writer, name string, data any) error {
	page, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return page.ExecuteTemplate(w, layoutTemplate, data)
}

// Static serves the embedded stylesheet and assets under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":        money.Format,
		"moneyWhole":   money.FormatWhole,
		"date":         func(t types.Timestamp) string { return t.Display() },
		"statusBadge":  orders.StatusBadge,
		"paymentBadge": orders.PaymentBadge,
		"typeLabel":    func(t enums.ProductType) string { return t.Label() },
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"pageURL":      pageURL,
		"isZero":       func(d decimal.Decimal) bool { return d.IsZero() },
		"derefID": func(id *int64) int64 {
			if id == nil {
				return 0
			}
			return *id
		},
	}
}

// pageURL sets page on a base query string. Page zero is left out.
func pageURL(basePath string, query url.Values, page int) string {
	next := url.Values{}
	for k, vs := range query {
		if k == "page" {
			continue
		}
		next[k] = vs
	}
	if page > 0 {
		next.Set("page", fmt.Sprint(page))
	}
	if encoded := next.Encode(); encoded != "" {
		return basePath + "?" + encoded
	}
	return basePath
}

// Pager is the data the pager partial expects.
type Pager struct {
	Window pagination.Window
	Path   string
	Query  url.Values
}
