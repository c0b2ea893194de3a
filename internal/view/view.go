package view

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"storebill/internal/models"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

func detectBase() {
	// Detect templates directory whether running from repo root or a subdir
	// (e.g. cmd/server, or a package dir under go test).
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"lineTotal": func(it models.InvoiceItem) string {
			return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).StringFixed(2)
		},
	}
}

func load(name string) (*template.Template, error) {
	once.Do(detectBase)
	tplCache.RLock()
	t, ok := tplCache.m[name]
	tplCache.RUnlock()
	if ok {
		return t, nil
	}
	t, err := template.New(name).Funcs(funcs()).ParseFiles(filepath.Join(baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	tplCache.Lock()
	tplCache.m[name] = t
	tplCache.Unlock()
	return t, nil
}

// RenderInvoice writes the printable HTML document for an invoice.
func RenderInvoice(w io.Writer, store *models.Store, inv *models.Invoice) error {
	t, err := load("invoice.html")
	if err != nil {
		return err
	}
	return t.ExecuteTemplate(w, "invoice.html", map[string]any{"Store": store, "Invoice": inv})
}
