// Package render turns resolved pages into HTML using embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/navigation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page kinds, one template each.
const (
	KindDocument  = "document"
	KindDirectory = "directory"
	KindNotFound  = "notfound"
	KindRedirect  = "redirect"
)

// View is the data every page template receives.
type View struct {
	SiteTitle   string
	Lang        string
	Title       string
	Description string
	// Current is the request path, used to mark active links.
	Current     string
	DocsHref    string
	Sections    []navigation.Item
	Sidebar     []navigation.Item
	Breadcrumbs []navigation.Crumb
	Siblings    []navigation.Item
	Items       []navigation.Item
	Body        template.HTML
}

// Renderer executes page templates.
type Renderer struct {
	pages    map[string]*template.Template
	redirect *template.Template
	markdown goldmark.Markdown
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	base, err := template.New("").Funcs(template.FuncMap{
		"hasPrefix": strings.HasPrefix,
	}).ParseFS(templateFS, "templates/layout.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{
		pages: make(map[string]*template.Template),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
	for _, kind := range []string{KindDocument, KindDirectory, KindNotFound} {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, "templates/"+kind+".tmpl"); err != nil {
			return nil, fmt.Errorf("parse %s template: %w", kind, err)
		}
		r.pages[kind] = t
	}
	r.redirect, err = template.ParseFS(templateFS, "templates/redirect.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse redirect template: %w", err)
	}
	return r, nil
}

// Markdown converts a stored document body to HTML. Code blocks are decoded
// back to their source text first so they render verbatim; raw HTML in the
// body is not passed through.
func (r *Renderer) Markdown(body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert(markdown.RestoreCodeBlocks([]byte(body)), &buf); err != nil {
		return "", err
	}
	// #nosec G203 -- goldmark output with unsafe HTML disabled.
	return template.HTML(buf.String()), nil
}

// Document renders a document page. v supplies the navigation chrome.
func (r *Renderer) Document(w io.Writer, doc *content.Document, v View) error {
	body, err := r.Markdown(doc.Body)
	if err != nil {
		return fmt.Errorf("convert %s: %w", strings.Join(doc.Path, "/"), err)
	}
	v.Title = doc.Title
	v.Description = doc.Description
	v.Body = body
	return r.execute(w, KindDocument, v)
}

// Directory renders a directory index page listing items.
func (r *Renderer) Directory(w io.Writer, dir *content.Directory, items []navigation.Item, v View) error {
	v.Title = dir.Title
	v.Description = dir.Description
	v.Items = items
	return r.execute(w, KindDirectory, v)
}

// Index renders the docs root listing the sections.
func (r *Renderer) Index(w io.Writer, v View) error {
	if v.Title == "" {
		v.Title = "Documentation"
	}
	v.Items = v.Sections
	return r.execute(w, KindDirectory, v)
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound(w io.Writer, v View) error {
	v.Title = "Not found"
	return r.execute(w, KindNotFound, v)
}

// Redirect renders a page pointing browsers at href.
func (r *Renderer) Redirect(w io.Writer, href string) error {
	var buf bytes.Buffer
	if err := r.redirect.Execute(&buf, href); err != nil {
		return fmt.Errorf("render redirect: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) execute(w io.Writer, kind string, v View) error {
	t, ok := r.pages[kind]
	if !ok {
		return fmt.Errorf("unknown page kind %q", kind)
	}
	if v.Lang == "" {
		v.Lang = "en"
	}
	if v.SiteTitle == "" {
		v.SiteTitle = "Docs"
	}
	// Buffered: a failing template writes nothing to w.
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
