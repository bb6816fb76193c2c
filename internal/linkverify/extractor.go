// Package linkverify extracts links from rendered HTML and checks internal
// links against the set of generated pages.
package linkverify

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Link is one URL-bearing attribute found in a page.
type Link struct {
	URL string
	// Text is the anchor text, an image's alt text or a link element's rel.
	Text      string
	Tag       string
	Attribute string
	// IsInternal is set for relative links and links to the base URL's host.
	IsInternal bool
}

// linkAttrs maps each element that can reference another resource to the
// attribute holding the reference.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"video":  "src",
	"audio":  "src",
	"source": "src",
}

// Extract returns the links of an HTML document in document order.
// baseURL decides which absolute links count as internal.
func Extract(r io.Reader, baseURL string) ([]*Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid base URL").
			WithContext("base_url", baseURL).Build()
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	var links []*Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if l := linkOf(n, base); l != nil {
			links = append(links, l)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func linkOf(n *html.Node, base *url.URL) *Link {
	if n.Type != html.ElementNode {
		return nil
	}
	attr, ok := linkAttrs[n.Data]
	if !ok {
		return nil
	}
	val := attrValue(n, attr)
	if val == "" {
		return nil
	}
	l := &Link{URL: val, Tag: n.Data, Attribute: attr, IsInternal: internal(val, base)}
	switch n.Data {
	case "a":
		l.Text = strings.Join(strings.Fields(textOf(n)), " ")
	case "img":
		l.Text = attrValue(n, "alt")
	case "link":
		l.Text = attrValue(n, "rel")
	}
	return l
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c))
	}
	return b.String()
}

func internal(raw string, base *url.URL) bool {
	if strings.HasPrefix(raw, "#") || nonNavigable(raw) {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Host == "" {
		return true
	}
	return u.Host == base.Host
}

// nonNavigable reports schemes that never name a page.
func nonNavigable(raw string) bool {
	scheme, _, ok := strings.Cut(raw, ":")
	if !ok {
		return false
	}
	switch strings.ToLower(scheme) {
	case "mailto", "tel", "javascript", "data":
		return true
	}
	return false
}
