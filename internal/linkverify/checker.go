package linkverify

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

// BrokenLink is an internal link whose target was not generated.
type BrokenLink struct {
	Page   string `json:"page"`
	URL    string `json:"url"`
	Text   string `json:"text,omitempty"`
	Target string `json:"target"`
}

// Checker verifies internal links under a path prefix against a known set
// of page paths.
type Checker struct {
	prefix string
	pages  map[string]struct{}
}

// NewChecker checks links whose path starts with prefix (for example
// "/docs"). Links outside the prefix are ignored.
func NewChecker(prefix string) *Checker {
	return &Checker{
		prefix: "/" + strings.Trim(prefix, "/"),
		pages:  make(map[string]struct{}),
	}
}

// AddPage records a generated page path.
func (c *Checker) AddPage(p string) {
	c.pages[normalize(p)] = struct{}{}
}

// Target returns the normalized page path a link on page points to, and
// whether the link falls under the checked prefix.
func (c *Checker) Target(page string, link *Link) (string, bool) {
	if !link.IsInternal || nonNavigable(link.URL) || strings.HasPrefix(link.URL, "#") {
		return "", false
	}
	u, err := url.Parse(link.URL)
	if err != nil || u.Path == "" {
		return "", false
	}
	base, err := url.Parse(page)
	if err != nil {
		return "", false
	}
	p := normalize(base.ResolveReference(u).Path)
	if p != c.prefix && !strings.HasPrefix(p, c.prefix+"/") {
		return "", false
	}
	return p, true
}

// Check returns the links on page whose targets are unknown, in input order.
func (c *Checker) Check(page string, links []*Link) []BrokenLink {
	var broken []BrokenLink
	for _, l := range links {
		target, ok := c.Target(page, l)
		if !ok {
			continue
		}
		if _, exists := c.pages[target]; !exists {
			broken = append(broken, BrokenLink{Page: page, URL: l.URL, Text: l.Text, Target: target})
		}
	}
	return broken
}

// Pages returns the recorded page paths, sorted.
func (c *Checker) Pages() []string {
	out := make([]string, 0, len(c.pages))
	for p := range c.pages {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func normalize(p string) string {
	p = path.Clean("/" + p)
	return strings.TrimSuffix(p, "/index.html")
}
