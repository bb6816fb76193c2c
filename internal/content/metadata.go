package content

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/inful/mdfp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsite/internal/frontmatter"
	"git.home.luguber.info/inful/docsite/internal/markdown"
)

// Recognized metadata keys.
const (
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyOrder       = "order"
)

// Metadata is the recognized part of a document's metadata block.
type Metadata struct {
	Title       string
	HasTitle    bool
	Description string
	Order       int
	// Params holds every key that is not recognized, unchanged.
	Params map[string]any
}

// Extraction is the result of splitting a raw document.
type Extraction struct {
	Meta Metadata
	// Body is the text after the metadata block, code blocks sanitized.
	Body        []byte
	Fingerprint string
	// Problems lists malformed metadata that was replaced by defaults.
	Problems []error
}

// Extract splits raw into metadata and body. It never fails: a malformed
// metadata block yields default metadata and a Problems entry. When the
// block has a closing delimiter the body starts after it, otherwise the
// whole input is the body.
func Extract(raw []byte) Extraction {
	var ex Extraction
	ex.Meta.Params = map[string]any{}

	block, err := frontmatter.Parse(raw)
	body := block.Body
	switch {
	case err != nil:
		ex.Problems = append(ex.Problems, err)
		body = raw
	case block.Present:
		fields, perr := block.Fields()
		if perr != nil {
			ex.Problems = append(ex.Problems, fmt.Errorf("parse metadata: %w", perr))
			break
		}
		ex.Problems = append(ex.Problems, ex.Meta.apply(fields)...)
	}

	ex.Body = markdown.EscapeCodeBlocks(body)
	ex.Fingerprint = mdfp.CalculateFingerprintFromParts(string(block.Meta), string(body))
	return ex
}

// ErrMalformedField marks a recognized metadata key with an unusable value.
var ErrMalformedField = errors.New("malformed metadata field")

func (m *Metadata) apply(fields map[string]any) []error {
	var problems []error
	for k, v := range fields {
		switch k {
		case KeyTitle:
			if s, ok := scalarString(v); ok {
				// A blank title counts as missing.
				if strings.TrimSpace(s) != "" {
					m.Title, m.HasTitle = s, true
				}
			} else if v != nil {
				problems = append(problems, fmt.Errorf("%w: %s is not a scalar", ErrMalformedField, k))
			}
		case KeyDescription:
			if s, ok := scalarString(v); ok {
				m.Description = s
			} else if v != nil {
				problems = append(problems, fmt.Errorf("%w: %s is not a scalar", ErrMalformedField, k))
			}
		case KeyOrder:
			if n, ok := integer(v); ok {
				m.Order = n
			} else if v != nil {
				problems = append(problems, fmt.Errorf("%w: order %v is not an integer", ErrMalformedField, v))
			}
		default:
			m.Params[k] = v
		}
	}
	return problems
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(s), true
	}
	return "", false
}

func integer(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt32 && n <= math.MaxInt32 {
			return int(n), true
		}
	}
	return 0, false
}

// TitleFromName derives a display title from a slug: hyphen separated words
// with their first letter upper-cased ("getting-started" -> "Getting Started").
func TitleFromName(name string) string {
	caser := cases.Title(language.Und, cases.NoLower)
	words := strings.Split(name, "-")
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
