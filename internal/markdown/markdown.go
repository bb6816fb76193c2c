// Package markdown locates code blocks in document bodies with goldmark and
// rewrites their bytes in place.
package markdown

import (
	"html"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Range is a half-open byte range [Start, End) into a body.
type Range struct {
	Start int
	End   int
}

// ParseBody parses a document body (metadata already removed) into a goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// CodeBlockRanges returns the byte ranges of every fenced and indented code
// block line in body, in source order. Fence lines and info strings are not
// part of the ranges.
func CodeBlockRanges(body []byte) []Range {
	root := ParseBody(body)

	var ranges []Range
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch n.(type) {
		case *gmast.FencedCodeBlock, *gmast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				if seg.Stop > seg.Start {
					ranges = append(ranges, Range{Start: seg.Start, End: seg.Stop})
				}
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return ranges
}

var codeEscapes = map[byte]string{
	'&': "&amp;",
	'<': "&lt;",
	'>': "&gt;",
	'{': "&#123;",
	'}': "&#125;",
}

// EscapeCodeBlocks replaces &, <, >, { and } with HTML entities inside code
// blocks only. Text outside code blocks is returned untouched.
func EscapeCodeBlocks(body []byte) []byte {
	return rewriteCodeBlocks(body, escapeCode)
}

// RestoreCodeBlocks reverses EscapeCodeBlocks by decoding HTML entities
// inside code blocks.
func RestoreCodeBlocks(body []byte) []byte {
	return rewriteCodeBlocks(body, html.UnescapeString)
}

func rewriteCodeBlocks(body []byte, fn func(string) string) []byte {
	out, err := Splice(body, CodeBlockRanges(body), func(b []byte) []byte {
		return []byte(fn(string(b)))
	})
	if err != nil {
		// Ranges come from distinct lines of one parse and never overlap.
		return body
	}
	return out
}

func escapeCode(s string) string {
	var buf []byte
	for i := 0; i < len(s); i++ {
		if rep, ok := codeEscapes[s[i]]; ok {
			if buf == nil {
				buf = make([]byte, 0, len(s)+16)
				buf = append(buf, s[:i]...)
			}
			buf = append(buf, rep...)
			continue
		}
		if buf != nil {
			buf = append(buf, s[i])
		}
	}
	if buf == nil {
		return s
	}
	return string(buf)
}
