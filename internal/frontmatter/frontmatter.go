// Package frontmatter separates a document's "---" delimited YAML metadata
// block from its body and composes new documents from metadata fields.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrUnterminated reports a document that opens a metadata block but never
// closes it.
var ErrUnterminated = errors.New("metadata block is not terminated")

// Block is a document separated at its metadata delimiters.
type Block struct {
	// Meta is the YAML between the delimiter lines, including the newline
	// ending its last line.
	Meta    []byte
	Body    []byte
	Present bool
	// Newline is "\r\n" for documents whose first line ends that way, else "\n".
	Newline string
}

// Parse splits doc. A document whose first line is not a delimiter has no
// block and is all body. The block ends at the first later line that is
// exactly a delimiter; that line may be the last one, with or without a
// newline.
func Parse(doc []byte) (Block, error) {
	nl := newlineOf(doc)
	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(doc, open) {
		return Block{Body: doc, Newline: nl}, nil
	}

	rest := doc[len(open):]
	for offset := 0; ; {
		line, next, last := cutLine(rest, offset, nl)
		if string(line) == delimiter {
			return Block{Meta: rest[:offset], Body: rest[next:], Present: true, Newline: nl}, nil
		}
		if last {
			return Block{Newline: nl}, ErrUnterminated
		}
		offset = next
	}
}

// cutLine returns the line starting at offset, the offset after its newline,
// and whether it is the final line.
func cutLine(b []byte, offset int, nl string) (line []byte, next int, last bool) {
	end := bytes.Index(b[offset:], []byte(nl))
	if end < 0 {
		return b[offset:], len(b), true
	}
	return b[offset : offset+end], offset + end + len(nl), false
}

// Fields decodes the block's YAML. An absent or empty block has no fields.
func (b Block) Fields() (map[string]any, error) {
	fields := map[string]any{}
	if len(b.Meta) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(b.Meta, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Bytes reassembles the document. Parse followed by Bytes returns the input
// unchanged.
func (b Block) Bytes() []byte {
	if !b.Present {
		return b.Body
	}
	nl := b.Newline
	if nl == "" {
		nl = "\n"
	}
	out := make([]byte, 0, 2*(len(delimiter)+len(nl))+len(b.Meta)+len(b.Body))
	out = append(out, delimiter+nl...)
	out = append(out, b.Meta...)
	out = append(out, delimiter+nl...)
	return append(out, b.Body...)
}

// Compose builds a new document from fields and body.
func Compose(fields map[string]any, body []byte) ([]byte, error) {
	meta, err := Encode(fields)
	if err != nil {
		return nil, err
	}
	return Block{Meta: meta, Body: body, Present: true, Newline: "\n"}.Bytes(), nil
}

// Encode renders fields as YAML indented by two spaces. Map keys are sorted
// at every level so output is stable. No fields encode to nothing.
func Encode(fields map[string]any) ([]byte, error) {
	if len(fields) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fields); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newlineOf(doc []byte) string {
	if i := bytes.IndexByte(doc, '\n'); i > 0 && doc[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
