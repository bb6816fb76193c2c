package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		meta    string
		body    string
		present bool
	}{
		{name: "no block", doc: "# Title\n", body: "# Title\n"},
		{name: "empty document", doc: ""},
		{name: "delimiter not first", doc: "\n---\ntitle: x\n---\n", body: "\n---\ntitle: x\n---\n"},
		{name: "block and body", doc: "---\ntitle: Install\n---\n# Install\n", meta: "title: Install\n", body: "# Install\n", present: true},
		{name: "empty block", doc: "---\n---\nbody\n", body: "body\n", present: true},
		{name: "closing at end of input", doc: "---\ntitle: x\n---", meta: "title: x\n", present: true},
		{name: "first closing wins", doc: "---\na: 1\n---\nb\n---\n", meta: "a: 1\n", body: "b\n---\n", present: true},
		{name: "indented delimiter is content", doc: "---\na: |\n  ---\n---\n", meta: "a: |\n  ---\n", present: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			require.Equal(t, tt.present, b.Present)
			require.Equal(t, tt.meta, string(b.Meta))
			require.Equal(t, tt.body, string(b.Body))
			require.Equal(t, tt.doc, string(b.Bytes()))
		})
	}
}

func TestParse_CRLF(t *testing.T) {
	doc := "---\r\ntitle: Install\r\n---\r\nBody\r\n"
	b, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, "\r\n", b.Newline)
	require.Equal(t, "title: Install\r\n", string(b.Meta))
	require.Equal(t, "Body\r\n", string(b.Body))
	require.Equal(t, doc, string(b.Bytes()))

	fields, err := b.Fields()
	require.NoError(t, err)
	require.Equal(t, "Install", fields["title"])
}

func TestParse_Unterminated(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: x\nbody\n"))
	require.ErrorIs(t, err, ErrUnterminated)
}

func TestFields(t *testing.T) {
	b, err := Parse([]byte("---\ntitle: Install\norder: 2\ntags: [a, b]\n---\n"))
	require.NoError(t, err)
	fields, err := b.Fields()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"title": "Install", "order": 2, "tags": []any{"a", "b"}}, fields)

	fields, err = Block{}.Fields()
	require.NoError(t, err)
	require.Empty(t, fields)

	fields, err = Block{Meta: []byte("# only a comment\n"), Present: true}.Fields()
	require.NoError(t, err)
	require.Empty(t, fields)

	_, err = Block{Meta: []byte("title: [unclosed\n"), Present: true}.Fields()
	require.Error(t, err)
}

func TestCompose(t *testing.T) {
	doc, err := Compose(map[string]any{
		"title": "Install",
		"order": 1,
		"extra": map[string]any{"zeta": true, "alpha": "x"},
	}, []byte("# Install\n"))
	require.NoError(t, err)
	require.Equal(t, "---\n"+
		"extra:\n"+
		"  alpha: x\n"+
		"  zeta: true\n"+
		"order: 1\n"+
		"title: Install\n"+
		"---\n"+
		"# Install\n", string(doc))

	b, err := Parse(doc)
	require.NoError(t, err)
	fields, err := b.Fields()
	require.NoError(t, err)
	require.Equal(t, "Install", fields["title"])
}

func TestEncode_Empty(t *testing.T) {
	out, err := Encode(nil)
	require.NoError(t, err)
	require.Empty(t, out)

	doc, err := Compose(nil, []byte("body\n"))
	require.NoError(t, err)
	require.Equal(t, "---\n---\nbody\n", string(doc))
}
