package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(sampleStore(), quietOptions())

	tests := []struct {
		name     string
		segments []string
		want     Resolution
	}{
		{"section directory", []string{"guides"}, Resolution{Kind: KindDirectory, Path: []string{"guides"}}},
		{"nested file", []string{"guides", "install"}, Resolution{Kind: KindFile, Path: []string{"guides", "install"}}},
		{"nested directory", []string{"guides", "advanced"}, Resolution{Kind: KindDirectory, Path: []string{"guides", "advanced"}}},
		{"empty directory", []string{"reference", "empty"}, Resolution{Kind: KindDirectory, Path: []string{"reference", "empty"}}},
		{"file wins over directory", []string{"reference", "api"}, Resolution{Kind: KindFile, Path: []string{"reference", "api"}}},
		{"top level file", []string{"top"}, Resolution{Kind: KindFile, Path: []string{"top"}}},
		{"legacy flat address", []string{"guides-install"}, Resolution{Kind: KindFile, Path: []string{"guides", "install"}, Legacy: true}},
		{"legacy slug keeps later hyphens", []string{"guides-getting-started"}, Resolution{Kind: KindFile, Path: []string{"guides", "getting-started"}, Legacy: true}},
		{"hyphenated section is not split elsewhere", []string{"multi-word-page"}, Resolution{}},
		{"legacy miss", []string{"guides-missing"}, Resolution{}},
		{"legacy requires a hyphen", []string{"install"}, Resolution{}},
		{"legacy only for one segment", []string{"guides-install", "x"}, Resolution{}},
		{"empty path", nil, Resolution{}},
		{"missing", []string{"guides", "missing"}, Resolution{}},
		{"extension in path", []string{"guides", "install.mdx"}, Resolution{}},
		{"traversal", []string{"..", "guides"}, Resolution{}},
		{"empty segment", []string{"guides", ""}, Resolution{}},
		{"slash in segment", []string{"guides/install"}, Resolution{}},
		{"hidden document", []string{"guides", ".draft"}, Resolution{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, c.Classify(tt.segments))
		})
	}
}

func TestClassify_LeadingOrTrailingHyphen(t *testing.T) {
	c := NewClassifier(sampleStore(), quietOptions())
	require.False(t, c.Classify([]string{"-install"}).Found())
	require.False(t, c.Classify([]string{"guides-"}).Found())
}

func TestSplitLegacy(t *testing.T) {
	section, slug, ok := SplitLegacy("api-auth-tokens")
	require.True(t, ok)
	require.Equal(t, "api", section)
	require.Equal(t, "auth-tokens", slug)

	_, _, ok = SplitLegacy("nohyphen")
	require.False(t, ok)
}

func TestLegacySegment(t *testing.T) {
	seg, ok := LegacySegment("guides", "getting-started")
	require.True(t, ok)
	require.Equal(t, "guides-getting-started", seg)

	_, ok = LegacySegment("multi-word", "page")
	require.False(t, ok)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "file", KindFile.String())
	require.Equal(t, "directory", KindDirectory.String())
	require.Equal(t, "not_found", KindNotFound.String())
}
