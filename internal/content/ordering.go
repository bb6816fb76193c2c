package content

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator returns a collator comparing digit runs numerically and
// ignoring case, width and diacritics. Collators are not safe for
// concurrent use, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.Numeric, collate.Loose)
}

func compareWith(c *collate.Collator, a, b EntryInfo) int {
	if r := cmp.Compare(a.Order, b.Order); r != 0 {
		return r
	}
	if r := c.CompareString(a.Slug, b.Slug); r != 0 {
		return r
	}
	return strings.Compare(a.Slug, b.Slug)
}

// Compare orders entries by Order ascending, then by slug with numeric
// aware, case insensitive collation, then by slug bytes.
func Compare(a, b EntryInfo) int {
	return compareWith(newCollator(), a, b)
}

// SortEntries sorts entries in place with Compare. Entries that compare
// equal keep their relative order.
func SortEntries(entries []Entry) {
	c := newCollator()
	slices.SortStableFunc(entries, func(x, y Entry) int {
		return compareWith(c, x.Info(), y.Info())
	})
}
