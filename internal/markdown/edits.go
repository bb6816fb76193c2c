package markdown

import (
	"bytes"
	"fmt"
)

// Splice returns body with the bytes of each range replaced by fn's result.
// Ranges must be ascending and disjoint, as CodeBlockRanges returns them.
// When fn changes nothing, body itself is returned.
func Splice(body []byte, ranges []Range, fn func([]byte) []byte) ([]byte, error) {
	var out bytes.Buffer
	changed := false
	pos := 0
	for i, r := range ranges {
		switch {
		case r.Start < pos:
			return nil, fmt.Errorf("range %d [%d,%d) overlaps or precedes offset %d", i, r.Start, r.End, pos)
		case r.End < r.Start:
			return nil, fmt.Errorf("range %d [%d,%d) ends before it starts", i, r.Start, r.End)
		case r.End > len(body):
			return nil, fmt.Errorf("range %d [%d,%d) exceeds body length %d", i, r.Start, r.End, len(body))
		}
		orig := body[r.Start:r.End]
		repl := fn(orig)
		if !bytes.Equal(repl, orig) {
			changed = true
		}
		out.Write(body[pos:r.Start])
		out.Write(repl)
		pos = r.End
	}
	if !changed {
		return body, nil
	}
	out.Write(body[pos:])
	return out.Bytes(), nil
}
