package shapecheck

import (
	"strconv"
	"strings"
)

// RootRendered is how an empty path renders; it is distinct from the empty
// string so that root-level issues remain greppable in reports.
const RootRendered = "(root)"

// Path locates a sub-value inside a document as an ordered list of segments.
// Field segments are plain names; list-index segments are stored pre-bracketed
// ("[3]") so rendering stays a single join. The zero value addresses the root.
type Path []string

// Field returns a new Path extended by an object key. The receiver is never
// mutated; extensions copy so sibling branches cannot alias each other.
func (p Path) Field(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// Index returns a new Path extended by a zero-based list index.
func (p Path) Index(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, "["+strconv.Itoa(i)+"]")
}

// String renders the path dot-joined with bracketed indices attached to their
// parent segment: ["a","b","[2]","c"] -> "a.b[2].c". The empty path renders
// as RootRendered.
func (p Path) String() string {
	if len(p) == 0 {
		return RootRendered
	}
	b := &strings.Builder{}
	for i, seg := range p {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}
