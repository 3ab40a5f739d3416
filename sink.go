package shapecheck

// Sink is the ordered, append-only issue accumulator threaded through every
// validator call of one run. It is deliberately a parameter, never ambient
// state: independent runs must not interfere. A Sink is not safe for
// concurrent use; each run owns its own.
type Sink struct {
	issues Issues
}

// NewSink returns an empty sink.
func NewSink() *Sink { return &Sink{} }

// Add appends one issue at the given path. No deduplication and no bound:
// callers limit growth through their own validator composition.
func (s *Sink) Add(p Path, code, message string) {
	s.issues = append(s.issues, Issue{Path: p.String(), Code: code, Message: message})
}

// AddIssue appends a fully built issue (used when a hint or params are set).
// The issue's Path field must already be rendered.
func (s *Sink) AddIssue(iss Issue) {
	s.issues = append(s.issues, iss)
}

// Empty reports whether no issue has been appended.
func (s *Sink) Empty() bool { return len(s.issues) == 0 }

// Len returns the number of appended issues.
func (s *Sink) Len() int { return len(s.issues) }

// Issues returns the accumulated issues in append order. The returned slice
// is the sink's backing storage; callers must not mutate it while the run is
// still appending.
func (s *Sink) Issues() Issues {
	if s.issues == nil {
		return Issues{}
	}
	return s.issues
}
