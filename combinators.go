package shapecheck

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/shapecheck/shapecheck/i18n"
)

// Object checks that v is a keyed mapping. It is a guard, not a full
// validator: it reports false (after appending type.mismatch) so the caller
// can skip its Field calls, and true for any mapping including the empty one.
func Object(v Value, p Path, sink *Sink) bool {
	if v.Kind() != KindMapping {
		sink.Add(p, CodeTypeMismatch, i18n.T(CodeTypeMismatch, map[string]string{
			"expected": "object", "got": v.Kind().String(),
		}))
		return false
	}
	return true
}

// suggestionMaxDistance bounds how far a near-miss key may be from the
// requested one before the hint is dropped as noise.
const suggestionMaxDistance = 2

// Field checks presence of key in obj and recurses into its value with f
// when one is supplied. When obj is not a mapping the call is a no-op; the
// preceding Object guard already reported the mismatch. A missing required
// key reports field.missing at the parent path, with a near-miss hint when
// the mapping contains a key within edit distance 2.
func Field(obj Value, p Path, sink *Sink, key string, f ValidatorFunc, optional bool) {
	m, ok := obj.AsMapping()
	if !ok {
		return
	}
	child, present := m[key]
	if !present {
		if !optional {
			iss := Issue{
				Path:    p.String(),
				Code:    CodeFieldMissing,
				Message: i18n.T(CodeFieldMissing, map[string]string{"key": key}),
				Params:  map[string]string{"key": key},
			}
			if near := nearestKey(m, key); near != "" {
				iss.Hint = "did you mean " + strconv.Quote(near) + "?"
			}
			sink.AddIssue(iss)
		}
		return
	}
	if f != nil {
		f(child, p.Field(key), sink)
	}
}

// nearestKey returns the closest existing key within suggestionMaxDistance,
// or "". Keys are scanned in sorted order so the suggestion is deterministic.
func nearestKey(m map[string]Value, key string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := ""
	bestDist := suggestionMaxDistance + 1
	for _, k := range keys {
		if d := levenshtein.ComputeDistance(key, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// ListOpt bounds a sequence check. Nil fields are unchecked.
type ListOpt struct {
	MinItems *int
	MaxItems *int
}

// List checks that v is a sequence, reports length-bound issues, and applies
// item to every element in index order. Length and per-item issues are
// independent: a short list with invalid elements reports both.
func List(v Value, p Path, sink *Sink, item ValidatorFunc, opt ListOpt) {
	seq, ok := v.AsSequence()
	if !ok {
		sink.Add(p, CodeTypeMismatch, i18n.T(CodeTypeMismatch, map[string]string{
			"expected": "array", "got": v.Kind().String(),
		}))
		return
	}
	n := len(seq)
	if opt.MinItems != nil && n < *opt.MinItems {
		sink.Add(p, CodeListTooShort, i18n.T(CodeListTooShort, map[string]string{
			"len": strconv.Itoa(n), "min": strconv.Itoa(*opt.MinItems),
		}))
	}
	if opt.MaxItems != nil && n > *opt.MaxItems {
		sink.Add(p, CodeListTooLong, i18n.T(CodeListTooLong, map[string]string{
			"len": strconv.Itoa(n), "max": strconv.Itoa(*opt.MaxItems),
		}))
	}
	if item != nil {
		for i, e := range seq {
			item(e, p.Index(i), sink)
		}
	}
}

// OneOf tries each candidate in declaration order against an isolated probe
// sink; the first clean candidate wins silently. On total failure exactly one
// oneof.no_match issue is appended and the per-candidate diagnostics are
// dropped. descriptions, when given, name the alternatives in the message.
func OneOf(v Value, p Path, sink *Sink, validators []ValidatorFunc, descriptions ...string) {
	for _, f := range validators {
		probe := NewSink()
		f(v, p, probe)
		if probe.Empty() {
			return
		}
	}
	options := "any of the options"
	if len(descriptions) > 0 {
		options = strings.Join(descriptions, ", ")
	}
	sink.Add(p, CodeOneOfNoMatch, i18n.T(CodeOneOfNoMatch, map[string]string{
		"options": options,
	}))
}

// Matches runs f against a throwaway sink and reports whether it stayed
// empty. The probe never touches a caller-visible sink; this isolation is
// what keeps OneOf and conditional composition side-effect free.
func Matches(v Value, f ValidatorFunc) bool {
	probe := NewSink()
	f(v, Path{}, probe)
	return probe.Empty()
}
