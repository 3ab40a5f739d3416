package shapecheck

import (
	"math"
	"regexp"
	"strconv"

	"github.com/shapecheck/shapecheck/i18n"
)

// ValidatorFunc inspects a value and appends zero or more issues to the sink.
// Implementations never panic on malformed input and always return; the sink
// is the only side effect.
type ValidatorFunc func(v Value, p Path, sink *Sink)

// Pattern is a start-anchored regular expression. Matching follows
// re.match semantics: the expression must match at the beginning of the
// subject but need not consume it entirely.
type Pattern struct {
	re   *regexp.Regexp
	expr string
}

// CompilePattern compiles expr with an implicit start anchor.
func CompilePattern(expr string) (*Pattern, error) {
	re, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return nil, err
	}
	return &Pattern{re: re, expr: expr}, nil
}

// MustCompilePattern is CompilePattern for patterns fixed at generation time;
// it panics on a bad expression.
func MustCompilePattern(expr string) *Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic("shapecheck: invalid pattern " + strconv.Quote(expr) + ": " + err.Error())
	}
	return p
}

// Match reports whether s matches the pattern at its start.
func (p *Pattern) Match(s string) bool { return p.re.MatchString(s) }

// String returns the source expression without the implicit anchor.
func (p *Pattern) String() string { return p.expr }

// Ptr returns a pointer to v; option structs use pointers for absent bounds.
func Ptr[T any](v T) *T { return &v }

// StrOpt bounds a string check. Nil fields are unchecked.
type StrOpt struct {
	MinLen  *int
	MaxLen  *int
	Pattern *Pattern
}

// Str validates that v is a string within the given bounds. A type mismatch
// short-circuits the remaining checks; bound and pattern issues are
// independent of each other.
func Str(v Value, p Path, sink *Sink, opt StrOpt) {
	s, ok := v.AsString()
	if !ok {
		sink.Add(p, CodeTypeMismatch, i18n.T(CodeTypeMismatch, map[string]string{
			"expected": "string", "got": v.Kind().String(),
		}))
		return
	}
	n := len(s)
	if opt.MinLen != nil && n < *opt.MinLen {
		sink.Add(p, CodeStrTooShort, i18n.T(CodeStrTooShort, map[string]string{
			"len": strconv.Itoa(n), "min": strconv.Itoa(*opt.MinLen),
		}))
	}
	if opt.MaxLen != nil && n > *opt.MaxLen {
		sink.Add(p, CodeStrTooLong, i18n.T(CodeStrTooLong, map[string]string{
			"len": strconv.Itoa(n), "max": strconv.Itoa(*opt.MaxLen),
		}))
	}
	if opt.Pattern != nil && !opt.Pattern.Match(s) {
		sink.Add(p, CodeStrPattern, i18n.T(CodeStrPattern, map[string]string{
			"pattern": opt.Pattern.String(),
		}))
	}
}

// NumOpt bounds a number check. Nil fields are unchecked.
type NumOpt struct {
	Min     *float64
	Max     *float64
	Integer bool
}

// Num validates that v is a number within the given bounds. Integer-ness is
// a fractional-part test on the value, so 3 and 3.0 are both integers.
// Booleans are never numbers.
func Num(v Value, p Path, sink *Sink, opt NumOpt) {
	f, ok := v.AsNumber()
	if !ok {
		sink.Add(p, CodeTypeMismatch, i18n.T(CodeTypeMismatch, map[string]string{
			"expected": "number", "got": v.Kind().String(),
		}))
		return
	}
	if opt.Integer && f != math.Trunc(f) {
		sink.Add(p, CodeNumNotInteger, i18n.T(CodeNumNotInteger, map[string]string{
			"got": formatNumber(f),
		}))
	}
	if opt.Min != nil && f < *opt.Min {
		sink.Add(p, CodeNumTooSmall, i18n.T(CodeNumTooSmall, map[string]string{
			"got": formatNumber(f), "min": formatNumber(*opt.Min),
		}))
	}
	if opt.Max != nil && f > *opt.Max {
		sink.Add(p, CodeNumTooLarge, i18n.T(CodeNumTooLarge, map[string]string{
			"got": formatNumber(f), "max": formatNumber(*opt.Max),
		}))
	}
}

// Boolean validates that v is a boolean.
func Boolean(v Value, p Path, sink *Sink) {
	if v.Kind() != KindBool {
		sink.Add(p, CodeTypeMismatch, i18n.T(CodeTypeMismatch, map[string]string{
			"expected": "boolean", "got": v.Kind().String(),
		}))
	}
}

// Literal validates that v is deeply equal to expected.
func Literal(v Value, p Path, sink *Sink, expected Value) {
	if !v.Equal(expected) {
		sink.Add(p, CodeLiteralMismatch, i18n.T(CodeLiteralMismatch, map[string]string{
			"expected": expected.Render(), "got": v.Render(),
		}))
	}
}

// PatternCheck validates that v is a string matching pat at its start.
func PatternCheck(v Value, p Path, sink *Sink, pat *Pattern) {
	s, ok := v.AsString()
	if !ok {
		sink.Add(p, CodeTypeMismatch, i18n.T(CodeTypeMismatch, map[string]string{
			"expected": "string", "got": v.Kind().String(),
		}))
		return
	}
	if !pat.Match(s) {
		sink.Add(p, CodePatternMismatch, i18n.T(CodePatternMismatch, map[string]string{
			"pattern": pat.String(),
		}))
	}
}
