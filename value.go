package shapecheck

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// Kind discriminates the closed set of decoded JSON-like value variants.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the kind name as it appears in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "array"
	case KindMapping:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged union over decoded JSON-like data. Validators switch on
// the tag exhaustively instead of inspecting runtime types, so behavior does
// not depend on which decoder produced the value.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	seq  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a numeric value. JSON knows one number type; integers are
// detected by a fractional-part test, never by representation.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Seq wraps a sequence of values.
func Seq(items ...Value) Value { return Value{kind: KindSequence, seq: items} }

// Map wraps a keyed mapping.
func Map(fields map[string]Value) Value { return Value{kind: KindMapping, obj: fields} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload when v is a boolean.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsNumber returns the numeric payload when v is a number.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsString returns the string payload when v is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsSequence returns the element slice when v is a sequence.
func (v Value) AsSequence() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	return v.seq, true
}

// AsMapping returns the field map when v is a mapping.
func (v Value) AsMapping() (map[string]Value, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	return v.obj, true
}

// Equal reports deep structural equality. Numbers compare by value, mappings
// by key set and per-key equality, sequences element-wise in order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, vv := range v.obj {
			ov, ok := o.obj[k]
			if !ok || !vv.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Render produces the diagnostic rendering of v used inside issue messages.
// Scalars render their payload; containers render only their kind to keep
// messages bounded.
func (v Value) Render() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.num)
	case KindString:
		return strconv.Quote(v.str)
	default:
		return v.kind.String()
	}
}

// formatNumber renders a float64 using the shortest JSON-compatible
// representation.
func formatNumber(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// FromAny converts decoder output into a Value. It accepts everything the
// JSON and YAML decoders produce for an any target: map[string]any, []any,
// json.Number, float64, integer types, string, bool, nil, plus the
// YAML-only shapes (map[any]any from non-string keys, []byte from !!binary,
// time.Time from timestamps). Any other dynamic type is a caller bug and
// panics.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case float64:
		return Number(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case float32:
		return Number(float64(t))
	case time.Time:
		// yaml decodes unquoted timestamps into time.Time; validators see
		// the canonical string form.
		return String(t.Format(time.RFC3339))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			panic(fmt.Sprintf("shapecheck: unrepresentable number %q", string(t)))
		}
		return Number(f)
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			items[i] = FromAny(e)
		}
		return Seq(items...)
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			fields[k] = FromAny(e)
		}
		return Map(fields)
	case map[any]any:
		// yaml falls back to this shape when a mapping has non-string keys;
		// keys are stringified so validators see one mapping type.
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			fields[fmt.Sprint(k)] = FromAny(e)
		}
		return Map(fields)
	case []byte:
		// yaml !!binary scalar.
		return String(string(t))
	default:
		panic(fmt.Sprintf("shapecheck: unsupported value type %T", v))
	}
}

// DecodeJSON decodes one JSON document into a Value. Trailing non-whitespace
// content is an error; numbers are preserved through json.Number before the
// float64 conversion.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, err
	}
	if dec.More() {
		return Value{}, fmt.Errorf("unexpected trailing content after JSON document")
	}
	return FromAny(raw), nil
}
