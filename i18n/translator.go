package i18n

import "strings"

// Translator retrieves the human message for an issue code. data provides
// structured parameters to embed in the message (for example, "min" or
// "got"); templates reference them as {name}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in template-based Translator.
type dictTranslator struct{}

func (dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch code {
	case "type.mismatch":
		tmpl = "expected {expected}, got {got}"
	case "str.too_short":
		tmpl = "string length {len} is less than minimum {min}"
	case "str.too_long":
		tmpl = "string length {len} exceeds maximum {max}"
	case "str.pattern_mismatch":
		tmpl = "string does not match pattern {pattern}"
	case "num.not_integer":
		tmpl = "expected integer, got {got}"
	case "num.too_small":
		tmpl = "number {got} is less than minimum {min}"
	case "num.too_large":
		tmpl = "number {got} exceeds maximum {max}"
	case "literal.mismatch":
		tmpl = "expected {expected}, got {got}"
	case "pattern.mismatch":
		tmpl = "value does not match pattern {pattern}"
	case "field.missing":
		tmpl = "missing required field: {key}"
	case "list.too_short":
		tmpl = "array length {len} is less than minimum {min}"
	case "list.too_long":
		tmpl = "array length {len} exceeds maximum {max}"
	case "oneof.no_match":
		tmpl = "value does not match {options}"
	case "bundle.not_found":
		tmpl = "path not found: {path}"
	case "bundle.type_mismatch":
		tmpl = "{kind} not accepted"
	case "bundle.invalid":
		tmpl = "not a valid bundle: {path}"
	case "bundle.wrong_ext":
		tmpl = "expected .{ext} archive: {path}"
	case "bundle.open_error":
		tmpl = "cannot open bundle: {cause}"
	case "bundle.name_mismatch":
		tmpl = "name {name} does not match pattern {pattern}"
	case "file.not_found":
		tmpl = "file not found: {path}"
	case "file.not_file":
		tmpl = "not a file: {path}"
	case "file.wrong_ext":
		tmpl = "expected .{ext}, got .{got}"
	case "file.read_error":
		tmpl = "cannot read file: {cause}"
	case "json.parse_error":
		tmpl = "invalid JSON: {cause}"
	case "yaml.parse_error":
		tmpl = "invalid YAML: {cause}"
	case "dir.not_found":
		tmpl = "directory not found: {path}"
	case "dir.not_dir":
		tmpl = "not a directory: {path}"
	default:
		return code
	}
	return expand(tmpl, data)
}

// expand substitutes {name} placeholders from data. Unknown placeholders are
// left in place so a missing parameter is visible rather than silent.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	out := tmpl
	for k, v := range data {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

var currentTranslator Translator = dictTranslator{}

// SetTranslator replaces the Translator implementation (not limited to the
// template version). Passing nil restores the built-in.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
