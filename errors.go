package shapecheck

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeTypeMismatch    = "type.mismatch"
	CodeStrTooShort     = "str.too_short"
	CodeStrTooLong      = "str.too_long"
	CodeStrPattern      = "str.pattern_mismatch"
	CodeNumNotInteger   = "num.not_integer"
	CodeNumTooSmall     = "num.too_small"
	CodeNumTooLarge     = "num.too_large"
	CodeLiteralMismatch = "literal.mismatch"
	CodePatternMismatch = "pattern.mismatch"
	CodeFieldMissing    = "field.missing"
	CodeListTooShort    = "list.too_short"
	CodeListTooLong     = "list.too_long"
	CodeOneOfNoMatch    = "oneof.no_match"
	// Bundle / filesystem checks
	CodeBundleNotFound     = "bundle.not_found"
	CodeBundleTypeMismatch = "bundle.type_mismatch"
	CodeBundleInvalid      = "bundle.invalid"
	CodeBundleWrongExt     = "bundle.wrong_ext"
	CodeBundleOpenError    = "bundle.open_error"
	CodeBundleNameMismatch = "bundle.name_mismatch"
	CodeFileNotFound       = "file.not_found"
	CodeFileNotFile        = "file.not_file"
	CodeFileWrongExt       = "file.wrong_ext"
	CodeFileReadError      = "file.read_error"
	CodeJSONParseError     = "json.parse_error"
	CodeYAMLParseError     = "yaml.parse_error"
	CodeDirNotFound        = "dir.not_found"
	CodeDirNotDir          = "dir.not_dir"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string `json:"path"` // Dot-joined segments (for example: items[2].price); "(root)" at the top.
	Code    string `json:"code"` // One of the codes listed above.
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"` // Optional: remediation hints ("did you mean ...").
	// Params carries structured parameters (e.g., {"min":"1", "got":"42"})
	// for i18n and observability.
	Params map[string]string `json:"params,omitempty"`
}

// Issues is an ordered collection of validation entries that implements error.
// Order reflects validation traversal order and is deterministic for a given
// validator composition.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. type.mismatch at a.b[2]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
