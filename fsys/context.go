package fsys

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// BundleKind tags the physical backing of a Context.
type BundleKind int

const (
	KindDirectory BundleKind = iota
	KindZip
)

// String returns the kind name used in diagnostics.
func (k BundleKind) String() string {
	if k == KindZip {
		return "zip archive"
	}
	return "directory"
}

// Sentinel errors. Callers discriminate with errors.Is; the concrete wrapped
// error keeps the underlying cause for the issue message.
var (
	// ErrNotBundle reports a path that is neither a directory nor a readable
	// zip archive.
	ErrNotBundle = errors.New("not a valid bundle")
	// ErrJSONSyntax marks ReadJSON failures caused by malformed JSON, as
	// opposed to the file being unreadable.
	ErrJSONSyntax = errors.New("invalid JSON")
	// ErrYAMLSyntax marks ReadYAML failures caused by malformed YAML.
	ErrYAMLSyntax = errors.New("invalid YAML")
)

// Context is the uniform read-only view over one opened bundle root.
// Relative paths are forward-slash separated regardless of backing.
type Context interface {
	// Kind returns the backing variant tag.
	Kind() BundleKind
	// Exists reports whether a file or directory entry exists at rel.
	Exists(rel string) bool
	// IsFile reports whether rel names a regular file.
	IsFile(rel string) bool
	// IsDir reports whether rel names a directory. For zip backings a
	// directory exists when the archive stores an explicit "rel/" entry or
	// any entry under the "rel/" prefix.
	IsDir(rel string) bool
	// Read returns the full content of rel decoded as UTF-8.
	Read(rel string) (string, error)
	// ReadJSON reads rel and decodes it as a single strict JSON document
	// (numbers preserved via json.Number). Malformed documents return an
	// error marked ErrJSONSyntax; anything else is a read failure.
	ReadJSON(rel string) (any, error)
	// ReadYAML reads rel and decodes it as YAML. Malformed documents return
	// an error marked ErrYAMLSyntax.
	ReadYAML(rel string) (any, error)
	// BaseName returns the bundle root's last path segment with its final
	// extension stripped. It identifies the bundle; it never resolves files.
	BaseName() string
	// Close releases the backing handle. Idempotent.
	Close() error
}

// Open inspects path on disk and constructs the matching Context: a
// directory backing for directories, a zip backing for readable archive
// files. Any other path fails with ErrNotBundle; a file that cannot be read
// as a zip archive fails with the underlying open error.
func Open(path string) (Context, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, ErrNotBundle), "stat %s", path)
	}
	if st.IsDir() {
		return &dirContext{root: path}, nil
	}
	if !st.Mode().IsRegular() {
		return nil, errors.Wrapf(ErrNotBundle, "%s", path)
	}
	return openZip(path)
}

// stripExt drops the final extension from a path's last segment.
func stripExt(base string) string {
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// decodeText validates raw as UTF-8 and returns it as a string.
func decodeText(rel string, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", errors.Newf("%s: content is not valid UTF-8", rel)
	}
	return string(raw), nil
}

// decodeJSON parses exactly one JSON document from text.
func decodeJSON(rel, text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrapf(errors.Mark(err, ErrJSONSyntax), "%s", rel)
	}
	if dec.More() {
		return nil, errors.Wrapf(ErrJSONSyntax, "%s: trailing content after document", rel)
	}
	return v, nil
}

// decodeYAML parses one YAML document from text.
func decodeYAML(rel, text string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, errors.Wrapf(errors.Mark(err, ErrYAMLSyntax), "%s", rel)
	}
	return v, nil
}

// readJSONFrom and readYAMLFrom share the Read-then-decode path between the
// two backings.
func readJSONFrom(c Context, rel string) (any, error) {
	text, err := c.Read(rel)
	if err != nil {
		return nil, err
	}
	return decodeJSON(rel, text)
}

func readYAMLFrom(c Context, rel string) (any, error) {
	text, err := c.Read(rel)
	if err != nil {
		return nil, err
	}
	return decodeYAML(rel, text)
}
