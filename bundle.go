package shapecheck

import (
	"os"
	gopath "path"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/shapecheck/shapecheck/fsys"
	"github.com/shapecheck/shapecheck/i18n"
)

// ContentValidatorFunc validates the content of an opened bundle. It
// receives the context by reference and never owns it: the caller that
// opened the context closes it.
type ContentValidatorFunc func(ctx fsys.Context, p Path, sink *Sink)

// BundleOpt configures OpenAndValidateBundle.
type BundleOpt struct {
	AcceptDir bool
	AcceptZip bool
	// ZipExt, when set, requires archive bundles to carry this literal
	// extension (without the dot) instead of the default "zip".
	ZipExt string
	// NamePattern, when set, is checked against the bundle's BaseName. A
	// mismatch is reported but does not abort content validation.
	NamePattern *Pattern
	Content     ContentValidatorFunc
}

// OpenAndValidateBundle classifies bundlePath by disk inspection, opens the
// matching filesystem context and runs the configured checks. Each failing
// step short-circuits with its own issue code, except the name-pattern check
// which reports and proceeds. The opened context is returned even when
// issues were appended; the caller must close it.
func OpenAndValidateBundle(bundlePath string, p Path, sink *Sink, opt BundleOpt) fsys.Context {
	st, err := os.Stat(bundlePath)
	if err != nil {
		sink.Add(p, CodeBundleNotFound, i18n.T(CodeBundleNotFound, map[string]string{
			"path": bundlePath,
		}))
		return nil
	}

	isDir := st.IsDir()
	isZip := !isDir && (strings.HasSuffix(bundlePath, ".zip") ||
		(opt.ZipExt != "" && strings.HasSuffix(bundlePath, "."+opt.ZipExt)))

	if isDir && !opt.AcceptDir {
		sink.Add(p, CodeBundleTypeMismatch, i18n.T(CodeBundleTypeMismatch, map[string]string{
			"kind": fsys.KindDirectory.String(),
		}))
		return nil
	}
	if isZip && !opt.AcceptZip {
		sink.Add(p, CodeBundleTypeMismatch, i18n.T(CodeBundleTypeMismatch, map[string]string{
			"kind": fsys.KindZip.String(),
		}))
		return nil
	}
	if !isDir && !isZip {
		sink.Add(p, CodeBundleInvalid, i18n.T(CodeBundleInvalid, map[string]string{
			"path": bundlePath,
		}))
		return nil
	}
	if isZip && opt.ZipExt != "" && !strings.HasSuffix(bundlePath, "."+opt.ZipExt) {
		sink.Add(p, CodeBundleWrongExt, i18n.T(CodeBundleWrongExt, map[string]string{
			"ext": opt.ZipExt, "path": bundlePath,
		}))
		return nil
	}

	ctx, err := fsys.Open(bundlePath)
	if err != nil {
		sink.Add(p, CodeBundleOpenError, i18n.T(CodeBundleOpenError, map[string]string{
			"cause": err.Error(),
		}))
		return nil
	}

	if opt.NamePattern != nil {
		if name := ctx.BaseName(); !opt.NamePattern.Match(name) {
			// Reported, not fatal: content checks still run.
			sink.Add(p, CodeBundleNameMismatch, i18n.T(CodeBundleNameMismatch, map[string]string{
				"name": name, "pattern": opt.NamePattern.String(),
			}))
		}
	}

	if opt.Content != nil {
		opt.Content(ctx, p, sink)
	}
	return ctx
}

// ValidateJSONFile checks that rel exists in ctx, is a regular file and
// parses as strict JSON, then applies content to the decoded document. Each
// stage short-circuits with its own code; the decoded value is returned so
// callers can chain further checks without re-reading.
func ValidateJSONFile(ctx fsys.Context, rel string, p Path, sink *Sink, content ValidatorFunc) (Value, bool) {
	fp := p.Field(rel)
	if !ctx.Exists(rel) {
		sink.Add(fp, CodeFileNotFound, i18n.T(CodeFileNotFound, map[string]string{"path": rel}))
		return Value{}, false
	}
	if !ctx.IsFile(rel) {
		sink.Add(fp, CodeFileNotFile, i18n.T(CodeFileNotFile, map[string]string{"path": rel}))
		return Value{}, false
	}
	raw, err := ctx.ReadJSON(rel)
	if err != nil {
		code := CodeFileReadError
		if errors.Is(err, fsys.ErrJSONSyntax) {
			code = CodeJSONParseError
		}
		sink.Add(fp, code, i18n.T(code, map[string]string{"cause": err.Error()}))
		return Value{}, false
	}
	doc := FromAny(raw)
	if content != nil {
		content(doc, fp, sink)
	}
	return doc, true
}

// ValidateYAMLFile is ValidateJSONFile for YAML manifests.
func ValidateYAMLFile(ctx fsys.Context, rel string, p Path, sink *Sink, content ValidatorFunc) (Value, bool) {
	fp := p.Field(rel)
	if !ctx.Exists(rel) {
		sink.Add(fp, CodeFileNotFound, i18n.T(CodeFileNotFound, map[string]string{"path": rel}))
		return Value{}, false
	}
	if !ctx.IsFile(rel) {
		sink.Add(fp, CodeFileNotFile, i18n.T(CodeFileNotFile, map[string]string{"path": rel}))
		return Value{}, false
	}
	raw, err := ctx.ReadYAML(rel)
	if err != nil {
		code := CodeFileReadError
		if errors.Is(err, fsys.ErrYAMLSyntax) {
			code = CodeYAMLParseError
		}
		sink.Add(fp, code, i18n.T(code, map[string]string{"cause": err.Error()}))
		return Value{}, false
	}
	doc := FromAny(raw)
	if content != nil {
		content(doc, fp, sink)
	}
	return doc, true
}

// ValidateFSFile checks that rel exists in ctx and is a regular file,
// optionally with the given extension (without the dot). Each failure is
// distinct and short-circuits.
func ValidateFSFile(ctx fsys.Context, rel string, p Path, sink *Sink, ext string) bool {
	fp := p.Field(rel)
	if !ctx.Exists(rel) {
		sink.Add(fp, CodeFileNotFound, i18n.T(CodeFileNotFound, map[string]string{"path": rel}))
		return false
	}
	if !ctx.IsFile(rel) {
		sink.Add(fp, CodeFileNotFile, i18n.T(CodeFileNotFile, map[string]string{"path": rel}))
		return false
	}
	if ext != "" {
		got := strings.TrimPrefix(gopath.Ext(rel), ".")
		if got != ext {
			sink.Add(fp, CodeFileWrongExt, i18n.T(CodeFileWrongExt, map[string]string{
				"ext": ext, "got": got,
			}))
			return false
		}
	}
	return true
}

// ValidateFSDirectory checks that rel exists in ctx and is a directory.
func ValidateFSDirectory(ctx fsys.Context, rel string, p Path, sink *Sink) bool {
	dp := p.Field(rel)
	if !ctx.Exists(rel) {
		sink.Add(dp, CodeDirNotFound, i18n.T(CodeDirNotFound, map[string]string{"path": rel}))
		return false
	}
	if !ctx.IsDir(rel) {
		sink.Add(dp, CodeDirNotDir, i18n.T(CodeDirNotDir, map[string]string{"path": rel}))
		return false
	}
	return true
}
