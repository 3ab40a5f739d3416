package shapecheck_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	shapecheck "github.com/shapecheck/shapecheck"
	"github.com/shapecheck/shapecheck/fsys"
)

func emptyBundleDir(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "acme-pack")
	require.NoError(t, os.MkdirAll(root, 0o755))
	return root
}

func fullBundleDir(t *testing.T) string {
	t.Helper()
	root := emptyBundleDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "manifest.json"), []byte(`{"name":"acme","count":2}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.json"), []byte(`{"name"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config.yaml"), []byte("name: acme\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.yaml"), []byte("{a: [b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("# acme"), 0o644))
	return root
}

func bundleZip(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	fw, err := w.Create("manifest.json")
	require.NoError(t, err)
	_, err = fw.Write([]byte(`{"name":"acme"}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func closeIfOpen(ctx fsys.Context) {
	if ctx != nil {
		_ = ctx.Close()
	}
}

func TestOpenAndValidateBundle_MissingPath(t *testing.T) {
	sink := shapecheck.NewSink()
	ctx := shapecheck.OpenAndValidateBundle(filepath.Join(t.TempDir(), "nope"), shapecheck.Path{}, sink, shapecheck.BundleOpt{
		AcceptDir: true, AcceptZip: true,
	})
	require.Nil(t, ctx)
	require.Equal(t, 1, sink.Len())
	require.Equal(t, shapecheck.CodeBundleNotFound, sink.Issues()[0].Code)
}

func TestOpenAndValidateBundle_TypeMismatch(t *testing.T) {
	sink := shapecheck.NewSink()
	ctx := shapecheck.OpenAndValidateBundle(fullBundleDir(t), shapecheck.Path{}, sink, shapecheck.BundleOpt{
		AcceptZip: true, // directories rejected
	})
	require.Nil(t, ctx)
	require.Equal(t, shapecheck.CodeBundleTypeMismatch, sink.Issues()[0].Code)

	sink = shapecheck.NewSink()
	ctx = shapecheck.OpenAndValidateBundle(bundleZip(t, "acme.zip"), shapecheck.Path{}, sink, shapecheck.BundleOpt{
		AcceptDir: true, // archives rejected
	})
	require.Nil(t, ctx)
	require.Equal(t, shapecheck.CodeBundleTypeMismatch, sink.Issues()[0].Code)
}

func TestOpenAndValidateBundle_InvalidKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain file"), 0o644))

	sink := shapecheck.NewSink()
	ctx := shapecheck.OpenAndValidateBundle(path, shapecheck.Path{}, sink, shapecheck.BundleOpt{
		AcceptDir: true, AcceptZip: true,
	})
	require.Nil(t, ctx)
	require.Equal(t, shapecheck.CodeBundleInvalid, sink.Issues()[0].Code)
}

func TestOpenAndValidateBundle_WrongExtension(t *testing.T) {
	sink := shapecheck.NewSink()
	ctx := shapecheck.OpenAndValidateBundle(bundleZip(t, "acme.zip"), shapecheck.Path{}, sink, shapecheck.BundleOpt{
		AcceptZip: true, ZipExt: "pack",
	})
	require.Nil(t, ctx)
	require.Equal(t, shapecheck.CodeBundleWrongExt, sink.Issues()[0].Code)

	// The custom extension itself is accepted.
	sink = shapecheck.NewSink()
	ctx = shapecheck.OpenAndValidateBundle(bundleZip(t, "acme.pack"), shapecheck.Path{}, sink, shapecheck.BundleOpt{
		AcceptZip: true, ZipExt: "pack",
	})
	defer closeIfOpen(ctx)
	require.NotNil(t, ctx)
	require.True(t, sink.Empty(), "issues: %v", sink.Issues())
}

func TestOpenAndValidateBundle_OpenError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.zip")
	require.NoError(t, os.WriteFile(path, []byte("not really a zip"), 0o644))

	sink := shapecheck.NewSink()
	ctx := shapecheck.OpenAndValidateBundle(path, shapecheck.Path{}, sink, shapecheck.BundleOpt{
		AcceptZip: true,
	})
	require.Nil(t, ctx)
	require.Equal(t, shapecheck.CodeBundleOpenError, sink.Issues()[0].Code)
}

func TestOpenAndValidateBundle_NameMismatchDoesNotAbort(t *testing.T) {
	sink := shapecheck.NewSink()
	contentRan := false
	ctx := shapecheck.OpenAndValidateBundle(fullBundleDir(t), shapecheck.Path{}, sink, shapecheck.BundleOpt{
		AcceptDir:   true,
		NamePattern: shapecheck.MustCompilePattern(`widget-[0-9]+$`),
		Content: func(c fsys.Context, p shapecheck.Path, s *shapecheck.Sink) {
			contentRan = true
		},
	})
	defer closeIfOpen(ctx)
	require.NotNil(t, ctx)
	require.True(t, contentRan, "content validation must proceed after a name mismatch")
	require.Equal(t, 1, sink.Len())
	require.Equal(t, shapecheck.CodeBundleNameMismatch, sink.Issues()[0].Code)
}

func TestOpenAndValidateBundle_MissingManifestStillReturnsContext(t *testing.T) {
	sink := shapecheck.NewSink()
	ctx := shapecheck.OpenAndValidateBundle(emptyBundleDir(t), shapecheck.Path{}, sink, shapecheck.BundleOpt{
		AcceptDir: true,
		Content: func(c fsys.Context, p shapecheck.Path, s *shapecheck.Sink) {
			shapecheck.ValidateJSONFile(c, "manifest.json", p, s, nil)
		},
	})
	require.NotNil(t, ctx)
	require.Equal(t, 1, sink.Len())
	iss := sink.Issues()[0]
	require.Equal(t, shapecheck.CodeFileNotFound, iss.Code)
	require.Equal(t, "manifest.json", iss.Path)
	require.NoError(t, ctx.Close())
}

func TestValidateJSONFile(t *testing.T) {
	ctx, err := fsys.Open(fullBundleDir(t))
	require.NoError(t, err)
	defer ctx.Close()

	sink := shapecheck.NewSink()
	doc, ok := shapecheck.ValidateJSONFile(ctx, "manifest.json", shapecheck.Path{}, sink, func(v shapecheck.Value, p shapecheck.Path, s *shapecheck.Sink) {
		if !shapecheck.Object(v, p, s) {
			return
		}
		shapecheck.Field(v, p, s, "name", stringValidator, false)
		shapecheck.Field(v, p, s, "count", numberValidator, false)
	})
	require.True(t, ok)
	require.True(t, sink.Empty(), "issues: %v", sink.Issues())
	m, isMap := doc.AsMapping()
	require.True(t, isMap)
	require.Contains(t, m, "name")

	// Parse failure is json.parse_error, not file.read_error.
	sink = shapecheck.NewSink()
	_, ok = shapecheck.ValidateJSONFile(ctx, "broken.json", shapecheck.Path{}, sink, nil)
	require.False(t, ok)
	require.Equal(t, shapecheck.CodeJSONParseError, sink.Issues()[0].Code)
	require.Equal(t, "broken.json", sink.Issues()[0].Path)

	// A directory is not a file.
	sink = shapecheck.NewSink()
	_, ok = shapecheck.ValidateJSONFile(ctx, "assets", shapecheck.Path{}, sink, nil)
	require.False(t, ok)
	require.Equal(t, shapecheck.CodeFileNotFile, sink.Issues()[0].Code)
}

func TestValidateJSONFile_ContentIssuesNestUnderFilePath(t *testing.T) {
	ctx, err := fsys.Open(fullBundleDir(t))
	require.NoError(t, err)
	defer ctx.Close()

	sink := shapecheck.NewSink()
	_, ok := shapecheck.ValidateJSONFile(ctx, "manifest.json", shapecheck.Path{}, sink, func(v shapecheck.Value, p shapecheck.Path, s *shapecheck.Sink) {
		if !shapecheck.Object(v, p, s) {
			return
		}
		shapecheck.Field(v, p, s, "count", stringValidator, false)
	})
	require.True(t, ok)
	require.Equal(t, 1, sink.Len())
	require.Equal(t, "manifest.json.count", sink.Issues()[0].Path)
}

func TestValidateYAMLFile(t *testing.T) {
	ctx, err := fsys.Open(fullBundleDir(t))
	require.NoError(t, err)
	defer ctx.Close()

	sink := shapecheck.NewSink()
	doc, ok := shapecheck.ValidateYAMLFile(ctx, "config.yaml", shapecheck.Path{}, sink, func(v shapecheck.Value, p shapecheck.Path, s *shapecheck.Sink) {
		if !shapecheck.Object(v, p, s) {
			return
		}
		shapecheck.Field(v, p, s, "name", stringValidator, false)
	})
	require.True(t, ok)
	require.True(t, sink.Empty(), "issues: %v", sink.Issues())
	_, isMap := doc.AsMapping()
	require.True(t, isMap)

	sink = shapecheck.NewSink()
	_, ok = shapecheck.ValidateYAMLFile(ctx, "bad.yaml", shapecheck.Path{}, sink, nil)
	require.False(t, ok)
	require.Equal(t, shapecheck.CodeYAMLParseError, sink.Issues()[0].Code)
}

func TestValidateYAMLFile_NonStringKeysReportInsteadOfFault(t *testing.T) {
	// Non-string mapping keys decode through yaml.v3 as map[any]any; that is
	// ordinary bundle input and must flow through as a mapping, never fault.
	root := emptyBundleDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "ports.yaml"), []byte("1: a\n2: b\n"), 0o644))
	ctx, err := fsys.Open(root)
	require.NoError(t, err)
	defer ctx.Close()

	sink := shapecheck.NewSink()
	var doc shapecheck.Value
	var ok bool
	require.NotPanics(t, func() {
		doc, ok = shapecheck.ValidateYAMLFile(ctx, "ports.yaml", shapecheck.Path{}, sink, nil)
	})
	require.True(t, ok)
	require.True(t, sink.Empty(), "issues: %v", sink.Issues())
	m, isMap := doc.AsMapping()
	require.True(t, isMap)
	require.Contains(t, m, "1")
	s, _ := m["1"].AsString()
	require.Equal(t, "a", s)
}

func TestValidateYAMLFile_BinaryScalar(t *testing.T) {
	root := emptyBundleDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.yaml"), []byte("payload: !!binary aGVsbG8=\n"), 0o644))
	ctx, err := fsys.Open(root)
	require.NoError(t, err)
	defer ctx.Close()

	sink := shapecheck.NewSink()
	doc, ok := shapecheck.ValidateYAMLFile(ctx, "blob.yaml", shapecheck.Path{}, sink, nil)
	require.True(t, ok)
	require.True(t, sink.Empty(), "issues: %v", sink.Issues())
	m, isMap := doc.AsMapping()
	require.True(t, isMap)
	s, isStr := m["payload"].AsString()
	require.True(t, isStr)
	require.Equal(t, "hello", s)
}

func TestValidateFSFile(t *testing.T) {
	ctx, err := fsys.Open(fullBundleDir(t))
	require.NoError(t, err)
	defer ctx.Close()

	sink := shapecheck.NewSink()
	require.True(t, shapecheck.ValidateFSFile(ctx, "readme.md", shapecheck.Path{}, sink, "md"))
	require.True(t, sink.Empty())

	sink = shapecheck.NewSink()
	require.False(t, shapecheck.ValidateFSFile(ctx, "readme.md", shapecheck.Path{}, sink, "txt"))
	require.Equal(t, shapecheck.CodeFileWrongExt, sink.Issues()[0].Code)

	sink = shapecheck.NewSink()
	require.False(t, shapecheck.ValidateFSFile(ctx, "missing.md", shapecheck.Path{}, sink, ""))
	require.Equal(t, shapecheck.CodeFileNotFound, sink.Issues()[0].Code)
}

func TestValidateFSDirectory(t *testing.T) {
	ctx, err := fsys.Open(fullBundleDir(t))
	require.NoError(t, err)
	defer ctx.Close()

	sink := shapecheck.NewSink()
	require.True(t, shapecheck.ValidateFSDirectory(ctx, "assets", shapecheck.Path{}, sink))
	require.True(t, sink.Empty())

	sink = shapecheck.NewSink()
	require.False(t, shapecheck.ValidateFSDirectory(ctx, "readme.md", shapecheck.Path{}, sink))
	require.Equal(t, shapecheck.CodeDirNotDir, sink.Issues()[0].Code)

	sink = shapecheck.NewSink()
	require.False(t, shapecheck.ValidateFSDirectory(ctx, "missing", shapecheck.Path{}, sink))
	require.Equal(t, shapecheck.CodeDirNotFound, sink.Issues()[0].Code)
}

func TestRunPath_ClosesReturnedContext(t *testing.T) {
	root := fullBundleDir(t)
	var opened fsys.Context

	res := shapecheck.RunPath(root, func(bundlePath string, p shapecheck.Path, s *shapecheck.Sink) fsys.Context {
		opened = shapecheck.OpenAndValidateBundle(bundlePath, p, s, shapecheck.BundleOpt{
			AcceptDir: true,
			Content: func(c fsys.Context, cp shapecheck.Path, cs *shapecheck.Sink) {
				shapecheck.ValidateJSONFile(c, "manifest.json", cp, cs, nil)
			},
		})
		return opened
	})
	require.True(t, res.OK)
	require.NotNil(t, opened)
	// The runner released the context: further queries are contract errors.
	require.Panics(t, func() { opened.Exists("manifest.json") })
}

func TestRunPath_FailureStillProducesResult(t *testing.T) {
	res := shapecheck.RunPath(filepath.Join(t.TempDir(), "ghost"), func(bundlePath string, p shapecheck.Path, s *shapecheck.Sink) fsys.Context {
		return shapecheck.OpenAndValidateBundle(bundlePath, p, s, shapecheck.BundleOpt{AcceptDir: true})
	})
	require.False(t, res.OK)
	require.Len(t, res.Issues, 1)
	require.Equal(t, shapecheck.CodeBundleNotFound, res.Issues[0].Code)
}
