package fsys

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// zipContext backs a Context with an open zip archive. Entry names are
// indexed once at open from the central directory; file content is read on
// demand, so Close must release the archive handle.
type zipContext struct {
	path   string
	rc     *zip.ReadCloser
	files  map[string]*zip.File
	dirs   map[string]struct{}
	closed bool
}

// openZip opens path as a zip archive and indexes its entries. Archives do
// not always store explicit directory entries, so IsDir also infers
// directories from entry-name prefixes.
func openZip(path string) (Context, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open archive %s", path)
	}
	c := &zipContext{
		path:  path,
		rc:    rc,
		files: make(map[string]*zip.File),
		dirs:  make(map[string]struct{}),
	}
	for _, f := range rc.File {
		if strings.HasSuffix(f.Name, "/") {
			c.dirs[strings.TrimSuffix(f.Name, "/")] = struct{}{}
			continue
		}
		c.files[f.Name] = f
	}
	return c, nil
}

func (c *zipContext) Kind() BundleKind { return KindZip }

func (c *zipContext) mustOpen() {
	if c.closed {
		panic("fsys: use of closed zip context")
	}
}

func (c *zipContext) Exists(rel string) bool {
	c.mustOpen()
	if _, ok := c.files[rel]; ok {
		return true
	}
	return c.hasDir(rel)
}

func (c *zipContext) IsFile(rel string) bool {
	c.mustOpen()
	_, ok := c.files[rel]
	return ok
}

func (c *zipContext) IsDir(rel string) bool {
	c.mustOpen()
	return c.hasDir(rel)
}

// hasDir checks the explicit directory entries first, then falls back to the
// prefix rule over file entries.
func (c *zipContext) hasDir(rel string) bool {
	if _, ok := c.dirs[rel]; ok {
		return true
	}
	prefix := rel + "/"
	for name := range c.files {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for name := range c.dirs {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (c *zipContext) Read(rel string) (string, error) {
	c.mustOpen()
	f, ok := c.files[rel]
	if !ok {
		return "", errors.Newf("read %s: no such entry", rel)
	}
	r, err := f.Open()
	if err != nil {
		return "", errors.Wrapf(err, "read %s", rel)
	}
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", rel)
	}
	return decodeText(rel, raw)
}

func (c *zipContext) ReadJSON(rel string) (any, error) {
	c.mustOpen()
	return readJSONFrom(c, rel)
}

func (c *zipContext) ReadYAML(rel string) (any, error) {
	c.mustOpen()
	return readYAMLFrom(c, rel)
}

func (c *zipContext) BaseName() string {
	c.mustOpen()
	return stripExt(filepath.Base(c.path))
}

func (c *zipContext) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rc.Close()
}
