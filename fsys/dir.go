package fsys

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// dirContext backs a Context with a plain directory tree. It holds no OS
// handle between queries, so Close only flips the state bit.
type dirContext struct {
	root   string
	closed bool
}

func (c *dirContext) Kind() BundleKind { return KindDirectory }

func (c *dirContext) mustOpen() {
	if c.closed {
		panic("fsys: use of closed directory context")
	}
}

func (c *dirContext) abs(rel string) string {
	return filepath.Join(c.root, filepath.FromSlash(rel))
}

func (c *dirContext) Exists(rel string) bool {
	c.mustOpen()
	_, err := os.Stat(c.abs(rel))
	return err == nil
}

func (c *dirContext) IsFile(rel string) bool {
	c.mustOpen()
	st, err := os.Stat(c.abs(rel))
	return err == nil && st.Mode().IsRegular()
}

func (c *dirContext) IsDir(rel string) bool {
	c.mustOpen()
	st, err := os.Stat(c.abs(rel))
	return err == nil && st.IsDir()
}

func (c *dirContext) Read(rel string) (string, error) {
	c.mustOpen()
	raw, err := os.ReadFile(c.abs(rel))
	if err != nil {
		return "", errors.Wrapf(err, "read %s", rel)
	}
	return decodeText(rel, raw)
}

func (c *dirContext) ReadJSON(rel string) (any, error) {
	c.mustOpen()
	return readJSONFrom(c, rel)
}

func (c *dirContext) ReadYAML(rel string) (any, error) {
	c.mustOpen()
	return readYAMLFrom(c, rel)
}

func (c *dirContext) BaseName() string {
	c.mustOpen()
	return stripExt(filepath.Base(c.root))
}

func (c *dirContext) Close() error {
	c.closed = true
	return nil
}
