// Package fsys gives bundle validators one read-only view over the two
// physical bundle forms: a directory tree and a zip archive. The backing is
// chosen once by Open and exposed only through the Context capability
// interface plus its Kind tag; callers never branch on the physical form.
//
// A Context owns at most one OS handle. It is exclusively owned by the
// validation flow that opened it, must be closed exactly once on every code
// path, and is not safe to share across concurrent runs. Close is idempotent;
// any other query on a closed Context is a contract violation and panics.
package fsys
