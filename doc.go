// Package shapecheck is the runtime linked by generated validators:
//
// - Composable, non-throwing validation primitives and combinators over
//   decoded JSON-like values (Str/Num/Boolean/Literal, Object/Field/List/OneOf)
// - A stable issue model (dot path, machine code, message) accumulated in an
//   ordered Sink and reduced to a ValidationResult by Run/RunPath
// - A uniform read-only view over bundles (directory tree or zip archive)
//   under fsys/, with bundle-level checks in this package
//
// Design policy:
// - Keep the public API in the root package; filesystem backings live under
//   fsys/ and message rendering under i18n/.
// - Validators append issues and return; they never panic on bad input. Only
//   contract violations (querying a closed fsys.Context) are fatal.
// - Prefer black-box testing against public APIs.
//
// Typical usage inside generated code:
//
//	func validateManifest(v shapecheck.Value, p shapecheck.Path, sink *shapecheck.Sink) {
//		if !shapecheck.Object(v, p, sink) {
//			return
//		}
//		shapecheck.Field(v, p, sink, "name", nameValidator, false)
//	}
//
//	res := shapecheck.Run(doc, validateManifest)
package shapecheck
