// FILE: lixenwraith/propfile/errors.go
package propfile

import "errors"

// Sentinel errors returned by decode, encode and file operations.
// Wrapped errors carry the offending line or field name; use errors.Is
// to classify.
var (
	// ErrMalformedEntry indicates a line that does not split into a
	// non-blank name and value around the first '='.
	ErrMalformedEntry = errors.New("malformed entry")

	// ErrUnknownField indicates an entry name with no catalog match.
	// Ignored fields are reported the same way as absent ones.
	ErrUnknownField = errors.New("no matching field")

	// ErrNumberFormat indicates a numeric token that does not parse for
	// the field's declared width or type.
	ErrNumberFormat = errors.New("invalid number format")

	// ErrUnsupportedType indicates a catalog field whose declared type is
	// not one of the supported scalar or list types.
	ErrUnsupportedType = errors.New("unsupported field type")

	// ErrFieldAccess indicates a field that exists but cannot be read or
	// written. It aborts processing even in best-effort mode, since it
	// signals a defect in the target rather than bad input.
	ErrFieldAccess = errors.New("field access failed")

	// ErrMissingInstance indicates an instance field accessed through a
	// catalog built without an instance.
	ErrMissingInstance = errors.New("no instance supplied")

	// ErrTypeMismatch indicates a Set with a value whose runtime type
	// disagrees with the field's declared kind.
	ErrTypeMismatch = errors.New("value type mismatch")

	// ErrNotFound indicates the configuration file does not exist.
	ErrNotFound = errors.New("config file not found")
)

// fatal reports whether err must terminate processing immediately even in
// best-effort mode.
func fatal(err error) bool {
	return errors.Is(err, ErrFieldAccess) || errors.Is(err, ErrMissingInstance)
}
