// FILE: lixenwraith/propfile/field.go
package propfile

import "reflect"

// Kind classifies a catalog field's declared type.
type Kind int

const (
	// KindInvalid marks a declared type outside the supported set.
	// Decoding or encoding such a field yields ErrUnsupportedType.
	KindInvalid Kind = iota
	KindInt16
	KindInt32
	KindFloat32
	KindFloat64
	KindBool
	KindString // valid only as a list element kind
	KindList
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Field describes one configurable field of a target.
type Field struct {
	// Name is the case-sensitive match key against file entries.
	Name string

	// Kind is the declared type classification.
	Kind Kind

	// Elem is the element kind for KindList fields (KindInt32,
	// KindFloat32 or KindString); KindInvalid otherwise.
	Elem Kind

	// Comments holds doc-comment lines emitted before the entry on
	// serialize. An empty string renders as a bare blank line.
	Comments []string

	// Ignored fields are never written and never matched on read.
	Ignored bool

	// Static fields are readable without an instance.
	Static bool

	index int // struct field index; unused for table fields
}

// Accessor enumerates a target's configurable fields and performs the
// typed reads and writes the line codec is written against. The catalog
// returned by Fields is derived fresh on every call; it is a read-only
// projection of the target's structure.
type Accessor interface {
	// Fields returns the catalog in declaration order. Order is stable
	// across repeated calls for the same target.
	Fields() []Field

	// TypeComments returns the target-level comment lines emitted once
	// at the top of a serialized file.
	TypeComments() []string

	// Get reads the field's current value. Fails with ErrFieldAccess if
	// the field cannot be read, or ErrMissingInstance for an instance
	// field of an instance-less target.
	Get(f Field) (any, error)

	// Set writes a value whose runtime type must match f.Kind. Same
	// failure modes as Get, plus ErrTypeMismatch.
	Set(f Field, v any) error

	// HasInstance reports whether instance fields are reachable.
	HasInstance() bool
}

// classify maps a Go type to its catalog kind. Types outside the
// supported set classify as KindInvalid rather than erroring, so that the
// codec can report them per-entry.
func classify(t reflect.Type) (kind, elem Kind) {
	switch t.Kind() {
	case reflect.Int16:
		return KindInt16, KindInvalid
	case reflect.Int32:
		return KindInt32, KindInvalid
	case reflect.Float32:
		return KindFloat32, KindInvalid
	case reflect.Float64:
		return KindFloat64, KindInvalid
	case reflect.Bool:
		return KindBool, KindInvalid
	case reflect.Slice:
		switch t.Elem().Kind() {
		case reflect.Int32:
			return KindList, KindInt32
		case reflect.Float32:
			return KindList, KindFloat32
		case reflect.String:
			return KindList, KindString
		}
	}
	return KindInvalid, KindInvalid
}

// kindOf classifies a concrete value, used to verify Set arguments.
func kindOf(v any) (kind, elem Kind) {
	if v == nil {
		return KindInvalid, KindInvalid
	}
	return classify(reflect.TypeOf(v))
}

var (
	int16Type       = reflect.TypeOf(int16(0))
	int32Type       = reflect.TypeOf(int32(0))
	float32Type     = reflect.TypeOf(float32(0))
	float64Type     = reflect.TypeOf(float64(0))
	boolType        = reflect.TypeOf(false)
	int32SliceType  = reflect.TypeOf([]int32(nil))
	floatSliceType  = reflect.TypeOf([]float32(nil))
	stringSliceType = reflect.TypeOf([]string(nil))
)

// canonicalType returns the reflect type values of the given kind are
// exchanged as across the Accessor boundary.
func canonicalType(kind, elem Kind) reflect.Type {
	switch kind {
	case KindInt16:
		return int16Type
	case KindInt32:
		return int32Type
	case KindFloat32:
		return float32Type
	case KindFloat64:
		return float64Type
	case KindBool:
		return boolType
	case KindList:
		switch elem {
		case KindInt32:
			return int32SliceType
		case KindFloat32:
			return floatSliceType
		case KindString:
			return stringSliceType
		}
	}
	return nil
}
