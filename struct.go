// FILE: lixenwraith/propfile/struct.go
package propfile

import (
	"fmt"
	"reflect"
	"strings"
)

// Commented is implemented by target structs that carry file-level
// comment lines, emitted once at the top of a serialized file.
type Commented interface {
	ConfigComments() []string
}

// Struct is an Accessor backed by reflection over a pointer to a struct.
//
// Field names match the Go field names unless overridden with a
// `prop:"NAME"` tag. A `prop:"-"` tag marks the field ignored: it is
// never written and an entry naming it reads as an unknown field.
// Doc-comment lines are carried in a `comment` tag, '|'-separated; an
// empty segment renders as a bare blank line.
//
// A typed nil pointer (e.g. (*Settings)(nil)) gives an instance-less
// catalog: enumeration works from the type alone, Get and Set return
// ErrMissingInstance, and serialization silently skips every field. For
// process-wide "static" configuration use a Table instead.
type Struct struct {
	typ reflect.Type
	val reflect.Value // struct value; invalid when instance-less
}

// NewStruct creates an accessor for target, which must be a pointer to a
// struct. A nil pointer of a concrete struct type is accepted for
// instance-less enumeration.
func NewStruct(target any) (*Struct, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Type().Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("target must be a struct pointer, got %T", target)
	}

	s := &Struct{typ: rv.Type().Elem()}
	if !rv.IsNil() {
		s.val = rv.Elem()
	}
	return s, nil
}

// Fields enumerates the struct's exported fields in declaration order.
// The catalog is rebuilt on every call; it is never cached or mutated.
func (s *Struct) Fields() []Field {
	fields := make([]Field, 0, s.typ.NumField())

	for i := 0; i < s.typ.NumField(); i++ {
		sf := s.typ.Field(i)
		if !sf.IsExported() {
			continue
		}

		f := Field{Name: sf.Name, index: i}

		tag := sf.Tag.Get("prop")
		if tag == "-" {
			f.Ignored = true
		} else if tag != "" {
			f.Name = tag
		}

		if c := sf.Tag.Get("comment"); c != "" {
			f.Comments = strings.Split(c, "|")
		}

		f.Kind, f.Elem = classify(sf.Type)
		fields = append(fields, f)
	}

	return fields
}

// TypeComments returns the lines supplied by the target type's
// ConfigComments method, if it implements Commented.
func (s *Struct) TypeComments() []string {
	// Query a zero instance so instance-less catalogs still carry the
	// type-level comments.
	v := s.val
	if !v.IsValid() {
		v = reflect.New(s.typ).Elem()
	}

	if c, ok := v.Addr().Interface().(Commented); ok {
		return c.ConfigComments()
	}
	return nil
}

// HasInstance reports whether the accessor was built from a non-nil
// pointer.
func (s *Struct) HasInstance() bool {
	return s.val.IsValid()
}

// Get reads the field's current value, converted to its canonical type.
func (s *Struct) Get(f Field) (any, error) {
	if !s.val.IsValid() {
		return nil, fmt.Errorf("%w: field %s", ErrMissingInstance, f.Name)
	}
	if f.index < 0 || f.index >= s.typ.NumField() {
		return nil, fmt.Errorf("%w: field %s", ErrFieldAccess, f.Name)
	}

	fv := s.val.Field(f.index)
	ct := canonicalType(f.Kind, f.Elem)
	if ct == nil {
		return nil, fmt.Errorf("%w: field %s declared as %s", ErrUnsupportedType, f.Name, fv.Type())
	}
	return fv.Convert(ct).Interface(), nil
}

// Set writes a value of the type matching f.Kind into the field.
func (s *Struct) Set(f Field, v any) error {
	if !s.val.IsValid() {
		return fmt.Errorf("%w: field %s", ErrMissingInstance, f.Name)
	}
	if f.index < 0 || f.index >= s.typ.NumField() {
		return fmt.Errorf("%w: field %s", ErrFieldAccess, f.Name)
	}

	kind, elem := kindOf(v)
	if kind != f.Kind || (kind == KindList && elem != f.Elem) {
		return fmt.Errorf("%w: field %s holds %s, got %T", ErrTypeMismatch, f.Name, f.Kind, v)
	}

	fv := s.val.Field(f.index)
	if !fv.CanSet() {
		return fmt.Errorf("%w: field %s is not settable", ErrFieldAccess, f.Name)
	}
	fv.Set(reflect.ValueOf(v).Convert(fv.Type()))
	return nil
}
