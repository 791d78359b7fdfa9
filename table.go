// File: lixenwraith/propfile/table.go
package propfile

import (
	"fmt"
	"reflect"
	"sync"
)

// tableItem holds both the default and current value for a registered name.
type tableItem struct {
	field        Field
	defaultValue any
	currentValue any
}

// Table is an Accessor backed by a process-wide name→value registry. It
// is the instance-less counterpart of Struct: every registered field is
// static, so a Table serializes fully without any object instance.
type Table struct {
	mutex    sync.RWMutex
	order    []string
	items    map[string]*tableItem
	comments []string
}

// NewTable creates an empty registry.
func NewTable() *Table {
	return &Table{items: make(map[string]*tableItem)}
}

// Comment sets the table-level comment lines emitted once at the top of
// a serialized file.
func (t *Table) Comment(lines ...string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.comments = lines
}

// Register makes a name known to the table. The default value's type
// determines the field kind; values outside the supported set are kept
// with an invalid kind and surface as ErrUnsupportedType when encoded or
// decoded. Registration order is the serialization order.
func (t *Table) Register(name string, defaultValue any, comments ...string) error {
	if name == "" {
		return fmt.Errorf("registration name cannot be empty")
	}
	if !isValidName(name) {
		return fmt.Errorf("invalid registration name %q", name)
	}

	kind, elem := kindOf(defaultValue)
	value := defaultValue
	if ct := canonicalType(kind, elem); ct != nil {
		value = reflect.ValueOf(defaultValue).Convert(ct).Interface()
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	item, exists := t.items[name]
	if !exists {
		item = &tableItem{}
		t.items[name] = item
		t.order = append(t.order, name)
	}
	item.field = Field{
		Name:     name,
		Kind:     kind,
		Elem:     elem,
		Comments: comments,
		Static:   true,
	}
	item.defaultValue = value
	item.currentValue = value
	return nil
}

// Ignore marks a registered name as ignored: never serialized, and
// unmatched by incoming entries.
func (t *Table) Ignore(name string) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	item, exists := t.items[name]
	if !exists {
		return fmt.Errorf("name not registered: %s", name)
	}
	item.field.Ignored = true
	return nil
}

// Unregister removes a name from the table.
func (t *Table) Unregister(name string) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, exists := t.items[name]; !exists {
		return fmt.Errorf("name not registered: %s", name)
	}
	delete(t.items, name)
	for i, n := range t.order {
		if n == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// Fields returns the catalog in registration order.
func (t *Table) Fields() []Field {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	fields := make([]Field, 0, len(t.order))
	for _, name := range t.order {
		fields = append(fields, t.items[name].field)
	}
	return fields
}

// TypeComments returns the lines set with Comment.
func (t *Table) TypeComments() []string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.comments
}

// HasInstance always reports true; table fields need no instance.
func (t *Table) HasInstance() bool { return true }

// Get reads the current value for the field.
func (t *Table) Get(f Field) (any, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	item, exists := t.items[f.Name]
	if !exists {
		return nil, fmt.Errorf("%w: name not registered: %s", ErrFieldAccess, f.Name)
	}
	return item.currentValue, nil
}

// Set writes a value of the type matching f.Kind.
func (t *Table) Set(f Field, v any) error {
	kind, elem := kindOf(v)
	if kind != f.Kind || (kind == KindList && elem != f.Elem) {
		return fmt.Errorf("%w: field %s holds %s, got %T", ErrTypeMismatch, f.Name, f.Kind, v)
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	item, exists := t.items[f.Name]
	if !exists {
		return fmt.Errorf("%w: name not registered: %s", ErrFieldAccess, f.Name)
	}
	if ct := canonicalType(kind, elem); ct != nil {
		v = reflect.ValueOf(v).Convert(ct).Interface()
	}
	item.currentValue = v
	return nil
}

// Value retrieves the current value for a name. The second return value
// indicates whether the name is registered.
func (t *Table) Value(name string) (any, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	item, exists := t.items[name]
	if !exists {
		return nil, false
	}
	return item.currentValue, true
}

// SetValue updates the value for a registered name.
func (t *Table) SetValue(name string, v any) error {
	t.mutex.RLock()
	item, exists := t.items[name]
	t.mutex.RUnlock()

	if !exists {
		return fmt.Errorf("name not registered: %s", name)
	}
	return t.Set(item.field, v)
}

// Reset restores a registered name to its default value.
func (t *Table) Reset(name string) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	item, exists := t.items[name]
	if !exists {
		return fmt.Errorf("name not registered: %s", name)
	}
	item.currentValue = item.defaultValue
	return nil
}

// Int16 retrieves an int16 value by name.
func (t *Table) Int16(name string) (int16, error) {
	val, found := t.Value(name)
	if !found {
		return 0, fmt.Errorf("name not registered: %s", name)
	}
	if v, ok := val.(int16); ok {
		return v, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to int16 for %s", val, name)
}

// Int32 retrieves an int32 value by name.
func (t *Table) Int32(name string) (int32, error) {
	val, found := t.Value(name)
	if !found {
		return 0, fmt.Errorf("name not registered: %s", name)
	}
	if v, ok := val.(int32); ok {
		return v, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to int32 for %s", val, name)
}

// Float32 retrieves a float32 value by name.
func (t *Table) Float32(name string) (float32, error) {
	val, found := t.Value(name)
	if !found {
		return 0, fmt.Errorf("name not registered: %s", name)
	}
	if v, ok := val.(float32); ok {
		return v, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to float32 for %s", val, name)
}

// Float64 retrieves a float64 value by name.
func (t *Table) Float64(name string) (float64, error) {
	val, found := t.Value(name)
	if !found {
		return 0, fmt.Errorf("name not registered: %s", name)
	}
	if v, ok := val.(float64); ok {
		return v, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to float64 for %s", val, name)
}

// Bool retrieves a bool value by name.
func (t *Table) Bool(name string) (bool, error) {
	val, found := t.Value(name)
	if !found {
		return false, fmt.Errorf("name not registered: %s", name)
	}
	if v, ok := val.(bool); ok {
		return v, nil
	}
	return false, fmt.Errorf("cannot convert type %T to bool for %s", val, name)
}

// Int32List retrieves an []int32 value by name.
func (t *Table) Int32List(name string) ([]int32, error) {
	val, found := t.Value(name)
	if !found {
		return nil, fmt.Errorf("name not registered: %s", name)
	}
	if v, ok := val.([]int32); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to []int32 for %s", val, name)
}

// StringList retrieves a []string value by name.
func (t *Table) StringList(name string) ([]string, error) {
	val, found := t.Value(name)
	if !found {
		return nil, fmt.Errorf("name not registered: %s", name)
	}
	if v, ok := val.([]string); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to []string for %s", val, name)
}

// isValidName checks that a registration name is a valid entry key.
func isValidName(s string) bool {
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-' || r == '.') {
			return false
		}
	}
	return len(s) > 0
}
