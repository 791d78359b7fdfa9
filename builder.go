// File: lixenwraith/propfile/builder.go
package propfile

import (
	"fmt"
	"io/fs"
)

// ValidatorFunc validates a fully constructed Manager before it is
// returned from Build.
type ValidatorFunc func(m *Manager) error

// Builder provides a fluent interface for constructing managers.
type Builder struct {
	path       string
	acc        Accessor
	opts       Options
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new manager builder with default options.
func NewBuilder() *Builder {
	return &Builder{opts: DefaultOptions()}
}

// WithFile sets the configuration file path.
func (b *Builder) WithFile(path string) *Builder {
	b.path = path
	return b
}

// WithStruct targets a pointer-to-struct (or typed nil pointer for
// instance-less enumeration).
func (b *Builder) WithStruct(target any) *Builder {
	acc, err := NewStruct(target)
	if err != nil && b.err == nil {
		b.err = err
	}
	b.acc = acc
	return b
}

// WithTable targets a process-wide registry.
func (b *Builder) WithTable(t *Table) *Builder {
	b.acc = t
	return b
}

// WithAccessor targets a custom Accessor implementation.
func (b *Builder) WithAccessor(acc Accessor) *Builder {
	b.acc = acc
	return b
}

// WithBackup controls .bak retention on save.
func (b *Builder) WithBackup(backup bool) *Builder {
	b.opts.Backup = backup
	return b
}

// WithErrorHandler sets the per-line failure callback for best-effort
// loading.
func (b *Builder) WithErrorHandler(fn func(line string, err error)) *Builder {
	b.opts.OnError = fn
	return b
}

// WithDefaultsFS sets a bundled default file used when the config file
// does not exist yet.
func (b *Builder) WithDefaultsFS(fsys fs.FS, name string) *Builder {
	b.opts.Defaults = fsys
	b.opts.DefaultsName = name
	return b
}

// WithValidator adds a validation function run at the end of Build.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	b.validators = append(b.validators, fn)
	return b
}

// Build constructs the Manager and runs any validators.
func (b *Builder) Build() (*Manager, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.path == "" {
		return nil, fmt.Errorf("builder requires a file path")
	}
	if b.acc == nil {
		return nil, fmt.Errorf("builder requires a target (struct, table or accessor)")
	}

	m := NewWithOptions(b.path, b.acc, b.opts)

	for _, validate := range b.validators {
		if err := validate(m); err != nil {
			return nil, fmt.Errorf("manager validation failed: %w", err)
		}
	}

	return m, nil
}

// Quick binds path to target and immediately runs LoadOrCreate. The
// target may be a pointer-to-struct, a *Table, or any Accessor. This is
// the recommended single-call initialization for most applications.
func Quick(path string, target any) (*Manager, Result, error) {
	var acc Accessor
	switch t := target.(type) {
	case Accessor:
		acc = t
	default:
		s, err := NewStruct(target)
		if err != nil {
			return nil, Result{}, err
		}
		acc = s
	}

	m := New(path, acc)
	res, err := m.LoadOrCreate()
	return m, res, err
}

// MustQuick is like Quick but panics on error.
func MustQuick(path string, target any) *Manager {
	m, _, err := Quick(path, target)
	if err != nil {
		panic(fmt.Sprintf("propfile initialization failed: %v", err))
	}
	return m
}
