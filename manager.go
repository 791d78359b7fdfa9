// FILE: lixenwraith/propfile/manager.go
package propfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Options configures how a Manager loads and saves its file.
type Options struct {
	// Backup keeps the prior file version as <path>.bak on every save.
	Backup bool

	// OnError receives one event per failed line during best-effort
	// loading. The raw line and the classified error are passed through;
	// the failure count is unaffected by the handler.
	OnError func(line string, err error)

	// Defaults optionally holds a bundled default file (e.g. an
	// embed.FS). When the config file is missing, LoadOrCreate copies
	// DefaultsName out of it instead of serializing current values.
	Defaults fs.FS

	// DefaultsName is the path of the default file within Defaults.
	DefaultsName string
}

// DefaultOptions returns the standard manager options.
func DefaultOptions() Options {
	return Options{Backup: true}
}

// Result reports the outcome of LoadOrCreate.
type Result struct {
	// Created is true when no file existed and a new one was written.
	Created bool

	// Failed counts the lines that could not be applied. Zero means a
	// clean load. Fields applied before a failed line stay applied.
	Failed int
}

// Manager binds a configuration file to an Accessor and drives the line
// codec over it in both directions. Operations are synchronous and
// single-threaded; concurrent use of one Manager is not supported.
type Manager struct {
	path string
	acc  Accessor
	opts Options
}

// New creates a Manager with default options.
func New(path string, acc Accessor) *Manager {
	return NewWithOptions(path, acc, DefaultOptions())
}

// NewWithOptions creates a Manager with custom options.
func NewWithOptions(path string, acc Accessor, opts Options) *Manager {
	return &Manager{path: path, acc: acc, opts: opts}
}

// Path returns the configuration file path.
func (m *Manager) Path() string { return m.path }

// Load deserializes the file in best-effort mode: every entry line is
// processed regardless of earlier failures, and the exact count of failed
// lines is returned. Content errors (malformed entries, unknown fields,
// bad numbers) are counted and reported through OnError; an accessor
// failure terminates immediately since it signals a defect in the target
// rather than bad input. I/O errors are fatal and propagated unchanged.
func (m *Manager) Load() (int, error) {
	lines, err := m.readLines()
	if err != nil {
		return 0, err
	}

	catalog := catalogOf(m.acc)
	failed := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if err := decodeEntry(trimmed, catalog, m.acc); err != nil {
			if fatal(err) {
				return failed, err
			}
			failed++
			if m.opts.OnError != nil {
				m.opts.OnError(line, err)
			}
		}
	}

	return failed, nil
}

// LoadStrict deserializes the file in fail-fast mode: processing stops at
// the first failure and that error is returned, carrying the offending
// line. Fields applied from earlier lines remain applied; there is no
// rollback.
func (m *Manager) LoadStrict() error {
	lines, err := m.readLines()
	if err != nil {
		return err
	}

	catalog := catalogOf(m.acc)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if err := decodeEntry(trimmed, catalog, m.acc); err != nil {
			return err
		}
	}

	return nil
}

// LoadOrCreate deserializes the file if it exists, in best-effort mode.
// If it does not exist, a new file is created instead: from the bundled
// default when one was configured, otherwise by serializing the current
// field values.
func (m *Manager) LoadOrCreate() (Result, error) {
	if _, err := os.Stat(m.path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("failed to check config file '%s': %w", m.path, err)
		}
		if err := m.create(); err != nil {
			return Result{}, err
		}
		return Result{Created: true}, nil
	}

	failed, err := m.Load()
	return Result{Failed: failed}, err
}

// create writes the initial file, preferring a bundled default over
// catalog-derived serialization.
func (m *Manager) create() error {
	if m.opts.Defaults != nil && m.opts.DefaultsName != "" {
		data, err := fs.ReadFile(m.opts.Defaults, m.opts.DefaultsName)
		if err == nil {
			return writeFileAtomic(m.path, data, false)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read bundled default '%s': %w", m.opts.DefaultsName, err)
		}
		// Bundled default absent; fall through to serialization.
	}
	return m.Save()
}

// Save serializes the catalog to the file in declaration order. Ignored
// fields are skipped; instance fields of an instance-less catalog are
// skipped silently. Any other read or encode failure aborts the whole
// operation before the file is touched, so a broken target never
// clobbers an intact file.
func (m *Manager) Save() error {
	data, err := m.render()
	if err != nil {
		return err
	}
	return writeFileAtomic(m.path, data, m.opts.Backup)
}

// render produces the full serialized file contents.
func (m *Manager) render() ([]byte, error) {
	var b strings.Builder

	if tc := m.acc.TypeComments(); len(tc) > 0 {
		for _, line := range tc {
			writeComment(&b, line)
		}
		b.WriteString("\n")
	}

	for _, f := range m.acc.Fields() {
		if f.Ignored || f.Kind == KindInvalid {
			continue
		}
		if !f.Static && !m.acc.HasInstance() {
			continue
		}

		v, err := m.acc.Get(f)
		if err != nil {
			if errors.Is(err, ErrMissingInstance) {
				continue
			}
			return nil, err
		}

		text, err := encodeValue(f, v)
		if err != nil {
			return nil, err
		}

		for _, line := range f.Comments {
			writeComment(&b, line)
		}
		b.WriteString(f.Name)
		b.WriteString("=")
		b.WriteString(text)
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

// Update rewrites the existing file in place: comment lines, blank lines
// and entries with no catalog match are preserved verbatim, while entries
// naming a non-ignored catalog field get their current encoded value
// substituted. The replacement is atomic, with the usual backup handling.
func (m *Manager) Update() error {
	lines, err := m.readLines()
	if err != nil {
		return err
	}

	catalog := catalogOf(m.acc)
	var b strings.Builder

	for _, line := range lines {
		out, err := m.updateLine(line, catalog)
		if err != nil {
			return err
		}
		b.WriteString(out)
		b.WriteString("\n")
	}

	return writeFileAtomic(m.path, []byte(b.String()), m.opts.Backup)
}

// updateLine produces the replacement for one line of an in-place update.
func (m *Manager) updateLine(line string, catalog map[string]Field) (string, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return line, nil
	}

	name, _, err := splitEntry(trimmed)
	if err != nil {
		return line, nil // Malformed lines pass through untouched.
	}

	f, found := catalog[name]
	if !found || f.Ignored || f.Kind == KindInvalid {
		return line, nil
	}

	v, err := m.acc.Get(f)
	if err != nil {
		if errors.Is(err, ErrMissingInstance) {
			return line, nil
		}
		return "", err
	}

	text, err := encodeValue(f, v)
	if err != nil {
		return "", err
	}
	return f.Name + "=" + text, nil
}

// readLines reads the whole file and splits it into lines. A missing
// file reads as ErrNotFound so callers can distinguish bootstrap from
// genuine I/O failure.
func (m *Manager) readLines() ([]string, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, m.path)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", m.path, err)
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	// Drop a trailing empty line produced by the final newline.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

// writeComment emits one doc-comment line; an empty string renders as a
// bare blank line.
func writeComment(b *strings.Builder, line string) {
	if line == "" {
		b.WriteString("\n")
		return
	}
	b.WriteString("# ")
	b.WriteString(line)
	b.WriteString("\n")
}
