// FILE: lixenwraith/propfile/export.go
package propfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Snapshot returns the current readable field values as a name→value
// map. Ignored fields, unsupported fields and instance fields of an
// instance-less catalog are omitted.
func Snapshot(acc Accessor) (map[string]any, error) {
	snap := make(map[string]any)

	for _, f := range acc.Fields() {
		if f.Ignored || f.Kind == KindInvalid {
			continue
		}
		v, err := acc.Get(f)
		if err != nil {
			if errors.Is(err, ErrMissingInstance) {
				continue
			}
			return nil, err
		}
		snap[f.Name] = v
	}

	return snap, nil
}

// Scan decodes the current catalog values into target, which must be a
// non-nil pointer to a struct or map. Field mapping uses the `prop` tag,
// with weak typing so e.g. an int32 value fills an int field.
func Scan(acc Accessor, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	snap, err := Snapshot(acc)
	if err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "prop",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(snap); err != nil {
		return fmt.Errorf("failed to scan into %T: %w", target, err)
	}

	return nil
}

// ExportFile writes a snapshot of the catalog to path in a structured
// format chosen by the file extension: .toml, .json, or .yaml/.yml. It
// is a one-way migration aid; the properties file stays the source of
// truth.
func (m *Manager) ExportFile(path string) error {
	snap, err := Snapshot(m.acc)
	if err != nil {
		return err
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		var buf bytes.Buffer
		encoder := toml.NewEncoder(&buf)
		if err := encoder.Encode(snap); err != nil {
			return fmt.Errorf("failed to marshal snapshot to TOML: %w", err)
		}
		data = buf.Bytes()
	case ".json":
		data, err = json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot to JSON: %w", err)
		}
	case ".yaml", ".yml":
		data, err = yaml.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot to YAML: %w", err)
		}
	default:
		return fmt.Errorf("unable to determine export format for file '%s'", path)
	}

	return writeFileAtomic(path, data, false)
}

// Scan decodes the manager's current catalog values into target.
func (m *Manager) Scan(target any) error {
	return Scan(m.acc, target)
}
