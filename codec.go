// FILE: lixenwraith/propfile/codec.go
package propfile

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// splitEntry splits one entry line around the first '='. Everything after
// the first '=' belongs to the value, so values may contain further '='
// characters. Both sides are trimmed; a missing '=' or a blank side is a
// malformed entry.
func splitEntry(line string) (name, value string, err error) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedEntry, line)
	}

	name = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if name == "" || value == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedEntry, line)
	}
	return name, value, nil
}

// decodeEntry parses one entry line against the catalog and applies the
// decoded value through the accessor. Accessor failures propagate
// unchanged.
func decodeEntry(line string, catalog map[string]Field, acc Accessor) error {
	name, value, err := splitEntry(line)
	if err != nil {
		return err
	}

	f, found := catalog[name]
	if !found || f.Ignored {
		// An ignored field is indistinguishable from an absent one.
		return fmt.Errorf("%w: %s in %q", ErrUnknownField, name, line)
	}

	v, err := decodeValue(f, value)
	if err != nil {
		return err
	}
	return acc.Set(f, v)
}

// decodeValue converts a textual token to the field's declared type.
func decodeValue(f Field, value string) (any, error) {
	switch f.Kind {
	case KindInt16:
		return parseInt16(value)
	case KindInt32:
		return parseInt32(value)
	case KindFloat32:
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q for %s field %s", ErrNumberFormat, value, f.Kind, f.Name)
		}
		return float32(v), nil
	case KindFloat64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q for %s field %s", ErrNumberFormat, value, f.Kind, f.Name)
		}
		return v, nil
	case KindBool:
		// Lenient on purpose: anything that is not "true" reads false.
		return strings.EqualFold(value, "true"), nil
	case KindList:
		return decodeList(f, value)
	default:
		return nil, fmt.Errorf("%w: field %s", ErrUnsupportedType, f.Name)
	}
}

// parseInt16 parses a 16-bit integer token. A literal "0x" prefix selects
// base 16 with unsigned width and two's-complement wraparound, so 0xFFFF
// reads as -1; anything else parses as signed decimal.
func parseInt16(s string) (int16, error) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		u, err := strconv.ParseUint(rest, 16, 16)
		if err != nil {
			return 0, fmt.Errorf("%w: %q as hex int16", ErrNumberFormat, s)
		}
		return int16(u), nil
	}

	v, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q as int16", ErrNumberFormat, s)
	}
	return int16(v), nil
}

// parseInt32 parses a 32-bit integer token with the same hex rule as
// parseInt16.
func parseInt32(s string) (int32, error) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		u, err := strconv.ParseUint(rest, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q as hex int32", ErrNumberFormat, s)
		}
		return int32(u), nil
	}

	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q as int32", ErrNumberFormat, s)
	}
	return int32(v), nil
}

// decodeList parses a "[e1, e2, ...]" token. Brackets and all whitespace
// are stripped before splitting on ',', so list elements cannot contain
// commas, brackets or spaces. An empty body yields an empty list.
func decodeList(f Field, value string) (any, error) {
	body := strings.Map(func(r rune) rune {
		if r == '[' || r == ']' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)

	var tokens []string
	if body != "" {
		tokens = strings.Split(body, ",")
	}

	switch f.Elem {
	case KindInt32:
		out := make([]int32, 0, len(tokens))
		for _, tok := range tokens {
			v, err := parseInt32(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case KindFloat32:
		out := make([]float32, 0, len(tokens))
		for _, tok := range tokens {
			v, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: %q as float32 element of %s", ErrNumberFormat, tok, f.Name)
			}
			out = append(out, float32(v))
		}
		return out, nil
	case KindString:
		out := make([]string, 0, len(tokens))
		out = append(out, tokens...)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: field %s list element", ErrUnsupportedType, f.Name)
	}
}

// encodeValue renders a field's current value as entry-line text. The
// rendering round-trips with decodeValue for all in-range integer and
// bool values; floats are truncated to six fractional digits.
func encodeValue(f Field, v any) (string, error) {
	switch f.Kind {
	case KindInt16:
		i, ok := v.(int16)
		if !ok {
			return "", fmt.Errorf("%w: field %s holds %s, got %T", ErrTypeMismatch, f.Name, f.Kind, v)
		}
		return fmt.Sprintf("0x%02X", uint16(i)), nil
	case KindInt32:
		i, ok := v.(int32)
		if !ok {
			return "", fmt.Errorf("%w: field %s holds %s, got %T", ErrTypeMismatch, f.Name, f.Kind, v)
		}
		return strconv.FormatInt(int64(i), 10), nil
	case KindFloat32:
		fv, ok := v.(float32)
		if !ok {
			return "", fmt.Errorf("%w: field %s holds %s, got %T", ErrTypeMismatch, f.Name, f.Kind, v)
		}
		return strconv.FormatFloat(float64(fv), 'f', 6, 32), nil
	case KindFloat64:
		fv, ok := v.(float64)
		if !ok {
			return "", fmt.Errorf("%w: field %s holds %s, got %T", ErrTypeMismatch, f.Name, f.Kind, v)
		}
		return strconv.FormatFloat(fv, 'f', 6, 64), nil
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return "", fmt.Errorf("%w: field %s holds %s, got %T", ErrTypeMismatch, f.Name, f.Kind, v)
		}
		return strconv.FormatBool(b), nil
	case KindList:
		return encodeList(f, v)
	default:
		return "", fmt.Errorf("%w: field %s", ErrUnsupportedType, f.Name)
	}
}

// encodeList renders a list value as "[e1, e2, ...]". Strings are written
// verbatim and unquoted; the delimiter characters are not escaped.
func encodeList(f Field, v any) (string, error) {
	var elems []string

	switch f.Elem {
	case KindInt32:
		list, ok := v.([]int32)
		if !ok {
			return "", fmt.Errorf("%w: field %s holds []int32, got %T", ErrTypeMismatch, f.Name, v)
		}
		elems = make([]string, len(list))
		for i, e := range list {
			elems[i] = strconv.FormatInt(int64(e), 10)
		}
	case KindFloat32:
		list, ok := v.([]float32)
		if !ok {
			return "", fmt.Errorf("%w: field %s holds []float32, got %T", ErrTypeMismatch, f.Name, v)
		}
		elems = make([]string, len(list))
		for i, e := range list {
			elems[i] = strconv.FormatFloat(float64(e), 'f', 6, 32)
		}
	case KindString:
		list, ok := v.([]string)
		if !ok {
			return "", fmt.Errorf("%w: field %s holds []string, got %T", ErrTypeMismatch, f.Name, v)
		}
		elems = list
	default:
		return "", fmt.Errorf("%w: field %s list element", ErrUnsupportedType, f.Name)
	}

	return "[" + strings.Join(elems, ", ") + "]", nil
}

// catalogOf builds the name lookup for one enumeration of the accessor.
func catalogOf(acc Accessor) map[string]Field {
	fields := acc.Fields()
	catalog := make(map[string]Field, len(fields))
	for _, f := range fields {
		catalog[f.Name] = f
	}
	return catalog
}
