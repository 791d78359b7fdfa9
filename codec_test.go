// FILE: lixenwraith/propfile/codec_test.go
package propfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codecTarget struct {
	Count   int32    `prop:"STATIC_INT"`
	Mask    int16    `prop:"STATIC_SHORT"`
	Rate    float32  `prop:"STATIC_FLOAT"`
	Root    float64  `prop:"STATIC_DOUBLE"`
	Enabled bool     `prop:"STATIC_BOOL"`
	Label   string   `prop:"STATIC_STRING"`
	Hidden  string   `prop:"-"`
	Evens   []int32  `prop:"STATIC_INT_LIST"`
	Ratios  []float32
	Words   []string `prop:"STATIC_STRING_LIST"`
}

func newCodecFixture(t *testing.T) (*Struct, map[string]Field, *codecTarget) {
	t.Helper()
	target := &codecTarget{}
	acc, err := NewStruct(target)
	require.NoError(t, err)
	return acc, catalogOf(acc), target
}

// TestDecodeScalars covers the numeric, bool and hex coercion rules.
func TestDecodeScalars(t *testing.T) {
	acc, catalog, target := newCodecFixture(t)

	require.NoError(t, decodeEntry("STATIC_INT=10", catalog, acc))
	assert.Equal(t, int32(10), target.Count)

	// Hex vs decimal detection.
	require.NoError(t, decodeEntry("STATIC_INT=0x10", catalog, acc))
	assert.Equal(t, int32(16), target.Count)

	require.NoError(t, decodeEntry("STATIC_SHORT=0xFF", catalog, acc))
	assert.Equal(t, int16(255), target.Mask)

	require.NoError(t, decodeEntry("STATIC_SHORT=-4", catalog, acc))
	assert.Equal(t, int16(-4), target.Mask)

	// Two's-complement wraparound for hex values >= 0x8000.
	require.NoError(t, decodeEntry("STATIC_SHORT=0xFFFF", catalog, acc))
	assert.Equal(t, int16(-1), target.Mask)

	require.NoError(t, decodeEntry("STATIC_FLOAT=2.718", catalog, acc))
	assert.Equal(t, float32(2.718), target.Rate)

	require.NoError(t, decodeEntry("STATIC_DOUBLE=1.5e2", catalog, acc))
	assert.Equal(t, 150.0, target.Root)
}

// TestDecodeBoolLenient verifies bool never errors: anything that is not
// "true" (any case) reads false.
func TestDecodeBoolLenient(t *testing.T) {
	acc, catalog, target := newCodecFixture(t)

	require.NoError(t, decodeEntry("STATIC_BOOL=TRUE", catalog, acc))
	assert.True(t, target.Enabled)

	require.NoError(t, decodeEntry("STATIC_BOOL=false", catalog, acc))
	assert.False(t, target.Enabled)

	target.Enabled = true
	require.NoError(t, decodeEntry("STATIC_BOOL=yes", catalog, acc))
	assert.False(t, target.Enabled)
}

func TestDecodeLists(t *testing.T) {
	acc, catalog, target := newCodecFixture(t)

	require.NoError(t, decodeEntry("STATIC_INT_LIST=[2, 4, 6, 8, 10]", catalog, acc))
	assert.Equal(t, []int32{2, 4, 6, 8, 10}, target.Evens)

	// Whitespace and brackets are stripped wholesale before splitting.
	require.NoError(t, decodeEntry("STATIC_INT_LIST=[ 1 ,2,  3 ]", catalog, acc))
	assert.Equal(t, []int32{1, 2, 3}, target.Evens)

	require.NoError(t, decodeEntry("STATIC_STRING_LIST=[hello, world]", catalog, acc))
	assert.Equal(t, []string{"hello", "world"}, target.Words)

	require.NoError(t, decodeEntry("Ratios=[1.5, 2.25]", catalog, acc))
	assert.Equal(t, []float32{1.5, 2.25}, target.Ratios)

	// Empty after stripping yields an empty list, not an error.
	require.NoError(t, decodeEntry("STATIC_INT_LIST=[]", catalog, acc))
	assert.Empty(t, target.Evens)
}

func TestDecodeErrors(t *testing.T) {
	acc, catalog, _ := newCodecFixture(t)

	tests := []struct {
		name string
		line string
		want error
	}{
		{"no equals", "STATIC_INT", ErrMalformedEntry},
		{"empty value", "STATIC_SHORT=", ErrMalformedEntry},
		{"empty name", "=5", ErrMalformedEntry},
		{"unknown name", "NOPE=1", ErrUnknownField},
		{"case sensitive", "static_int=5", ErrUnknownField},
		{"ignored field", "Hidden=x", ErrUnknownField},
		{"unsupported type", "STATIC_STRING=x", ErrUnsupportedType},
		{"bad int", "STATIC_INT=abc", ErrNumberFormat},
		{"int overflow", "STATIC_SHORT=70000", ErrNumberFormat},
		{"bad hex", "STATIC_SHORT=0xZZ", ErrNumberFormat},
		{"bad float", "STATIC_FLOAT=1.2.3", ErrNumberFormat},
		{"bad list element", "STATIC_INT_LIST=[1, x]", ErrNumberFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := decodeEntry(tc.line, catalog, acc)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// Unknown-field failures carry the raw offending line, not just the name.
	err := decodeEntry("NOPE=1", catalog, acc)
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Contains(t, err.Error(), `"NOPE=1"`)
}

// TestDecodeValueAfterFirstEquals verifies everything after the first '='
// belongs to the value.
func TestDecodeValueAfterFirstEquals(t *testing.T) {
	target := &struct {
		Names []string `prop:"NAMES"`
	}{}
	acc, err := NewStruct(target)
	require.NoError(t, err)

	require.NoError(t, decodeEntry("NAMES=[a=b, c]", catalogOf(acc), acc))
	assert.Equal(t, []string{"a=b", "c"}, target.Names)
}

func TestEncodeScalars(t *testing.T) {
	acc, catalog, target := newCodecFixture(t)

	target.Count = 67
	target.Mask = 4
	target.Rate = 3.14
	target.Root = 1.4142135623730951
	target.Enabled = true

	tests := []struct {
		field string
		want  string
	}{
		{"STATIC_INT", "67"},
		{"STATIC_SHORT", "0x04"},
		{"STATIC_FLOAT", "3.140000"},
		{"STATIC_DOUBLE", "1.414214"},
		{"STATIC_BOOL", "true"},
	}

	for _, tc := range tests {
		f := catalog[tc.field]
		v, err := acc.Get(f)
		require.NoError(t, err)
		text, err := encodeValue(f, v)
		require.NoError(t, err)
		assert.Equal(t, tc.want, text, tc.field)
	}

	target.Mask = 0xFF
	f := catalog["STATIC_SHORT"]
	v, err := acc.Get(f)
	require.NoError(t, err)
	text, err := encodeValue(f, v)
	require.NoError(t, err)
	assert.Equal(t, "0xFF", text)
}

func TestEncodeLists(t *testing.T) {
	acc, catalog, target := newCodecFixture(t)

	target.Evens = []int32{2, 4, 6, 8, 10}
	target.Words = []string{"hello", "world"}
	target.Ratios = []float32{1.5}

	f := catalog["STATIC_INT_LIST"]
	v, _ := acc.Get(f)
	text, err := encodeValue(f, v)
	require.NoError(t, err)
	assert.Equal(t, "[2, 4, 6, 8, 10]", text)

	f = catalog["STATIC_STRING_LIST"]
	v, _ = acc.Get(f)
	text, err = encodeValue(f, v)
	require.NoError(t, err)
	assert.Equal(t, "[hello, world]", text)

	f = catalog["Ratios"]
	v, _ = acc.Get(f)
	text, err = encodeValue(f, v)
	require.NoError(t, err)
	assert.Equal(t, "[1.500000]", text)

	target.Evens = nil
	f = catalog["STATIC_INT_LIST"]
	v, _ = acc.Get(f)
	text, err = encodeValue(f, v)
	require.NoError(t, err)
	assert.Equal(t, "[]", text)
}

// TestScalarRoundTrip re-decodes encoded values into a zeroed target and
// expects exact reproduction for the integer and bool kinds.
func TestScalarRoundTrip(t *testing.T) {
	acc, catalog, target := newCodecFixture(t)

	target.Count = -123456
	target.Mask = -1
	target.Enabled = true
	target.Evens = []int32{4, 2, 5, 12, 56}

	type snapshot struct {
		count int32
		mask  int16
		on    bool
		evens []int32
	}
	want := snapshot{target.Count, target.Mask, target.Enabled, target.Evens}

	encoded := make(map[string]string)
	for _, name := range []string{"STATIC_INT", "STATIC_SHORT", "STATIC_BOOL", "STATIC_INT_LIST"} {
		f := catalog[name]
		v, err := acc.Get(f)
		require.NoError(t, err)
		encoded[name], err = encodeValue(f, v)
		require.NoError(t, err)
	}

	*target = codecTarget{}
	for name, text := range encoded {
		require.NoError(t, decodeEntry(name+"="+text, catalog, acc))
	}

	assert.Equal(t, want, snapshot{target.Count, target.Mask, target.Enabled, target.Evens})
}

// TestFloatRoundTripIsLossy asserts the truncated value, not bit-exact
// equality: six fractional digits survive the trip.
func TestFloatRoundTripIsLossy(t *testing.T) {
	acc, catalog, target := newCodecFixture(t)

	target.Root = 1.4142135
	f := catalog["STATIC_DOUBLE"]
	v, err := acc.Get(f)
	require.NoError(t, err)
	text, err := encodeValue(f, v)
	require.NoError(t, err)
	assert.Equal(t, "1.414214", text)

	target.Root = 0
	require.NoError(t, decodeEntry("STATIC_DOUBLE="+text, catalog, acc))
	assert.Equal(t, 1.414214, target.Root)
	assert.NotEqual(t, 1.4142135, target.Root)
}
