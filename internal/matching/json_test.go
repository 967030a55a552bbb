package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEqual(t *testing.T) {
	a, err := DecodeJSON([]byte(`{"a":1,"b":[1,2,3]}`))
	require.NoError(t, err)
	b, err := DecodeJSON([]byte(`{"b":[1,2,3],"a":1.0}`))
	require.NoError(t, err)

	assert.True(t, JSONEqual(a, b))
}

func TestJSONEqualMismatch(t *testing.T) {
	a, err := DecodeJSON([]byte(`{"a":1}`))
	require.NoError(t, err)
	b, err := DecodeJSON([]byte(`{"a":2}`))
	require.NoError(t, err)

	assert.False(t, JSONEqual(a, b))
}

func TestJSONSubset(t *testing.T) {
	sub, err := DecodeJSON([]byte(`{"a":1}`))
	require.NoError(t, err)
	full, err := DecodeJSON([]byte(`{"a":1,"b":2}`))
	require.NoError(t, err)

	assert.True(t, JSONSubset(sub, full))
}

func TestJSONSubsetRejectsMismatch(t *testing.T) {
	sub, err := DecodeJSON([]byte(`{"a":2}`))
	require.NoError(t, err)
	full, err := DecodeJSON([]byte(`{"a":1,"b":2}`))
	require.NoError(t, err)

	assert.False(t, JSONSubset(sub, full))
}

func TestJSONSubsetArraysElementwise(t *testing.T) {
	sub, err := DecodeJSON([]byte(`{"items":[1,2]}`))
	require.NoError(t, err)
	full, err := DecodeJSON([]byte(`{"items":[1,2,3]}`))
	require.NoError(t, err)

	assert.True(t, JSONSubset(sub, full))

	subMismatch, err := DecodeJSON([]byte(`{"items":[9,2]}`))
	require.NoError(t, err)
	assert.False(t, JSONSubset(subMismatch, full))
}

func TestNumbersEqualLargeIntegers(t *testing.T) {
	a, err := DecodeJSON([]byte(`9007199254740993`))
	require.NoError(t, err)
	b, err := DecodeJSON([]byte(`9007199254740993`))
	require.NoError(t, err)
	assert.True(t, JSONEqual(a, b))
}

// A Go literal built with float64/int leaves (as Json/PartialJson accept)
// must compare equal to a value decoded from bytes via DecodeJSON, even
// though the two sides hold different concrete numeric types.
func TestJSONEqualLiteralAgainstDecoded(t *testing.T) {
	literal := map[string]any{"a": float64(1), "b": []any{float64(1), float64(2)}}
	decoded, err := DecodeJSON([]byte(`{"b":[1,2],"a":1}`))
	require.NoError(t, err)

	assert.True(t, JSONEqual(literal, decoded))
	assert.True(t, JSONEqual(decoded, literal))
}

func TestJSONSubsetLiteralAgainstDecoded(t *testing.T) {
	literal := map[string]any{"a": 1}
	decoded, err := DecodeJSON([]byte(`{"a":1,"b":2}`))
	require.NoError(t, err)

	assert.True(t, JSONSubset(literal, decoded))

	mismatch := map[string]any{"a": 2}
	assert.False(t, JSONSubset(mismatch, decoded))
}
