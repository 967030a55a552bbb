package mock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactMatchValue(t *testing.T) {
	m := Exact("/hello")
	assert.True(t, m.MatchValue("/hello"))
	assert.False(t, m.MatchValue("/hello/"))
}

func TestAnyAlwaysMatches(t *testing.T) {
	assert.True(t, Any().MatchValue(""))
	assert.True(t, Any().MatchValue("anything"))
}

func TestRegexUnanchored(t *testing.T) {
	m := Regexp(`\d+`)
	require.NoError(t, m.Compile())
	assert.True(t, m.MatchValue("id-42-x"))
	assert.False(t, m.MatchValue("id-x"))
}

func TestAllOfRequiresEveryChild(t *testing.T) {
	m := AllOf(Exact("a"), Exact("b"))
	assert.False(t, m.MatchValue("a"))
	assert.False(t, m.MatchValue("b"))
}

func TestAnyOfMatchesAny(t *testing.T) {
	m := AnyOf(Exact("a"), Exact("b"))
	assert.True(t, m.MatchValue("a"))
	assert.True(t, m.MatchValue("b"))
	assert.False(t, m.MatchValue("c"))
}

func TestMissingAppliesToValueSets(t *testing.T) {
	m := Missing()
	assert.True(t, m.MatchValues(nil))
	assert.False(t, m.MatchValues([]string{"present"}))
}

func TestMatchValuesRequiresAllOccurrencesToMatch(t *testing.T) {
	m := Exact("application/json")
	assert.True(t, m.MatchValues([]string{"application/json"}))
	assert.False(t, m.MatchValues([]string{"application/json", "text/plain"}))
	assert.False(t, m.MatchValues(nil))
}

func TestAnyOfOverMissingSeesWholeSet(t *testing.T) {
	// AnyOf(Missing, Exact("x")) on an absent header must see the empty set
	// directly, not evaluate Missing against a per-value string.
	m := AnyOf(Missing(), Exact("x"))
	assert.True(t, m.MatchValues(nil))
	assert.True(t, m.MatchValues([]string{"x"}))
	assert.False(t, m.MatchValues([]string{"y"}))
}

func TestAllOfOverMissingSeesWholeSet(t *testing.T) {
	m := AllOf(Missing())
	assert.True(t, m.MatchValues(nil))
	assert.False(t, m.MatchValues([]string{"anything"}))
}

func TestURLEncodedMatchesDecodedPair(t *testing.T) {
	m := URLEncoded("name", "hello world")
	assert.True(t, m.MatchValue("name=hello%20world"))
	assert.False(t, m.MatchValue("name=other"))
}

func TestJsonEquality(t *testing.T) {
	m := Json(map[string]any{"a": float64(1), "b": []any{float64(1), float64(2)}})
	assert.True(t, m.MatchBody([]byte(`{"b":[1,2],"a":1}`)))
	assert.False(t, m.MatchBody([]byte(`{"a":1}`)))
}

func TestPartialJsonSubset(t *testing.T) {
	m := PartialJson(map[string]any{"a": float64(1)})
	assert.True(t, m.MatchBody([]byte(`{"a":1,"b":2}`)))
	assert.False(t, m.MatchBody([]byte(`{"a":2}`)))
}

func TestJsonStringCompilesLazily(t *testing.T) {
	m := JsonString(`{"a":1}`)
	require.NoError(t, m.Compile())
	assert.True(t, m.MatchBody([]byte(`{"a":1}`)))
}

func TestBinaryMatchesByteEquality(t *testing.T) {
	m := Binary([]byte{1, 2, 3})
	assert.True(t, m.MatchBody([]byte{1, 2, 3}))
	assert.False(t, m.MatchBody([]byte{1, 2, 4}))
}

func TestBadRegexFailsAtCompile(t *testing.T) {
	m := Regexp("(unterminated")
	err := m.Compile()
	assert.Error(t, err)
}
