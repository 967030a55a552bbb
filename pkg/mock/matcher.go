package mock

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/mockstub/mockstub/internal/matching"
	"github.com/mockstub/mockstub/internal/mockerr"
)

// kind discriminates the Matcher variants.
type kind int

const (
	kindExact kind = iota
	kindMissing
	kindAny
	kindRegex
	kindAllOf
	kindAnyOf
	kindURLEncoded
	kindJSON
	kindPartialJSON
	kindJSONString
	kindPartialJSONString
	kindBinary
)

// Matcher is a tagged predicate over one field of a captured request. Zero
// value is not valid; construct with Exact, Missing, Any, Regexp, AllOf,
// AnyOf, URLEncoded, Json, PartialJson, JsonString, PartialJsonString, or
// Binary.
//
// Evaluation is side-effect-free: none of the Match* methods mutate the
// Matcher or the values passed to them.
type Matcher struct {
	kind kind

	text     string // Exact value, Regex source, JsonString/PartialJsonString source
	children []Matcher
	name     string // UrlEncoded field name
	value    string // UrlEncoded field value
	jsonVal  any    // decoded Json/PartialJson comparison value
	binary   []byte

	re *regexp.Regexp
}

// Exact matches a value byte-equal to s.
func Exact(s string) Matcher { return Matcher{kind: kindExact, text: s} }

// Missing matches the absence of any occurrence of a header or query field.
// It is only meaningful as a header-value or query-value matcher.
func Missing() Matcher { return Matcher{kind: kindMissing} }

// Any always matches.
func Any() Matcher { return Matcher{kind: kindAny} }

// Regexp matches when pattern is found anywhere in the value (unanchored
// unless the pattern itself supplies ^/$). The pattern is forwarded opaquely
// to regexp.Compile; a bad pattern surfaces as a *mockerr.ConfigError from
// Compile, not from this constructor.
func Regexp(pattern string) Matcher { return Matcher{kind: kindRegex, text: pattern} }

// AllOf matches when every child matcher matches, short-circuiting in
// declaration order.
func AllOf(children ...Matcher) Matcher { return Matcher{kind: kindAllOf, children: children} }

// AnyOf matches when at least one child matcher matches, short-circuiting in
// declaration order.
func AnyOf(children ...Matcher) Matcher { return Matcher{kind: kindAnyOf, children: children} }

// URLEncoded matches when the urlencoded content (query string or
// x-www-form-urlencoded body) it is evaluated against contains at least one
// name=value pair equal byte-for-byte to the given strings once decoded.
func URLEncoded(name, value string) Matcher {
	return Matcher{kind: kindURLEncoded, name: name, value: value}
}

// Json matches a body that parses as JSON and is equal to v under JSON
// value equality: object key order is irrelevant, numbers compare textually
// when both sides are integers and to double precision otherwise.
func Json(v any) Matcher { return Matcher{kind: kindJSON, jsonVal: v} }

// PartialJson matches a body whose decoded JSON contains v as a structural
// subset: every key/index present in v exists in the body with an equal
// value; extra keys or elements in the body are tolerated.
func PartialJson(v any) Matcher { return Matcher{kind: kindPartialJSON, jsonVal: v} }

// JsonString is Json given as serialized text, parsed at Compile time.
func JsonString(s string) Matcher { return Matcher{kind: kindJSONString, text: s} }

// PartialJsonString is PartialJson given as serialized text, parsed at
// Compile time.
func PartialJsonString(s string) Matcher { return Matcher{kind: kindPartialJSONString, text: s} }

// Binary matches a body byte-equal to b.
func Binary(b []byte) Matcher { return Matcher{kind: kindBinary, binary: b} }

// Compile validates configuration-time concerns: a Regex pattern must
// compile, and a JsonString/PartialJsonString source must parse. It is
// idempotent and recurses into AllOf/AnyOf children. Failures are returned
// as a *mockerr.ConfigError, matching every other configuration-time
// failure in the module (pkg/response.ParseFromFile).
func (m *Matcher) Compile() error {
	switch m.kind {
	case kindRegex:
		if m.re != nil {
			return nil
		}
		re, err := regexp.Compile(m.text)
		if err != nil {
			return mockerr.NewConfigError("regex", fmt.Errorf("compiling %q: %w", m.text, err))
		}
		m.re = re
	case kindJSONString, kindPartialJSONString:
		v, err := matching.DecodeJSON([]byte(m.text))
		if err != nil {
			return mockerr.NewConfigError("json_string", fmt.Errorf("parsing JSON matcher text: %w", err))
		}
		m.jsonVal = v
	case kindAllOf, kindAnyOf:
		for i := range m.children {
			if err := m.children[i].Compile(); err != nil {
				return err
			}
		}
	}
	return nil
}

// MatchValue evaluates the matcher against a single scalar value: a path, a
// method token, or one observed value of a header/query field.
func (m Matcher) MatchValue(v string) bool {
	switch m.kind {
	case kindExact:
		return m.text == v
	case kindMissing:
		return v == ""
	case kindAny:
		return true
	case kindRegex:
		if m.re == nil {
			return false
		}
		return m.re.MatchString(v)
	case kindAllOf:
		for _, c := range m.children {
			if !c.MatchValue(v) {
				return false
			}
		}
		return true
	case kindAnyOf:
		for _, c := range m.children {
			if c.MatchValue(v) {
				return true
			}
		}
		return false
	case kindURLEncoded:
		return matching.URLEncodedContains(v, m.name, m.value)
	default:
		return false
	}
}

// MatchValues evaluates a header-value or query-value matcher against every
// observed value of a named field (possibly zero, for an absent field).
// Missing, AnyOf, and AllOf are special-cased against the whole set at once:
// a repeated header must satisfy the pattern on every occurrence, and
// Missing/AnyOf/AllOf combinators built over Missing must see the emptiness
// of the set directly rather than per-value.
func (m Matcher) MatchValues(values []string) bool {
	switch m.kind {
	case kindMissing:
		return len(values) == 0
	case kindAnyOf:
		if len(values) == 0 {
			for _, c := range m.children {
				if c.MatchValues(nil) {
					return true
				}
			}
			return false
		}
	case kindAllOf:
		if len(values) == 0 {
			for _, c := range m.children {
				if !c.MatchValues(nil) {
					return false
				}
			}
			return true
		}
	}
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if !m.MatchValue(v) {
			return false
		}
	}
	return true
}

// MatchQuery evaluates a whole-query matcher (URLEncoded, or an AllOf/AnyOf
// composed of them) directly against the parsed query multimap. Used for
// query-matchers that are not scoped to one field name.
func (m Matcher) MatchQuery(q url.Values) bool {
	switch m.kind {
	case kindURLEncoded:
		return matching.ValuesContain(q, m.name, m.value)
	case kindAllOf:
		for _, c := range m.children {
			if !c.MatchQuery(q) {
				return false
			}
		}
		return true
	case kindAnyOf:
		for _, c := range m.children {
			if c.MatchQuery(q) {
				return true
			}
		}
		return false
	case kindAny:
		return true
	default:
		return false
	}
}

// MatchBody evaluates the mock's single body-matcher against the raw body.
func (m Matcher) MatchBody(body []byte) bool {
	switch m.kind {
	case kindJSON, kindJSONString:
		decoded, err := matching.DecodeJSON(body)
		if err != nil {
			return false
		}
		return matching.JSONEqual(m.jsonVal, decoded)
	case kindPartialJSON, kindPartialJSONString:
		decoded, err := matching.DecodeJSON(body)
		if err != nil {
			return false
		}
		return matching.JSONSubset(m.jsonVal, decoded)
	case kindBinary:
		return bytesEqual(m.binary, body)
	case kindURLEncoded:
		return matching.URLEncodedContains(string(body), m.name, m.value)
	case kindMissing:
		return len(body) == 0
	case kindAllOf:
		for _, c := range m.children {
			if !c.MatchBody(body) {
				return false
			}
		}
		return true
	case kindAnyOf:
		for _, c := range m.children {
			if c.MatchBody(body) {
				return true
			}
		}
		return false
	default:
		return m.MatchValue(string(body))
	}
}

// JSONValue returns the matcher's decoded comparison value and true if the
// matcher is Json/PartialJson/JsonString/PartialJsonString, so callers such
// as pkg/diagnostics can render a structural diff instead of a byte dump.
func (m Matcher) JSONValue() (any, bool) {
	switch m.kind {
	case kindJSON, kindPartialJSON, kindJSONString, kindPartialJSONString:
		return m.jsonVal, true
	default:
		return nil, false
	}
}

// String renders a short human-readable description, used by pkg/diagnostics
// when composing a mock description or a field diff.
func (m Matcher) String() string {
	switch m.kind {
	case kindExact:
		return fmt.Sprintf("Exact(%q)", m.text)
	case kindMissing:
		return "Missing"
	case kindAny:
		return "Any"
	case kindRegex:
		return fmt.Sprintf("Regex(%q)", m.text)
	case kindAllOf:
		return joinChildren("AllOf", m.children)
	case kindAnyOf:
		return joinChildren("AnyOf", m.children)
	case kindURLEncoded:
		return fmt.Sprintf("UrlEncoded(%q=%q)", m.name, m.value)
	case kindJSON:
		return fmt.Sprintf("Json(%v)", m.jsonVal)
	case kindPartialJSON:
		return fmt.Sprintf("PartialJson(%v)", m.jsonVal)
	case kindJSONString:
		return fmt.Sprintf("JsonString(%s)", m.text)
	case kindPartialJSONString:
		return fmt.Sprintf("PartialJsonString(%s)", m.text)
	case kindBinary:
		return fmt.Sprintf("Binary(%d bytes)", len(m.binary))
	default:
		return "Matcher(?)"
	}
}

func joinChildren(name string, children []Matcher) string {
	s := name + "("
	for i, c := range children {
		if i > 0 {
			s += ", "
		}
		s += c.String()
	}
	return s + ")"
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
