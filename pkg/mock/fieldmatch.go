package mock

import "net/url"

// HeaderMatch pairs a header name with the value-matcher every occurrence of
// that header must satisfy. Matching is ASCII-case-insensitive on Name:
// Name is stored as given and canonicalized at lookup time by
// pkg/capture.Request.HeaderValues.
type HeaderMatch struct {
	Name  string
	Value Matcher
}

// Accepts evaluates the header-set entry against every observed value of
// Name in the request's header multimap.
func (h HeaderMatch) Accepts(values []string) bool {
	return h.Value.MatchValues(values)
}

// QueryMatch pairs a query parameter name with its value-matcher. When Name
// is non-empty it behaves like HeaderMatch, evaluated against the parsed
// query values for that name. When Name is empty, Value must be a matcher
// that is meaningful against the whole query (UrlEncoded, or an AllOf/AnyOf
// composed of them) and is evaluated with MatchQuery instead.
type QueryMatch struct {
	Name  string
	Value Matcher
}

// Accepts evaluates the query-set entry against the request's parsed query.
func (q QueryMatch) Accepts(query url.Values) bool {
	if q.Name != "" {
		return q.Value.MatchValues(query[q.Name])
	}
	return q.Value.MatchQuery(query)
}

// Compile validates the wrapped matcher (see Matcher.Compile).
func (h *HeaderMatch) Compile() error { return h.Value.Compile() }

// Compile validates the wrapped matcher (see Matcher.Compile).
func (q *QueryMatch) Compile() error { return q.Value.Compile() }
