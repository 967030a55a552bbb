package mock

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// State is a Mock's position in its lifecycle: Declaring while the builder
// is still being configured, Created once registered and eligible for
// matching, and Removed once withdrawn from the registry.
type State int32

// Mock states.
const (
	StateDeclaring State = iota
	StateCreated
	StateRemoved
)

// Record is a created mock: the shared cell referenced by both the
// registry and the user-facing handle, so a hit recorded by the server
// worker is immediately visible to a test asserting through the handle.
// Fields set at Build() time are immutable; Hits, CreationOrder and State
// are mutated by the registry and read across goroutines, so they use
// atomics.
type Record struct {
	ID string

	Method         string
	PathMatcher    Matcher
	QueryMatchers  []QueryMatch
	HeaderMatchers []HeaderMatch
	BodyMatcher    Matcher
	Response       ResponseSpec
	Name           string

	expectedLower uint64
	expectedUpper *uint64 // nil means unbounded
	expectedIsDefault bool

	hits          atomic.Uint64
	state         atomic.Int32
	creationOrder atomic.Uint64
}

// Hits returns the current, monotonically non-decreasing hit count.
func (r *Record) Hits() uint64 { return r.hits.Load() }

// IncrementHits atomically increments the hit counter and returns the new
// value. Called by pkg/registry.Find on a successful match.
func (r *Record) IncrementHits() uint64 { return r.hits.Add(1) }

// State reports the Mock's current lifecycle state.
func (r *Record) State() State { return State(r.state.Load()) }

// SetState transitions the Mock's lifecycle state. Called by pkg/registry
// on Register (Declaring → Created) and Remove/Clear (→ Removed).
func (r *Record) SetState(s State) { r.state.Store(int32(s)) }

// SetCreationOrder assigns the tiebreak sequence number. Called once by
// pkg/registry.Register.
func (r *Record) SetCreationOrder(n uint64) { r.creationOrder.Store(n) }

// CreationOrder returns the tiebreak sequence number assigned by the
// registry at register time.
func (r *Record) CreationOrder() uint64 { return r.creationOrder.Load() }

// Created reports whether the mock currently participates in matching. A
// mock that has not yet been built into the registry, or that has since
// been removed, is invisible to it.
func (r *Record) Created() bool { return r.State() == StateCreated }

// Matched reports whether the current hit count satisfies the expected
// range: hits >= lower and, if an upper bound was set, hits <= upper.
func (r *Record) Matched() bool {
	hits := r.Hits()
	if hits < r.expectedLower {
		return false
	}
	if r.expectedUpper != nil && hits > *r.expectedUpper {
		return false
	}
	return true
}

// ExpectedRange returns the configured (lower, upper) bounds. A nil upper
// means unbounded.
func (r *Record) ExpectedRange() (lower uint64, upper *uint64) {
	return r.expectedLower, r.expectedUpper
}

// ExpectedRangeIsDefault reports whether no Expect/ExpectAtLeast/
// ExpectAtMost call was made on the builder: the default range is
// [1, +Inf), "at least once".
func (r *Record) ExpectedRangeIsDefault() bool { return r.expectedIsDefault }

// MatchesMethod reports whether method equals the mock's method,
// case-insensitively.
func (r *Record) MatchesMethod(method string) bool {
	return strings.EqualFold(r.Method, method)
}

// Description renders a short summary of the mock's matchers, used by
// pkg/diagnostics when composing an assertion failure.
func (r *Record) Description() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", r.Method, r.PathMatcher.String())
	for _, h := range r.HeaderMatchers {
		fmt.Fprintf(&b, " header[%s]=%s", h.Name, h.Value.String())
	}
	for _, q := range r.QueryMatchers {
		if q.Name != "" {
			fmt.Fprintf(&b, " query[%s]=%s", q.Name, q.Value.String())
		} else {
			fmt.Fprintf(&b, " query=%s", q.Value.String())
		}
	}
	if r.BodyMatcher.kind != kindAny {
		fmt.Fprintf(&b, " body=%s", r.BodyMatcher.String())
	}
	if r.Name != "" {
		fmt.Fprintf(&b, " (%s)", r.Name)
	}
	return b.String()
}

// Builder accumulates matcher and response configuration before Build()
// freezes it into a Record. A Builder is a plain mutable value; it has no
// shared state and no side effects until Build() succeeds and the caller
// registers the resulting Record. A builder that is configured and then
// discarded without being built leaves nothing behind.
type Builder struct {
	method  string
	path    Matcher
	query   []QueryMatch
	headers []HeaderMatch
	body    Matcher
	name    string

	response ResponseSpec

	expectedLower     uint64
	expectedUpper     *uint64
	lowerExplicit     bool
	expectedIsDefault bool

	err error
}

// NewBuilder starts a builder for method against the given path matcher.
// Callers that only need an exact path pass Exact(path); NewBuilder itself
// takes a Matcher so regex or wildcard-style path matching composes the
// same way as any other field.
func NewBuilder(method string, path Matcher) *Builder {
	return &Builder{
		method:            strings.ToUpper(method),
		path:              path,
		body:              Any(),
		expectedLower:     1,
		expectedIsDefault: true,
	}
}

func (b *Builder) fail(field string, err error) {
	if b.err == nil {
		b.err = fmt.Errorf("%s: %w", field, err)
	}
}

// Err returns the first configuration error recorded by any builder call,
// or nil. Build() also returns it.
func (b *Builder) Err() error { return b.err }

// MatchHeader adds a header-set entry requiring every occurrence of name to
// satisfy v.
func (b *Builder) MatchHeader(name string, v Matcher) *Builder {
	b.headers = append(b.headers, HeaderMatch{Name: name, Value: v})
	return b
}

// MatchQuery adds a query-set entry scoped to name.
func (b *Builder) MatchQuery(name string, v Matcher) *Builder {
	b.query = append(b.query, QueryMatch{Name: name, Value: v})
	return b
}

// MatchQueryMatcher adds a whole-query matcher not scoped to one field name
// (for UrlEncoded and combinators over it).
func (b *Builder) MatchQueryMatcher(v Matcher) *Builder {
	b.query = append(b.query, QueryMatch{Value: v})
	return b
}

// MatchBody sets the body matcher, replacing the default Any().
func (b *Builder) MatchBody(v Matcher) *Builder {
	b.body = v
	return b
}

// WithStatus sets the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	b.ensureLiteral()
	b.response.Status = status
	return b
}

// WithHeader appends a response header value.
func (b *Builder) WithHeader(name, value string) *Builder {
	b.ensureLiteral()
	if b.response.Headers == nil {
		b.response.Headers = map[string][]string{}
	}
	b.response.Headers[name] = append(b.response.Headers[name], value)
	return b
}

// WithBody sets a literal response body.
func (b *Builder) WithBody(body []byte) *Builder {
	b.ensureLiteral()
	b.response.Body = body
	return b
}

// WithBodyString sets a literal response body from a string.
func (b *Builder) WithBodyString(s string) *Builder {
	return b.WithBody([]byte(s))
}

// WithBodyFromFile configures the response to be parsed from a response
// document on disk. The file is read lazily by pkg/response, so an
// unreadable path or malformed document surfaces as a *mockerr.ConfigError
// when the response is first materialized rather than here.
func (b *Builder) WithBodyFromFile(path string) *Builder {
	b.response = ResponseSpec{Kind: ResponseFromFile, FilePath: path, Status: b.response.Status, Headers: b.response.Headers}
	return b
}

// WithBodyFromRequest configures a dynamic response body computed from the
// request that triggered the match.
func (b *Builder) WithBodyFromRequest(fn BodyFunc) *Builder {
	b.response = ResponseSpec{Kind: ResponseDynamic, BodyFn: fn, Status: b.response.Status, Headers: b.response.Headers}
	return b
}

// WithName attaches a human-readable description used in diagnostics.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

func (b *Builder) ensureLiteral() {
	if b.response.Kind != ResponseLiteral && b.response.BodyFn == nil && b.response.FilePath == "" {
		b.response.Kind = ResponseLiteral
	}
}

// Expect sets an exact expected hit count: matched() is true iff hits == n.
func (b *Builder) Expect(n uint64) *Builder {
	b.expectedLower, b.expectedUpper = n, &n
	b.expectedIsDefault = false
	b.lowerExplicit = true
	return b
}

// ExpectAtLeast sets the lower bound; the upper bound is left as previously
// configured (unbounded by default).
func (b *Builder) ExpectAtLeast(n uint64) *Builder {
	b.expectedLower = n
	b.expectedIsDefault = false
	b.lowerExplicit = true
	return b
}

// ExpectAtMost sets the upper bound. If no lower bound has been explicitly
// configured yet, the implicit "at least once" default is relaxed to zero,
// so "at most N" alone does not also silently require at least one hit.
func (b *Builder) ExpectAtMost(n uint64) *Builder {
	b.expectedUpper = &n
	if !b.lowerExplicit {
		b.expectedLower = 0
	}
	b.expectedIsDefault = false
	return b
}

// Build validates the accumulated configuration (compiling every matcher)
// and returns the frozen Record ready for registration. It does not
// register the record itself; Build has no side effects beyond producing
// the Record or an error.
func (b *Builder) Build() (*Record, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.path.Compile(); err != nil {
		return nil, fmt.Errorf("path: %w", err)
	}
	if err := b.body.Compile(); err != nil {
		return nil, fmt.Errorf("body: %w", err)
	}
	for i := range b.headers {
		if err := b.headers[i].Compile(); err != nil {
			return nil, fmt.Errorf("header %q: %w", b.headers[i].Name, err)
		}
	}
	for i := range b.query {
		if err := b.query[i].Compile(); err != nil {
			return nil, fmt.Errorf("query %q: %w", b.query[i].Name, err)
		}
	}

	rec := &Record{
		ID:                uuid.NewString(),
		Method:            b.method,
		PathMatcher:       b.path,
		QueryMatchers:     b.query,
		HeaderMatchers:    b.headers,
		BodyMatcher:       b.body,
		Response:          b.response,
		Name:              b.name,
		expectedLower:     b.expectedLower,
		expectedUpper:     b.expectedUpper,
		expectedIsDefault: b.expectedIsDefault,
	}
	rec.state.Store(int32(StateDeclaring))
	return rec, nil
}
