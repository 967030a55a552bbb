// Package capture normalizes a parsed HTTP request into an immutable,
// matchable value: the shape the matcher algebra in pkg/mock and the
// registry in pkg/registry both operate on.
package capture

import (
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/mockstub/mockstub/internal/matching"
)

// Request is an immutable-by-convention snapshot of one HTTP request,
// captured once by the server worker before matching begins. None of the
// matcher algebra mutates it.
type Request struct {
	Method     string
	Path       string
	RawQuery   string
	Query      url.Values
	Header     http.Header // canonical MIME header form, preserves arrival order per name
	Body       []byte
	HTTPMajor  int
	HTTPMinor  int
}

// FromHTTP captures method, path, query, headers and body from a stdlib
// *http.Request. body must already be fully read (the worker reads it
// before releasing the connection to matching).
func FromHTTP(r *http.Request, body []byte) Request {
	return Request{
		Method:    strings.ToUpper(r.Method),
		Path:      r.URL.Path,
		RawQuery:  r.URL.RawQuery,
		Query:     r.URL.Query(),
		Header:    r.Header.Clone(),
		Body:      body,
		HTTPMajor: r.ProtoMajor,
		HTTPMinor: r.ProtoMinor,
	}
}

// HeaderValues returns every value of a header name, preserving arrival
// order, or nil if the header is absent. Lookups are ASCII-case-insensitive
// via http.CanonicalHeaderKey.
func (r Request) HeaderValues(name string) []string {
	return r.Header.Values(name)
}

// DecodedJSON decodes the body as JSON on demand, for callers that need a
// structural view rather than raw bytes.
func (r Request) DecodedJSON() (any, error) {
	return matching.DecodeJSON(r.Body)
}

// ContentType returns the media type of the Content-Type header, ignoring
// parameters such as charset or boundary.
func (r Request) ContentType() string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}
