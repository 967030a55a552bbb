// Package mockhttptest provides one-line test setup for mockhttp: a harness
// that owns a Server for the lifetime of a test and tears it down
// automatically.
package mockhttptest

import (
	"testing"

	"github.com/mockstub/mockstub/mockhttp"
)

// Harness owns a mockhttp.Server acquired for one test, released via
// t.Cleanup.
type Harness struct {
	t   testing.TB
	srv *mockhttp.Server
}

// New acquires a Server from the process-global pool and registers a
// t.Cleanup to close it.
func New(t testing.TB) *Harness {
	t.Helper()
	srv := mockhttp.New()
	t.Cleanup(srv.Close)
	return &Harness{t: t, srv: srv}
}

// Server returns the underlying server handle.
func (h *Harness) Server() *mockhttp.Server { return h.srv }

// URL returns the server's base URL.
func (h *Harness) URL() string { return h.srv.URL() }

// Mock starts declaring a mock for method and path.
func (h *Harness) Mock(method, path string) *mockhttp.Builder {
	return h.srv.Mock(method, path)
}

// Create builds b and registers it, failing the test immediately on a
// configuration error instead of returning it, since a builder error in a
// test is a mistake in the test itself.
func (h *Harness) Create(b *mockhttp.Builder) *mockhttp.Mock {
	h.t.Helper()
	m, err := h.srv.Create(b)
	if err != nil {
		h.t.Fatalf("mockhttptest: creating mock: %v", err)
	}
	return m
}

// AssertAll calls Assert on every mock and fails the test with every
// unsatisfied mock's diagnostic, rather than stopping at the first one.
func (h *Harness) AssertAll(mocks ...*mockhttp.Mock) {
	h.t.Helper()
	for _, m := range mocks {
		if err := m.Assert(); err != nil {
			h.t.Errorf("%v", err)
		}
	}
}
