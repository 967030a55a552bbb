// Package mockhttp is the top-level façade over mockstub: a per-test,
// ephemeral HTTP/1.1 + HTTP/2 server that intercepts requests, matches them
// against declared mocks, and records hits for assertion.
//
// Typical use:
//
//	srv := mockhttp.New()
//	defer srv.Close()
//	m, err := srv.Create(srv.Mock("GET", "/hello").WithStatus(201).WithBodyString("world"))
//	// issue an HTTP request to srv.URL()+"/hello"
//	assert.NoError(t, m.Assert())
package mockhttp

import (
	"context"

	"github.com/mockstub/mockstub/pkg/mock"
	"github.com/mockstub/mockstub/pkg/mockserver"
)

// Matcher re-exports pkg/mock.Matcher for callers that don't want a direct
// dependency on the lower-level package.
type Matcher = mock.Matcher

// Matcher constructors, re-exported from pkg/mock.
var (
	Exact              = mock.Exact
	Missing            = mock.Missing
	Any                = mock.Any
	Regexp             = mock.Regexp
	AllOf              = mock.AllOf
	AnyOf              = mock.AnyOf
	URLEncoded         = mock.URLEncoded
	Json               = mock.Json
	PartialJson        = mock.PartialJson
	JsonString         = mock.JsonString
	PartialJsonString  = mock.PartialJsonString
	Binary             = mock.Binary
)

// BodyFunc produces a response body from the request that triggered it.
type BodyFunc = mock.BodyFunc

// Builder is a mock under construction.
type Builder = mock.Builder

// Mock is a created mock's user-facing handle.
type Mock = mockserver.Mock

// Pool is the process-global server allocator.
type Pool = mockserver.Pool

// PoolOption configures a Pool.
type PoolOption = mockserver.PoolOption

var (
	WithPoolSize             = mockserver.WithPoolSize
	WithLogger               = mockserver.WithLogger
	WithColorize             = mockserver.WithColorize
	WithUnmatchedRingCapacity = mockserver.WithUnmatchedRingCapacity
)

// NewPool builds a private Pool, for callers that don't want to share the
// process-global one (e.g. to run isolated test suites in one process with
// different colorization or size settings).
func NewPool(opts ...PoolOption) *Pool { return mockserver.NewPool(opts...) }

// Server is the user-facing handle for one acquired mock server. It embeds
// *mockserver.Server, so every server-level method (URL, Mock, Create,
// Reset, Requests, SocketAddress) is available directly.
type Server struct {
	*mockserver.Server
	guard *mockserver.ServerGuard
}

// New acquires a Server from the process-global pool, blocking if the pool
// is saturated. Panics if the underlying listener cannot be created; use
// NewContext to handle that case explicitly.
func New() *Server {
	guard := mockserver.Global().MustAcquire()
	return &Server{Server: guard.Server(), guard: guard}
}

// NewContext acquires a Server from the process-global pool, suspending
// until one is available or ctx is cancelled.
func NewContext(ctx context.Context) (*Server, error) {
	guard, err := mockserver.Global().Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &Server{Server: guard.Server(), guard: guard}, nil
}

// NewFromPool acquires a Server from a specific Pool rather than the
// process-global one.
func NewFromPool(ctx context.Context, pool *Pool) (*Server, error) {
	guard, err := pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &Server{Server: guard.Server(), guard: guard}, nil
}

// Close resets the server and frees its slot in the pool. The listener
// stays open and the server is not handed out again: every New,
// NewContext or NewFromPool call starts a fresh server. Safe to call
// multiple times.
func (s *Server) Close() { s.guard.Close() }

// Drop closes the underlying listener instead of returning it to the pool.
// Safe to call multiple times.
func (s *Server) Drop() { s.guard.Drop() }
