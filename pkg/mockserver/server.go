package mockserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mockstub/mockstub/pkg/diagnostics"
	"github.com/mockstub/mockstub/pkg/mock"
	"github.com/mockstub/mockstub/pkg/registry"
)

// Server is a single ephemeral HTTP/1.1 + HTTP/2 (h2c) endpoint issued by a
// Pool. It owns one listener, one worker goroutine, one Registry, and the
// diagnostics renderer used by mocks created on it.
type Server struct {
	listener net.Listener
	http     *http.Server
	registry *registry.Registry
	renderer *diagnostics.Renderer
	logger   *slog.Logger

	mu     sync.Mutex
	closed bool
}

func newServer(cfg PoolConfig) (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listening on ephemeral port: %w", err)
	}

	s := &Server{
		listener: listener,
		registry: registry.New(cfg.UnmatchedRingCapacity),
		renderer: diagnostics.NewRenderer(cfg.Colorize),
		logger:   cfg.Logger,
	}

	h2s := &http2.Server{}
	s.http = &http.Server{
		Handler: h2c.NewHandler(&worker{server: s}, h2s),
	}

	go func() {
		if err := s.http.Serve(listener); err != nil && !s.isClosed() {
			s.logger.Debug("server worker stopped", "err", err)
		}
	}()

	return s, nil
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// URL returns "http://127.0.0.1:<port>".
func (s *Server) URL() string {
	return "http://" + s.HostWithPort()
}

// HostWithPort returns "127.0.0.1:<port>".
func (s *Server) HostWithPort() string {
	return s.listener.Addr().String()
}

// SocketAddress returns the ip and port the server listens on.
func (s *Server) SocketAddress() (string, int) {
	addr := s.listener.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port
}

// Mock starts declaring a mock on this server. path is wrapped in
// mock.Exact; use MockMatching for a non-exact path matcher.
func (s *Server) Mock(method, path string) *mock.Builder {
	return s.MockMatching(method, mock.Exact(path))
}

// MockMatching starts declaring a mock whose path is evaluated by an
// arbitrary Matcher (e.g. mock.Regexp).
func (s *Server) MockMatching(method string, path mock.Matcher) *mock.Builder {
	return mock.NewBuilder(method, path)
}

// Create builds b and registers the result, returning a handle backed by
// the shared Record.
func (s *Server) Create(b *mock.Builder) (*Mock, error) {
	rec, err := b.Build()
	if err != nil {
		return nil, err
	}
	s.registry.Register(rec)
	return &Mock{record: rec, server: s}, nil
}

// Reset clears the registry and unmatched ring without closing the
// listener: the server keeps serving on the same port, with no mocks. The
// pool does not hand a reset server out to another Acquire.
func (s *Server) Reset() {
	s.registry.Clear()
}

// Close terminates the worker and closes the listener.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Requests returns a snapshot of the unmatched-request ring, oldest first.
func (s *Server) Requests() []capturedSummary {
	reqs := s.registry.UnmatchedRing()
	out := make([]capturedSummary, len(reqs))
	for i, r := range reqs {
		out[i] = capturedSummary{Method: r.Method, Path: r.Path, RawQuery: r.RawQuery}
	}
	return out
}

// capturedSummary is a diagnostics-friendly view of an unmatched request.
type capturedSummary struct {
	Method   string
	Path     string
	RawQuery string
}
