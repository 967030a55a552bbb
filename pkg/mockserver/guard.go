package mockserver

import "sync"

// ServerGuard is the RAII-style handle returned by Pool.Acquire: it wraps
// the acquired *Server and returns its slot to the pool exactly once, on
// Close. Go has no destructors, so callers are expected to
// `defer guard.Close()`.
type ServerGuard struct {
	pool   *Pool
	server *Server

	once sync.Once
}

// Server returns the underlying Server handle.
func (g *ServerGuard) Server() *Server { return g.server }

// Close resets the server (registry and unmatched ring cleared, listener
// retained) and returns its slot to the pool. Idempotent.
func (g *ServerGuard) Close() {
	g.once.Do(func() {
		g.server.Reset()
		g.pool.releaseSlot()
	})
}

// Drop closes the underlying listener instead of returning the server to
// the pool for reuse. The pool slot is still freed.
func (g *ServerGuard) Drop() {
	g.once.Do(func() {
		_ = g.server.Close()
		g.pool.releaseSlot()
	})
}
