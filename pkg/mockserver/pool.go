// Package mockserver ties the matcher algebra (pkg/mock), the registry
// (pkg/registry) and response composition (pkg/response) into the live
// pieces: the per-server worker, the process-global pool, and the
// user-facing Server/Mock/ServerGuard handles.
package mockserver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mockstub/mockstub/internal/mocklog"
)

// DefaultMaxServers is the pool's default cap on concurrently live servers.
const DefaultMaxServers = 100

// DefaultUnmatchedRingCapacity is the default size of each server's
// unmatched-request ring.
const DefaultUnmatchedRingCapacity = 1

// PoolConfig configures a Pool.
type PoolConfig struct {
	// MaxServers bounds the number of concurrently live servers. Acquire
	// blocks once the bound is reached, until a server is released.
	MaxServers int

	// UnmatchedRingCapacity is the per-server unmatched-request ring size.
	UnmatchedRingCapacity int

	// Colorize enables ANSI colorization in assertion diagnostics.
	Colorize bool

	Logger *slog.Logger
}

// DefaultPoolConfig returns the pool defaults described above.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxServers:            DefaultMaxServers,
		UnmatchedRingCapacity: DefaultUnmatchedRingCapacity,
		Logger:                mocklog.Nop(),
	}
}

// PoolOption configures a Pool at construction via the functional-options
// pattern.
type PoolOption func(*PoolConfig)

// WithPoolSize overrides MaxServers.
func WithPoolSize(n int) PoolOption {
	return func(c *PoolConfig) { c.MaxServers = n }
}

// WithLogger overrides the pool's logger.
func WithLogger(l *slog.Logger) PoolOption {
	return func(c *PoolConfig) { c.Logger = l }
}

// WithColorize overrides the diagnostics colorization knob.
func WithColorize(enabled bool) PoolOption {
	return func(c *PoolConfig) { c.Colorize = enabled }
}

// WithUnmatchedRingCapacity overrides the per-server unmatched ring size.
func WithUnmatchedRingCapacity(n int) PoolOption {
	return func(c *PoolConfig) { c.UnmatchedRingCapacity = n }
}

// Pool is a process-global allocator of Server handles, bounded to a
// configurable number of concurrently live servers; a request for a new
// server blocks once that bound is reached, until one is released.
// Acquisition is safe from multiple goroutines.
type Pool struct {
	cfg PoolConfig

	mu      sync.Mutex
	live    int
	waiters []chan struct{}
}

// NewPool builds a Pool with the given options layered over
// DefaultPoolConfig.
func NewPool(opts ...PoolOption) *Pool {
	cfg := DefaultPoolConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = mocklog.Nop()
	}
	return &Pool{cfg: cfg}
}

var (
	globalPool     *Pool
	globalPoolOnce sync.Once
)

// Global returns the process-wide Pool, initialized lazily on first use.
func Global() *Pool {
	globalPoolOnce.Do(func() {
		globalPool = NewPool()
	})
	return globalPool
}

// Acquire returns a ready Server on an ephemeral localhost port. If the
// pool is at capacity it blocks until a server is released or ctx is
// cancelled, in which case ctx.Err() is returned.
func (p *Pool) Acquire(ctx context.Context) (*ServerGuard, error) {
	if err := p.reserveSlot(ctx); err != nil {
		return nil, err
	}

	srv, err := newServer(p.cfg)
	if err != nil {
		p.releaseSlot()
		return nil, fmt.Errorf("acquiring server: %w", err)
	}
	return &ServerGuard{pool: p, server: srv}, nil
}

// MustAcquire acquires from the pool with context.Background, panicking on
// failure. Intended for the blocking convenience API (mockhttp.New) where a
// pool-exhaustion deadlock or listener failure is a programming error, not
// a recoverable condition.
func (p *Pool) MustAcquire() *ServerGuard {
	guard, err := p.Acquire(context.Background())
	if err != nil {
		panic(err)
	}
	return guard
}

func (p *Pool) reserveSlot(ctx context.Context) error {
	for {
		p.mu.Lock()
		if p.live < p.cfg.MaxServers {
			p.live++
			p.mu.Unlock()
			return nil
		}
		wait := make(chan struct{})
		p.waiters = append(p.waiters, wait)
		p.mu.Unlock()

		select {
		case <-wait:
			// slot freed; loop and try to claim it
		case <-ctx.Done():
			p.mu.Lock()
			var next chan struct{}
			for i, w := range p.waiters {
				if w == wait {
					p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
					wait = nil
					break
				}
			}
			if wait != nil && len(p.waiters) > 0 {
				// releaseSlot already dequeued this waiter: hand its wake-up on.
				next, p.waiters = p.waiters[0], p.waiters[1:]
			}
			p.mu.Unlock()
			if next != nil {
				close(next)
			}
			return ctx.Err()
		}
	}
}

func (p *Pool) releaseSlot() {
	p.mu.Lock()
	p.live--
	var wake chan struct{}
	if len(p.waiters) > 0 {
		wake = p.waiters[0]
		p.waiters = p.waiters[1:]
	}
	p.mu.Unlock()
	if wake != nil {
		close(wake)
	}
}
