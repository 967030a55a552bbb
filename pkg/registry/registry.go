// Package registry implements the per-server ordered list of Mock records
// and the algorithm that selects which mock answers an incoming request.
package registry

import (
	"sync"

	"github.com/mockstub/mockstub/pkg/capture"
	"github.com/mockstub/mockstub/pkg/mock"
)

// Registry is a per-server ordered list of created mocks, guarded by a
// single mutex so registration, removal, and matching never interleave.
type Registry struct {
	mu      sync.Mutex
	records []*mock.Record
	seq     uint64

	unmatchedCap int
	unmatched    []capture.Request

	lastMatchedID string
}

// New builds a Registry whose unmatched ring holds at most unmatchedCap
// requests. A capacity below 1 is raised to 1.
func New(unmatchedCap int) *Registry {
	if unmatchedCap < 1 {
		unmatchedCap = 1
	}
	return &Registry{unmatchedCap: unmatchedCap}
}

// Register assigns a creation-order sequence number, marks rec created, and
// appends it to the ordered list.
func (r *Registry) Register(rec *mock.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rec.SetCreationOrder(r.seq)
	rec.SetState(mock.StateCreated)
	r.records = append(r.records, rec)
}

// Remove expunges the mock with the given id from the registry, if present.
// The Record itself (and its hit count) remains valid for callers still
// holding a handle; it simply stops participating in matching.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == id {
			rec.SetState(mock.StateRemoved)
			r.records = append(r.records[:i], r.records[i+1:]...)
			return
		}
	}
}

// Clear empties the registry and the unmatched ring, as when a server is
// released back to its pool and reset for reuse.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		rec.SetState(mock.StateRemoved)
	}
	r.records = nil
	r.unmatched = nil
	r.lastMatchedID = ""
}

// Find selects, among every created mock whose predicates accept req, the
// one with the lowest hit count, breaking ties by earliest creation-order.
// On no match, req is appended to the unmatched ring and (nil, false) is
// returned.
func (r *Registry) Find(req capture.Request) (*mock.Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var best *mock.Record
	for _, rec := range r.records {
		if !rec.Matches(req) {
			continue
		}
		if best == nil {
			best = rec
			continue
		}
		if rec.Hits() < best.Hits() ||
			(rec.Hits() == best.Hits() && rec.CreationOrder() < best.CreationOrder()) {
			best = rec
		}
	}

	if best == nil {
		r.recordUnmatchedLocked(req)
		return nil, false
	}

	best.IncrementHits()
	r.lastMatchedID = best.ID
	return best, true
}

func (r *Registry) recordUnmatchedLocked(req capture.Request) {
	r.unmatched = append(r.unmatched, req)
	if len(r.unmatched) > r.unmatchedCap {
		r.unmatched = r.unmatched[len(r.unmatched)-r.unmatchedCap:]
	}
}

// LastUnmatched returns the most recently recorded unmatched request, used
// by pkg/diagnostics when composing an assertion-failure diff.
func (r *Registry) LastUnmatched() (capture.Request, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.unmatched) == 0 {
		return capture.Request{}, false
	}
	return r.unmatched[len(r.unmatched)-1], true
}

// UnmatchedRing returns a snapshot of the unmatched ring, oldest first.
func (r *Registry) UnmatchedRing() []capture.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]capture.Request, len(r.unmatched))
	copy(out, r.unmatched)
	return out
}

// LastMatchedID returns the id of the most recently matched mock, or "" if
// none has matched yet.
func (r *Registry) LastMatchedID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastMatchedID
}

// IterCreated returns a snapshot of every created mock, in registration
// order, for assertion reporting.
func (r *Registry) IterCreated() []*mock.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*mock.Record, len(r.records))
	copy(out, r.records)
	return out
}
