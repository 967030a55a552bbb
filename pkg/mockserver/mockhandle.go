package mockserver

import (
	"fmt"

	"github.com/mockstub/mockstub/pkg/diagnostics"
	"github.com/mockstub/mockstub/pkg/mock"
)

// Mock is the user-facing handle returned by Server.Create. It shares the
// underlying *mock.Record with the registry, so hit increments performed
// by the worker are visible through it without any additional
// synchronization.
type Mock struct {
	record *mock.Record
	server *Server
}

// ID returns the mock's immutable id.
func (m *Mock) ID() string { return m.record.ID }

// Hits returns the current hit count.
func (m *Mock) Hits() uint64 { return m.record.Hits() }

// Matched reports whether the current hit count satisfies the expected
// range.
func (m *Mock) Matched() bool { return m.record.Matched() }

// Assert returns nil if Matched(), or a formatted diagnostic error
// otherwise naming the mock, its observed hits vs. expected range, and a
// diff against the last unmatched request on this server. The Go idiom is
// an error return rather than a panic; mockhttptest.Harness.AssertAll
// reports each failure with t.Errorf.
func (m *Mock) Assert() error {
	if m.record.Matched() {
		return nil
	}

	last, ok := m.server.registry.LastUnmatched()
	var diff *diagnostics.Diff
	if ok {
		d := diagnostics.BuildDiff(m.record, last)
		diff = &d
	}
	return fmt.Errorf("%s", m.server.renderer.RenderAssertionFailure(m.record, diff))
}

// Remove expunges the mock from its server's registry.
func (m *Mock) Remove() {
	m.server.registry.Remove(m.record.ID)
}
