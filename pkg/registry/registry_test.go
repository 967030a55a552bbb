package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockstub/mockstub/pkg/capture"
	"github.com/mockstub/mockstub/pkg/mock"
)

func build(t *testing.T, method, path string) *mock.Record {
	t.Helper()
	rec, err := mock.NewBuilder(method, mock.Exact(path)).Build()
	require.NoError(t, err)
	return rec
}

func TestFindPrefersLowestHitsThenEarliestCreation(t *testing.T) {
	r := New(1)
	first := build(t, "GET", "/p")
	second := build(t, "GET", "/p")
	r.Register(first)
	r.Register(second)

	req := capture.Request{Method: "GET", Path: "/p"}

	counts := map[string]int{}
	for i := 0; i < 5; i++ {
		rec, ok := r.Find(req)
		require.True(t, ok)
		counts[rec.ID]++
	}

	assert.Equal(t, 3, counts[first.ID])
	assert.Equal(t, 2, counts[second.ID])
}

func TestFindRecordsUnmatchedOnMiss(t *testing.T) {
	r := New(1)
	req := capture.Request{Method: "GET", Path: "/missing"}

	_, ok := r.Find(req)
	assert.False(t, ok)

	last, ok := r.LastUnmatched()
	require.True(t, ok)
	assert.Equal(t, "/missing", last.Path)
}

func TestUnmatchedRingDropsOldest(t *testing.T) {
	r := New(2)
	r.Find(capture.Request{Method: "GET", Path: "/1"})
	r.Find(capture.Request{Method: "GET", Path: "/2"})
	r.Find(capture.Request{Method: "GET", Path: "/3"})

	ring := r.UnmatchedRing()
	require.Len(t, ring, 2)
	assert.Equal(t, "/2", ring[0].Path)
	assert.Equal(t, "/3", ring[1].Path)
}

func TestRemoveExcludesFromMatching(t *testing.T) {
	r := New(1)
	rec := build(t, "GET", "/p")
	r.Register(rec)
	r.Remove(rec.ID)

	_, ok := r.Find(capture.Request{Method: "GET", Path: "/p"})
	assert.False(t, ok)
	assert.Equal(t, mock.StateRemoved, rec.State())
}

func TestClearResetsRegistryAndUnmatchedRing(t *testing.T) {
	r := New(1)
	rec := build(t, "GET", "/p")
	r.Register(rec)
	r.Find(capture.Request{Method: "GET", Path: "/miss"})

	r.Clear()

	_, ok := r.Find(capture.Request{Method: "GET", Path: "/p"})
	assert.False(t, ok)
	_, ok = r.LastUnmatched()
	assert.True(t, ok) // the miss issued just above after Clear()
}

func TestIterCreatedSnapshotsRegistrationOrder(t *testing.T) {
	r := New(1)
	a := build(t, "GET", "/a")
	b := build(t, "GET", "/b")
	r.Register(a)
	r.Register(b)

	created := r.IterCreated()
	require.Len(t, created, 2)
	assert.Equal(t, a.ID, created[0].ID)
	assert.Equal(t, b.ID, created[1].ID)
}
