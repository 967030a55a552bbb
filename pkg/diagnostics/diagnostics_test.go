package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockstub/mockstub/pkg/capture"
	"github.com/mockstub/mockstub/pkg/mock"
)

func TestBuildDiffFlagsMismatchedFields(t *testing.T) {
	rec, err := mock.NewBuilder("POST", mock.Exact("/x")).
		MatchHeader("content-type", mock.Exact("application/json")).
		Build()
	require.NoError(t, err)

	req := capture.Request{
		Method: "POST",
		Path:   "/x",
		Header: map[string][]string{"Content-Type": {"text/plain"}},
	}

	diff := BuildDiff(rec, req)
	var header FieldResult
	for _, f := range diff.Fields {
		if f.Field == "header:content-type" {
			header = f
		}
	}
	assert.False(t, header.Matched)
}

func TestRenderAssertionFailurePlainText(t *testing.T) {
	rec, err := mock.NewBuilder("GET", mock.Exact("/hello")).Expect(2).Build()
	require.NoError(t, err)
	rec.IncrementHits()

	r := NewRenderer(false)
	out := r.RenderAssertionFailure(rec, nil)

	assert.Contains(t, out, "GET")
	assert.Contains(t, out, "exactly 2")
	assert.Contains(t, out, "got 1")
	assert.NotContains(t, out, "\x1b[") // no ANSI escapes when colorize is off
}

func TestRenderAssertionFailureIncludesDiff(t *testing.T) {
	rec, err := mock.NewBuilder("GET", mock.Exact("/hello")).Build()
	require.NoError(t, err)

	req := capture.Request{Method: "GET", Path: "/other"}
	diff := BuildDiff(rec, req)

	r := NewRenderer(false)
	out := r.RenderAssertionFailure(rec, &diff)
	assert.Contains(t, out, "mismatch")
	assert.Contains(t, out, "path")
}
