package diagnostics

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/mockstub/mockstub/internal/matching"
	"github.com/mockstub/mockstub/pkg/capture"
	"github.com/mockstub/mockstub/pkg/mock"
)

// FieldResult is one line of a field-by-field diff between a mock's
// matchers and an observed request.
type FieldResult struct {
	Field    string
	Expected string
	Actual   string
	Matched  bool
}

// Diff is the ordered set of field comparisons rendered on assertion
// failure.
type Diff struct {
	Fields []FieldResult
}

// BuildDiff compares rec's matchers against req, field by field. It is used
// against the last unmatched request recorded by the registry, so most
// fields are expected to disagree; every field is still reported so a
// reader can see which ones actually diverged.
func BuildDiff(rec *mock.Record, req capture.Request) Diff {
	d := Diff{}

	d.Fields = append(d.Fields, FieldResult{
		Field:    "method",
		Expected: rec.Method,
		Actual:   req.Method,
		Matched:  rec.MatchesMethod(req.Method),
	})

	d.Fields = append(d.Fields, FieldResult{
		Field:    "path",
		Expected: rec.PathMatcher.String(),
		Actual:   req.Path,
		Matched:  rec.PathMatcher.MatchValue(req.Path),
	})

	for _, h := range rec.HeaderMatchers {
		values := req.HeaderValues(h.Name)
		d.Fields = append(d.Fields, FieldResult{
			Field:    "header:" + h.Name,
			Expected: h.Value.String(),
			Actual:   fmt.Sprintf("%v", values),
			Matched:  h.Accepts(values),
		})
	}

	for _, q := range rec.QueryMatchers {
		d.Fields = append(d.Fields, FieldResult{
			Field:    "query:" + q.Name,
			Expected: q.Value.String(),
			Actual:   req.RawQuery,
			Matched:  q.Accepts(req.Query),
		})
	}

	d.Fields = append(d.Fields, FieldResult{
		Field:    "body",
		Expected: rec.BodyMatcher.String(),
		Actual:   bodyDiffText(rec.BodyMatcher, req.Body),
		Matched:  rec.BodyMatcher.MatchBody(req.Body),
	})

	return d
}

// bodyDiffText renders the actual-body side of the body FieldResult. For a
// Json/PartialJson matcher it decodes the request body and renders a
// structural diff against the matcher's comparison value with go-cmp,
// which is far more legible than a raw byte dump for anything but a small
// body; every other matcher kind falls back to a truncated byte dump.
func bodyDiffText(m mock.Matcher, body []byte) string {
	want, isJSON := m.JSONValue()
	if !isJSON {
		return truncate(body, 256)
	}
	got, err := matching.DecodeJSON(body)
	if err != nil {
		return fmt.Sprintf("<invalid JSON: %v> %s", err, truncate(body, 256))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		return diff
	}
	return truncate(body, 256)
}

func truncate(body []byte, max int) string {
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}
