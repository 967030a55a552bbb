package mock

import "github.com/mockstub/mockstub/pkg/capture"

// Matches reports whether req satisfies every one of the mock's predicates:
// method, path, every query-matcher, every header-matcher, and the body
// matcher must all accept.
func (r *Record) Matches(req capture.Request) bool {
	if !r.MatchesMethod(req.Method) {
		return false
	}
	if !r.PathMatcher.MatchValue(req.Path) {
		return false
	}
	for _, q := range r.QueryMatchers {
		if !q.Accepts(req.Query) {
			return false
		}
	}
	for _, h := range r.HeaderMatchers {
		if !h.Accepts(req.HeaderValues(h.Name)) {
			return false
		}
	}
	return r.BodyMatcher.MatchBody(req.Body)
}
