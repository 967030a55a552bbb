// Package matching implements the low-level comparison algorithms used by
// the mock matcher algebra in pkg/mock: JSON equality and structural
// subset comparison, and URL-encoded (form/query) key-value membership.
//
// Everything here is pure and side-effect free: matcher evaluation must not
// mutate the request or the values it inspects.
package matching
