// Package diagnostics renders assertion-failure diagnostics: a mock's
// description, its observed hits against the expected range, and a
// field-by-field diff against the last unmatched request.
package diagnostics
