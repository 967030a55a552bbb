package mock

import "github.com/mockstub/mockstub/pkg/capture"

// BodyFunc produces a response body computed from the request that
// triggered the match, for mocks whose body depends on what was sent.
type BodyFunc func(req capture.Request) []byte

// ResponseSpecKind discriminates the ResponseSpec variants.
type ResponseSpecKind int

// ResponseSpec variants.
const (
	ResponseLiteral ResponseSpecKind = iota
	ResponseFromFile
	ResponseDynamic
)

// ResponseSpec describes how to build a response body: a literal byte
// string, a file read from disk, or a function of the request. Status
// defaults to 0, which callers interpret as "200".
type ResponseSpec struct {
	Kind ResponseSpecKind

	Status  int
	Headers map[string][]string

	// Literal
	Body []byte

	// FromFile: path to a response document, parsed lazily by pkg/response
	// so an unreadable path surfaces as a *mockerr.ConfigError at the time
	// it's needed.
	FilePath string

	// Dynamic
	BodyFn BodyFunc
}
