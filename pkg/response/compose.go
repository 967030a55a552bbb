package response

import (
	"net/http"
	"strconv"

	"github.com/mockstub/mockstub/pkg/capture"
	"github.com/mockstub/mockstub/pkg/mock"
)

// Materialized is the fully-composed response ready to be written by the
// server worker.
type Materialized struct {
	Status int
	Header http.Header
	Body   []byte
}

// Materialize builds a Materialized response from spec for the request that
// triggered the match, filling in status/header defaults. http2 indicates
// whether the connection is being served over HTTP/2, which suppresses the
// default "Connection: close" header.
func Materialize(spec mock.ResponseSpec, req capture.Request, http2 bool) (*Materialized, error) {
	m := &Materialized{Header: make(http.Header)}

	switch spec.Kind {
	case mock.ResponseFromFile:
		status, header, body, err := ParseFromFile(spec.FilePath)
		if err != nil {
			return nil, err
		}
		m.Status = status
		m.Header = header
		m.Body = body
	case mock.ResponseDynamic:
		m.Status = spec.Status
		copyHeaders(m.Header, spec.Headers)
		if spec.BodyFn != nil {
			m.Body = spec.BodyFn(req)
		}
	default: // mock.ResponseLiteral and the zero value
		m.Status = spec.Status
		copyHeaders(m.Header, spec.Headers)
		m.Body = spec.Body
	}

	if m.Status == 0 {
		m.Status = http.StatusOK
	}

	if m.Header.Get("Content-Length") == "" && m.Header.Get("Transfer-Encoding") == "" {
		m.Header.Set("Content-Length", strconv.Itoa(len(m.Body)))
	}
	if !http2 && m.Header.Get("Connection") == "" {
		m.Header.Set("Connection", "close")
	}
	if len(m.Body) > 0 && m.Header.Get("Content-Type") == "" {
		m.Header.Set("Content-Type", "text/plain")
	}

	return m, nil
}

func copyHeaders(dst http.Header, src map[string][]string) {
	for name, values := range src {
		for _, v := range values {
			dst.Add(name, v)
		}
	}
}
