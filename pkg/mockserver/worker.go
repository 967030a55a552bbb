package mockserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mockstub/mockstub/internal/mockerr"
	"github.com/mockstub/mockstub/pkg/capture"
	"github.com/mockstub/mockstub/pkg/response"
)

// worker is the per-connection request handler: net/http and
// golang.org/x/net/http2/h2c already own connection accept, HTTP/1.1
// keep-alive, and HTTP/2 stream multiplexing, so the worker's job is just
// capture, look up, respond.
type worker struct {
	server *Server
}

func (w *worker) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		// A client disconnecting mid-request or sending a malformed body;
		// no mock state changes.
		w.server.logger.Debug("reading request body", "method", r.Method, "path", r.URL.Path, "err", err)
		rw.WriteHeader(http.StatusBadRequest)
		return
	}

	req := capture.FromHTTP(r, body)

	rec, ok := w.server.registry.Find(req)
	if !ok {
		w.server.logger.Debug("no mock matched", "method", req.Method, "path", req.Path)
		writeNoMatch(rw, req)
		return
	}

	http2 := r.ProtoMajor == 2
	materialized, err := response.Materialize(rec.Response, req, http2)
	if err != nil {
		var cfgErr *mockerr.ConfigError
		if errors.As(err, &cfgErr) {
			// A mock was misconfigured (e.g. its WithBodyFromFile path is
			// unreadable or the response document is malformed). This is a
			// mistake in the mock's own declaration, not a runtime request
			// error, so it is logged at Warn and kept distinguishable from
			// an ordinary client-side failure.
			w.server.logger.Warn("mock response misconfigured", "mock", rec.ID, "err", cfgErr)
		} else {
			w.server.logger.Debug("materializing response", "mock", rec.ID, "err", err)
		}
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	header := rw.Header()
	for name, values := range materialized.Header {
		for _, v := range values {
			header.Add(name, v)
		}
	}
	rw.WriteHeader(materialized.Status)
	_, _ = rw.Write(materialized.Body)
}

// writeNoMatch responds 501 Not Implemented with a plain-text body naming
// the unmatched method and path.
func writeNoMatch(rw http.ResponseWriter, req capture.Request) {
	rw.Header().Set("Content-Type", "text/plain")
	rw.WriteHeader(http.StatusNotImplemented)
	fmt.Fprintf(rw, "no mock matched %s %s", req.Method, req.Path)
}
