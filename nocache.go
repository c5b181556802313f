package main

import (
	"io"
	"net/http"

	"github.com/felixge/httpsnoop"
)

// NoCacheHeaders are added to every response so that neither the browser nor
// any intermediary stores or reuses it.
var NoCacheHeaders = map[string]string{
	"Cache-Control": "no-cache, no-store, must-revalidate",
	"Pragma":        "no-cache",
	"Expires":       "0",
}

// noCacheHeaderOrder fixes the order used when headers are written raw.
var noCacheHeaderOrder = []string{"Cache-Control", "Pragma", "Expires"}

// NoCacheHandler decorates Next so that the no-cache headers are set at the
// moment the response header is emitted, after Next has made all of its own
// header changes. Handlers that strip Cache-Control while rendering an error
// page therefore cannot remove them.
type NoCacheHandler struct {
	Next http.Handler
}

func (n *NoCacheHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wroteHeader := false
	emit := func() {
		if !wroteHeader {
			wroteHeader = true
			setNoCacheHeaders(w.Header())
		}
	}

	hooked := httpsnoop.Wrap(w, httpsnoop.Hooks{
		WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
			return func(code int) {
				// Informational responses precede the final header.
				if code < 100 || code > 199 || code == http.StatusSwitchingProtocols {
					emit()
				}
				next(code)
			}
		},
		Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
			return func(b []byte) (int, error) {
				emit()
				return next(b)
			}
		},
		ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
			return func(src io.Reader) (int64, error) {
				emit()
				return next(src)
			}
		},
		Flush: func(next httpsnoop.FlushFunc) httpsnoop.FlushFunc {
			return func() {
				emit()
				next()
			}
		},
	})
	n.Next.ServeHTTP(hooked, r)

	// A handler that never writes still produces an implicit 200.
	if !wroteHeader {
		emit()
		w.WriteHeader(http.StatusOK)
	}
}

func setNoCacheHeaders(header http.Header) {
	for key, value := range NoCacheHeaders {
		header.Set(key, value)
	}
}

// noCacheHeaderLines renders the headers in wire format.
func noCacheHeaderLines() string {
	lines := ""
	for _, key := range noCacheHeaderOrder {
		lines += key + ": " + NoCacheHeaders[key] + "\r\n"
	}
	return lines
}
