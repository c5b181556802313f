package main

import (
	"log"
	"net/http"

	"github.com/felixge/httpsnoop"
)

// LoggingHandler writes one line per request to the standard logger.
type LoggingHandler struct {
	Next http.Handler
}

func (l *LoggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	metrics := httpsnoop.CaptureMetrics(l.Next, w, r)

	log.Printf("%s %q %d %d", RemoteHost(r), r.Method+" "+r.RequestURI+" "+r.Proto,
		metrics.Code, metrics.Written)
}
