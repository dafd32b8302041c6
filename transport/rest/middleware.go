package rest

import (
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (that *statusWriter) WriteHeader(status int) {
	that.status = status
	that.ResponseWriter.WriteHeader(status)
}

// instrument records count and latency per route pattern, so ids never become label values.
func (that *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		writer := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(writer, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}

		that.recorder.RecordHTTPRequest(r.Method, path, writer.status, time.Since(started))
	})
}
