package middleware

import "net/http"

// statusRecorder captures the status code written by downstream handlers so
// the logging and metrics middleware can report it. A handler that never
// calls WriteHeader leaves status at zero; consumers treat that as 200.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
