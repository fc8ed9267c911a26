// Package responsewriter records what a handler wrote so middleware can log and measure it.
package responsewriter

import "net/http"

// ResponseWriter records the status and body size written through it.
type ResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

// Wrap returns w wrapped for recording. Wrapping an already wrapped writer returns it unchanged.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w}
}

// WriteHeader forwards the first status only.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.status != 0 {
		return
	}
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// StatusCode is the status sent, 200 if the handler wrote nothing.
func (w *ResponseWriter) StatusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Written reports whether a status line has gone out.
func (w *ResponseWriter) Written() bool {
	return w.status != 0
}

func (w *ResponseWriter) BytesWritten() int {
	return w.bytes
}

// Unwrap exposes the inner writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
