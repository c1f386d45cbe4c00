package middleware

import (
	"net/http"
)

// Middleware — обёртка над http.Handler; из таких обёрток собирается
// HTTP-конвейер listings-service (request-id, логирование, recover,
// таймаут, аутентификация).
type Middleware func(http.Handler) http.Handler

// Chain оборачивает обработчик мидлварами: первый в списке становится
// внешним и отрабатывает раньше остальных.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// statusWriter перехватывает статус и объём ответа для access-лога.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	// Write без явного WriteHeader означает 200.
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(p)
	w.written += n
	return n, err
}
