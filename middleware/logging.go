package middleware

import (
	"log"
	"net/http"
	"time"

	"sahne-client/constants"
)

// responseWriter wrapper pour capturer le code de statut
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Logging enregistre chaque requête HTTP avec son statut et sa durée
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		requestID := r.Header.Get(constants.HeaderRequestID)

		switch {
		case rw.statusCode >= http.StatusInternalServerError:
			log.Printf("❌ %s %s -> %d (%s) [%s]", r.Method, r.RequestURI, rw.statusCode, duration, requestID)
		case rw.statusCode >= http.StatusBadRequest:
			log.Printf("⚠️ %s %s -> %d (%s) [%s]", r.Method, r.RequestURI, rw.statusCode, duration, requestID)
		default:
			log.Printf("%s %s -> %d (%s) [%s]", r.Method, r.RequestURI, rw.statusCode, duration, requestID)
		}
	})
}
