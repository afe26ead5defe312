package server

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/hnrobert/signalist/internal/logger"
)

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// requestLogger writes one access line per request through the app logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		line := "%s %s %d %dB %s from %s [%s]"
		args := []interface{}{r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start).Round(time.Microsecond), remoteIP(r), middleware.GetReqID(r.Context())}
		switch {
		case status >= 500:
			logger.Error(line, args...)
		case r.URL.Path == "/api/healthz" || r.URL.Path == "/metrics":
			logger.Debug(line, args...)
		default:
			logger.Info(line, args...)
		}
	})
}
