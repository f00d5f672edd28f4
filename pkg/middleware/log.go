package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

func Log(logger *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Infow("request",
			"method", r.Method,
			"url", r.URL.Path,
			"remote", r.RemoteAddr,
			"took", time.Since(start),
		)
	})
}
