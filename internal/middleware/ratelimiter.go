package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/haguru/torii/internal/interfaces"
)

const rateLimitedPage = `<html><body><h3 style='color:red;'>Too many requests. Please try again later.</h3>` +
	`<a href='/login.html'>Back to Login</a></body></html>`

// RateLimitMiddleware rejects requests over the limiter's budget with a
// small HTML page and counts them under metricName when metrics are wired.
func RateLimitMiddleware(limiter *rate.Limiter, metrics interfaces.Metrics, metricName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if metrics != nil {
					metrics.IncCounter(metricName)
				}
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(rateLimitedPage))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
