package middleware

import (
	"net/http"
	"strings"
)

// Security returns middleware that sets restrictive security headers on all
// responses. Path prefixes passed in skipPrefixes are exempt; the docs UI
// needs inline assets and stored photos must stay fetchable by the app.
func Security(skipPrefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range skipPrefixes {
				if r.URL.Path == prefix || strings.HasPrefix(r.URL.Path, prefix+"/") {
					next.ServeHTTP(w, r)
					return
				}
			}

			h := w.Header()
			setIfAbsent(h, "Cache-Control", "no-store")
			setIfAbsent(h, "Content-Security-Policy", "frame-ancestors 'none'")
			setIfAbsent(h, "Cross-Origin-Opener-Policy", "same-origin")
			setIfAbsent(h, "Cross-Origin-Resource-Policy", "same-origin")
			setIfAbsent(h, "Permissions-Policy",
				"accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()")
			setIfAbsent(h, "Referrer-Policy", "strict-origin-when-cross-origin")
			setIfAbsent(h, "X-Content-Type-Options", "nosniff")
			setIfAbsent(h, "X-Frame-Options", "DENY")

			next.ServeHTTP(w, r)
		})
	}
}

func setIfAbsent(h http.Header, key, value string) {
	if h.Get(key) == "" {
		h.Set(key, value)
	}
}
