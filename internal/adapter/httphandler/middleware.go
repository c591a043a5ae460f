package httphandler

import (
	"net/http"
	"strings"
)

const userIDHeader = "X-User-Id"

// AllowJSON gates request bodies by media type. Multipart passes
// through for the avatar upload.
func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		ct := r.Header.Get("Content-Type")
		if ct != "application/json" &&
			!strings.HasPrefix(ct, "multipart/form-data") {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// CORS answers preflight requests and stamps the allow headers on
// every response.
func CORS(allowOrigin string, next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Methods",
			"GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, "+userIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// userID returns the identity injected by the fronting auth proxy.
// Credential verification is the auth provider's job, not ours.
func userID(r *http.Request) string {
	return r.Header.Get(userIDHeader)
}

// requireUser guards the per-user surface: no identity, no access.
func requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if userID(r) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
