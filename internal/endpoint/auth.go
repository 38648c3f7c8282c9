package endpoint

import (
	"net/http"
	"strings"
)

// authorized reports whether the request carries the configured bearer
// token. An empty token disables the check (open mode).
//
// The token must match exactly; there is no other credential scheme.
func authorized(r *http.Request, token string) bool {
	if token == "" {
		return true
	}

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return false
	}

	return strings.TrimPrefix(header, "Bearer ") == token
}
