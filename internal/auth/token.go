package auth

import (
	"net/http"
	"strings"
)

const sessionCookie = "access_token"

// ExtractAccessToken pulls the session token from the request, preferring
// the cookie over a bearer Authorization header. Returns "" when neither
// carries one.
func ExtractAccessToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
