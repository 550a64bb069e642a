package auth

import (
	"net/http"
	"strings"
)

const AdminTokenCookie = "admin_token"

// ExtractAccessToken reads the admin token from its cookie, falling back to
// the Authorization: Bearer header used by paybyrdctl and scripts.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AdminTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}
