package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// principalKey is the Gin context key holding the authenticated principal.
const principalKey = "principal"

// Principals accepted by BearerAuth.
const (
	PrincipalAdmin = "admin"
	PrincipalCron  = "cron"
)

// BearerAuth guards a route group with a static bearer token. On success the
// principal name is stored in the Gin context. An empty token disables the
// routes entirely (503), so a missing secret never means "open".
func BearerAuth(principal, token string) gin.HandlerFunc {
	want := []byte(token)
	return func(c *gin.Context) {
		if len(want) == 0 {
			abortJSON(c, http.StatusServiceUnavailable, "disabled", principal+" endpoints are not configured")
			return
		}
		got, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			c.Header("WWW-Authenticate", `Bearer realm="quoticon"`)
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing or invalid bearer token")
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// Principal returns the principal set by BearerAuth, or "anonymous".
func Principal(c *gin.Context) string {
	if v, ok := c.Get(principalKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anonymous"
}

func bearerToken(h string) (string, bool) {
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(h[len(prefix):])
	return tok, tok != ""
}
