// README: Client identification middleware; every generation is attributed to a client id.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ClientHeader carries the caller's client id.
	ClientHeader = "X-Client-ID"

	ctxKeyClientID = "client_id"
	maxClientIDLen = 64
)

// ClientID requires a valid X-Client-ID header and stores it for CallerUID.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(ClientHeader))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + ClientHeader + " header"})
			return
		}
		if !validClientID(id) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
			return
		}
		c.Set(ctxKeyClientID, id)
		c.Next()
	}
}

// CallerUID returns the client id set by ClientID, or "".
func CallerUID(c *gin.Context) string {
	return c.GetString(ctxKeyClientID)
}

// validClientID allows letters, digits, '-' and '_' (UUIDs and short hex ids).
func validClientID(v string) bool {
	if len(v) > maxClientIDLen {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}
