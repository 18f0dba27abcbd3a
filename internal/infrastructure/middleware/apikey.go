package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/viniciusmartins/imagepress/internal/pkg/apperror"
	"github.com/viniciusmartins/imagepress/internal/pkg/httputil"
)

const (
	BearerPrefix = "Bearer "
	APIKeyHeader = "X-API-Key"
	APIKeyQuery  = "api_key"
)

// APIKeyMiddleware gates requests behind one shared secret. The caller may
// supply it as "Authorization: Bearer <key>", the X-API-Key header, or the
// api_key query parameter; precedence is in that order and the first value
// found is the one compared.
type APIKeyMiddleware struct {
	key string
}

func NewAPIKeyMiddleware(key string) *APIKeyMiddleware {
	return &APIKeyMiddleware{key: key}
}

func (m *APIKeyMiddleware) RequireKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		// An enabled gate without a configured secret is a server-side
		// misconfiguration, not a client fault.
		if m.key == "" {
			httputil.ErrorWithCode(c, http.StatusInternalServerError, "CONFIG_ERROR", "api key authentication is enabled but no key is configured")
			c.Abort()
			return
		}

		supplied := extractAPIKey(c)
		if supplied == "" {
			httputil.HandleError(c, apperror.Unauthorized("api key required"))
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(supplied), []byte(m.key)) != 1 {
			httputil.HandleError(c, apperror.Unauthorized("invalid api key"))
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractAPIKey(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	return c.Query(APIKeyQuery)
}
