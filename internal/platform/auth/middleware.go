package auth

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

const principalKey = "auth.principal"

// Authenticate reads an optional bearer token. Valid tokens attach a Principal to the
// request; requests without one continue anonymously so that write handlers can report
// the missing identity themselves. Malformed tokens are logged and treated as anonymous.
func Authenticate(verifier *Verifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || verifier == nil {
			c.Next()
			return
		}
		principal, err := verifier.Verify(token)
		if err != nil {
			if logger != nil {
				logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "rejected bearer token", slog.String("error", err.Error()))
			}
			c.Next()
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal or nil.
func PrincipalFromContext(c *gin.Context) *Principal {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, _ := value.(*Principal)
	return principal
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
