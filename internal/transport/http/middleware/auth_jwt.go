package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"urbanvibe-api/internal/core/auth"
	resp "urbanvibe-api/internal/transport/http/response"
)

const keyIdentity = "identity"

// AuthJWT requires a Bearer token that idp accepts and stores the caller's
// Identity on the context.
func AuthJWT(idp auth.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(ah, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			resp.Abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		id, err := idp.Identify(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			_ = c.Error(err)
			resp.Abort(c, resp.CodeUnauthorized, "invalid token")
			return
		}
		c.Set(keyIdentity, id)
		c.Next()
	}
}

// IdentityFrom returns the identity set by AuthJWT.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(keyIdentity)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
