package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/response"
)

const (
	CtxLoginKey       = "login"
	CtxAuthoritiesKey = "authorities"
)

// bearerToken returns the token of an "Authorization: Bearer <token>" header, or "".
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// JWTAuth validates the bearer token and injects the principal login and authorities into context.
func JWTAuth(tokens *helpers.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}
		if !tokens.ValidateToken(token) {
			response.Error[any](c, http.StatusUnauthorized, "invalid bearer token", nil)
			c.Abort()
			return
		}
		p, err := tokens.ParseAuthentication(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid bearer token", nil)
			c.Abort()
			return
		}
		c.Set(CtxLoginKey, p.Name)
		c.Set(CtxAuthoritiesKey, p.Authorities)
		c.Next()
	}
}
