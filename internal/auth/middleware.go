package auth

import (
	"net/http"
	"strings"

	dom "github.com/JulianPasquale/fudo-rack/internal/domain"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

const contextKeyUser = "current_user"

// CurrentUser returns the user set by RequireToken. ok is false on
// unprotected routes.
func CurrentUser(c *gin.Context) (dom.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return dom.User{}, false
	}
	u, ok := v.(dom.User)
	return u, ok
}

// RequireToken returns a middleware that checks the Authorization header for
// a valid bearer token and sets the resolved user in context. The scheme
// prefix is case-sensitive; anything other than "Bearer <token>" is a 401.
func RequireToken(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		token := header[len(bearerPrefix):]
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := svc.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}
