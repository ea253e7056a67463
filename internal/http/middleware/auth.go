package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jose "github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	"github.com/leadline/leadline-portal/internal/config"
)

const principalKey = "principalID"

// Auth validates the session bearer token issued by the auth collaborator
// and attaches the principal id to the request.
type Auth struct {
	secret []byte
}

// NewAuth creates the auth middleware from the shared session secret.
func NewAuth(cfg config.Config) *Auth {
	return &Auth{secret: []byte(cfg.SessionJWTSecret)}
}

// RequirePrincipal ensures the request carries a valid bearer token.
func (m *Auth) RequirePrincipal(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
		return
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
		return
	}

	token, err := jwt.ParseSigned(strings.TrimSpace(parts[1]), []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
		return
	}

	var claims jwt.Claims
	if err := token.Claims(m.secret, &claims); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
		return
	}
	if err := claims.Validate(jwt.Expected{Time: time.Now()}); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
		return
	}
	if strings.TrimSpace(claims.Subject) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session token missing subject"})
		return
	}

	c.Set(principalKey, claims.Subject)
	c.Next()
}

// GetPrincipal returns the authenticated principal id for the request.
func GetPrincipal(c *gin.Context) (string, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}
