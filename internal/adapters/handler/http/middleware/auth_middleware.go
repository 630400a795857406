package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	authorizationType   = "Bearer"
	ContextSubjectKey   = "subject"
)

type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "code": "unauthorized"})
}

func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			unauthorized(c, "authorization header required")
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 || fields[0] != authorizationType {
			unauthorized(c, "invalid authorization header format")
			return
		}

		subject, err := tokens.ValidateToken(fields[1])
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextSubjectKey, subject)

		c.Next()
	}
}

func GetSubject(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextSubjectKey)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
