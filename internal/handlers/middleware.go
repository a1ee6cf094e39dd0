package handler

import (
	"net/http"
	"strings"

	"exchange-office-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequireSession resolves the bearer token into the acting user and puts
// it on the request context. Requests without a valid session are
// rejected.
func RequireSession(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractBearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}
		token, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}
		user, err := authService.UserForToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
