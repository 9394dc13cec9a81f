package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nagacare/internal/service"
)

const authClaimsKey = "auth_claims"

// AccessTokenParser valida un access token. *service.JWTService lo implementa.
type AccessTokenParser interface {
	ParseAccessToken(token string) (service.Claims, error)
}

// JWTAuthMiddleware exige "Authorization: Bearer <access token>" y deja los claims en el contexto.
func JWTAuthMiddleware(parser AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if parser == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := parser.ParseAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetAuthClaims obtiene claims de JWT desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

// authUserID responde 401 cuando la ruta no paso por JWTAuthMiddleware.
func authUserID(c *gin.Context) (string, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok || claims.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return "", false
	}
	return claims.UserID, true
}
