package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/salon_go_server/internal/pkg/jwt"
	"github.com/qs3c/salon_go_server/internal/pkg/response"
)

const (
	UserIDKey    = "userID"
	CompanyIDKey = "companyID"
)

// Auth validates the bearer token issued by the hosted auth provider and
// puts the user and company IDs on the context.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AuthError(c, "Informe o token de acesso")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			response.AuthError(c, "Formato de autenticação inválido")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err != nil {
			response.AuthError(c, "Sessão inválida ou expirada")
			c.Abort()
			return
		}
		if claims.CompanyID <= 0 {
			response.PermissionError(c, "Usuário sem empresa vinculada")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(CompanyIDKey, claims.CompanyID)
		c.Next()
	}
}

// GetUserID returns the authenticated user.
func GetUserID(c *gin.Context) (int64, bool) {
	return getID(c, UserIDKey)
}

// GetCompanyID returns the company whose data the request may touch.
func GetCompanyID(c *gin.Context) (int64, bool) {
	return getID(c, CompanyIDKey)
}

func getID(c *gin.Context, key string) (int64, bool) {
	v, exists := c.Get(key)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
