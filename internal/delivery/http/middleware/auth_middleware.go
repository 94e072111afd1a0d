package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"placement-cell-backend/internal/delivery/http/response"
	"placement-cell-backend/internal/domain"
)

// AuthMiddleware validates the bearer token and resolves the principal
// against storage, so deleted accounts lose access before token expiry.
// On success the principal id and role are placed in the gin context.
func AuthMiddleware(jwtSecret string, authUC domain.AuthUsecase) gin.HandlerFunc {
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" || tokenString == authHeader {
			response.Error(c, http.StatusUnauthorized, "Authorization bearer token required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		roleStr, _ := claims["role"].(string)
		id, err := primitive.ObjectIDFromHex(sub)
		if err != nil || !domain.ValidRole(roleStr) {
			response.Error(c, http.StatusUnauthorized, "Invalid token subject", nil)
			c.Abort()
			return
		}

		principal := domain.Principal{ID: id, Role: domain.Role(roleStr)}
		if _, err := authUC.CurrentPrincipal(c.Request.Context(), principal); err != nil {
			response.Error(c, http.StatusUnauthorized, "Account no longer exists", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), principal.ID)
		c.Set(string(domain.KeyUserRole), principal.Role)
		c.Next()
	}
}

// RequireRole guards a route group to one principal kind. Runs after
// AuthMiddleware.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, _ := c.MustGet(string(domain.KeyUserRole)).(domain.Role)
		if got != role {
			response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
