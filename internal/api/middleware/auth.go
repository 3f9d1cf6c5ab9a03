// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jonesrussell/goharvest/internal/logger"
)

// UserIDKey is the gin context key carrying the authenticated user ID.
const UserIDKey = "user_id"

const bearerPrefix = "Bearer "

// Claims represents the JWT claims this service reads.
type Claims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// Auth verifies the bearer token and stores the user identity in the request
// context. Requests without a resolvable identity get a 401 with the
// standard error envelope.
func Auth(secret string, log logger.Interface) gin.HandlerFunc {
	secretBytes := []byte(secret)

	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			unauthorized(c)
			return
		}

		claims, err := validateToken(token, secretBytes)
		if err != nil {
			log.Debug("Rejected bearer token", "error", err)
			unauthorized(c)
			return
		}

		userID := claims.Sub
		if userID == "" {
			userID = claims.Subject
		}
		if userID == "" {
			unauthorized(c)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user ID from the request context.
func UserID(c *gin.Context) string {
	id, _ := c.Get(UserIDKey)
	s, _ := id.(string)
	return s
}

// extractBearerToken pulls the token out of an Authorization header.
func extractBearerToken(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

// validateToken parses and verifies an HS256 token.
func validateToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// unauthorized aborts the request with the standard 401 envelope.
func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "authentication required",
	})
}
