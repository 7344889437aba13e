package middleware

import (
	"net/http"
	"strings"

	"review-catalogue-api/config"
	"review-catalogue-api/models"
	"review-catalogue-api/permissions"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const actorKey = "actor"

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Identify resolves the requester to an Actor. Requests without an
// Authorization header proceed as anonymous; a header that is present but
// invalid is rejected outright.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(actorKey, permissions.Anonymous())
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(actorKey, permissions.Actor{
			ID:            claims.UserID,
			Username:      claims.Username,
			Role:          models.UserRole(claims.Role),
			Authenticated: true,
		})

		c.Next()
	}
}

// GetActor returns the actor placed in the context by Identify.
func GetActor(c *gin.Context) permissions.Actor {
	if v, exists := c.Get(actorKey); exists {
		if actor, ok := v.(permissions.Actor); ok {
			return actor
		}
	}
	return permissions.Anonymous()
}

// RequireAuthenticated gates routes that have no anonymous form at all,
// such as the self profile.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetActor(c).Authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin gates the user administration routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if !actor.Authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if !permissions.IsAdmin(actor) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOrReadOnly gates the catalogue routes: reads are public, writes are
// admin only.
func AdminOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if permissions.IsAdminOrReadOnly(actor, c.Request.Method) {
			c.Next()
			return
		}
		if !actor.Authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		}
		c.Abort()
	}
}

// AuthenticatedOrReadOnly is the collection-level gate for reviews and
// comments. Object-level checks happen in the services once the resource
// is loaded.
func AuthenticatedOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if permissions.CanAccessCollection(actor, c.Request.Method) {
			c.Next()
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		c.Abort()
	}
}
