package middleware

import (
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

const ContextActor = "actor"

// AuthMiddleware accepts HS256 bearer tokens whose `sub` is a user uuid and
// whose `role` is user, barber or admin.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "expected a bearer token")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "token is invalid or expired")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "token claims are unreadable")
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			httperr.Unauthorized(c, "invalid_token_payload", "token subject is not a user id")
			return
		}

		rawRole, _ := claims["role"].(string)
		role, ok := actor.ParseRole(rawRole)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_payload", "token role is unknown")
			return
		}

		c.Set(ContextActor, actor.Actor{ID: userID, Role: role})
		c.Next()
	}
}

// RequireRole rejects actors whose role is not listed. It must run after
// AuthMiddleware.
func RequireRole(roles ...actor.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := ActorFrom(c)
		if !ok {
			httperr.Unauthorized(c, "unauthenticated", "authentication required")
			return
		}
		if !slices.Contains(roles, a.Role) {
			httperr.Forbidden(c, "role_not_allowed", "your role may not use this endpoint")
			return
		}
		c.Next()
	}
}

func ActorFrom(c *gin.Context) (actor.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return actor.Actor{}, false
	}
	a, ok := v.(actor.Actor)
	return a, ok
}

// IssueToken signs a token AuthMiddleware accepts.
func IssueToken(secret string, a actor.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  a.ID.String(),
		"role": string(a.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
