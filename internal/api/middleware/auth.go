package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/internal/service"
	"github.com/d60-Lab/blog-platform/pkg/response"
)

const actorKey = "auth.actor"

// Auth verifies a Bearer token issued by the identity provider (HS256) and
// resolves the caller's role from the users table. With required=false the
// request proceeds anonymously when no token is present; a present but
// invalid token always fails.
func Auth(secret string, users repository.UserRepository, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if required {
				response.Unauthorized(c)
				return
			}
			c.Next()
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			response.Unauthorized(c)
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c)
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			response.Unauthorized(c)
			return
		}

		role, err := users.GetRole(c.Request.Context(), sub)
		if err != nil {
			response.InternalError(c, err)
			c.Abort()
			return
		}
		if role == "" {
			response.Forbidden(c, "account not found")
			c.Abort()
			return
		}

		c.Set(actorKey, service.Actor{ID: sub, Role: role})
		c.Next()
	}
}

// ActorFrom returns the authenticated actor, if any.
func ActorFrom(c *gin.Context) (service.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return service.Actor{}, false
	}
	actor, ok := v.(service.Actor)
	return actor, ok
}
