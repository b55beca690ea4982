package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
)

const (
	// HeaderUserID carries the authenticated user id.
	HeaderUserID = "X-User-ID"

	// HeaderUserRole carries the role of the authenticated user.
	HeaderUserRole = "X-User-Role"

	// RoleAdmin is the role value that grants the administrator capability.
	RoleAdmin = "admin"

	actorContextKey = "loans.actor"
)

// actorMiddleware reads the caller from the proxy headers. A missing user id yields an empty actor,
// which the gateways reject.
func actorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := core.Actor{
			UserID:  strings.TrimSpace(c.GetHeader(HeaderUserID)),
			IsAdmin: strings.EqualFold(strings.TrimSpace(c.GetHeader(HeaderUserRole)), RoleAdmin),
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

func actorFrom(c *gin.Context) core.Actor {
	if value, ok := c.Get(actorContextKey); ok {
		if actor, ok := value.(core.Actor); ok {
			return actor
		}
	}

	return core.Actor{}
}
