package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const actorIDKey = contextKey("actorID")

// ActorIDMiddleware copies the acting user's ID from the X-Actor-ID header
// into the request context. Session handling lives upstream; by the time a
// request reaches this service the actor has already been authenticated.
func ActorIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorID := c.GetHeader("X-Actor-ID"); actorID != "" {
			ctx := context.WithValue(c.Request.Context(), actorIDKey, actorID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user's ID from the context.
// It returns the ID and a boolean indicating whether it was present.
func GetActorIDFromContext(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(actorIDKey).(string)
	if !ok || actorID == "" {
		return "", false
	}
	return actorID, true
}
