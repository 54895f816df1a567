package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/assurly/assurly/internal/types"
)

const (
	headerRequestID = "X-Request-ID"
	headerActorID   = "X-Actor-ID"
)

// RequestIDMiddleware tags every request with a request id, either the
// caller's or a fresh one, and echoes it back in the response.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(headerRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}

	ctx := types.SetRequestID(c.Request.Context(), requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(headerRequestID, requestID)

	c.Next()
}

// ActorMiddleware resolves the acting identity for audit attribution.
// A real deployment puts an authentication layer in front; here the
// actor is taken from a trusted header and defaults to "system".
func ActorMiddleware(c *gin.Context) {
	if actorID := c.GetHeader(headerActorID); actorID != "" {
		ctx := types.SetActorID(c.Request.Context(), actorID)
		c.Request = c.Request.WithContext(ctx)
	}

	c.Next()
}
