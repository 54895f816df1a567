package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxActorID   ContextKey = "ctx_actor_id"
	CtxActorRole ContextKey = "ctx_actor_role"

	// DefaultActorID is used for mutations triggered without an
	// authenticated actor, e.g. scheduled sweeps.
	DefaultActorID = "system"
)

// GetActorID returns the id of the authenticated actor performing the
// operation. The identity layer is responsible for setting it.
func GetActorID(ctx context.Context) string {
	if actorID, ok := ctx.Value(CtxActorID).(string); ok && actorID != "" {
		return actorID
	}
	return DefaultActorID
}

// GetActorRole returns the role of the authenticated actor
func GetActorRole(ctx context.Context) string {
	if role, ok := ctx.Value(CtxActorRole).(string); ok {
		return role
	}
	return ""
}

// GetRequestID returns the request id from the context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// SetActorID sets the actor id in the context
func SetActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, CtxActorID, actorID)
}

// SetActorRole sets the actor role in the context
func SetActorRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, CtxActorRole, role)
}

// SetRequestID sets the request id in the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}
