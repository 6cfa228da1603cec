package internal

import (
	"context"
)

type ctxKey string

// ContextUserKey carries the authenticated user's ID from the auth
// middleware down to services, so mutation events can name their actor.
const ContextUserKey ctxKey = "userID"

// ContextWithUserID tags ctx with the acting user's ID.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserKey, userID)
}

// UserIDFromContext returns the acting user's ID, or "" for
// unauthenticated contexts (seeder, migrations, tests).
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value(ContextUserKey).(string); ok {
		return userID
	}
	return ""
}
