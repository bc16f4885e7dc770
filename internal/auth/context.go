package auth

import "context"

type ctxKey string

// ContextUserKey stores the authenticated *User for the request.
const ContextUserKey ctxKey = "user"

// UserFromContext retrieves the authenticated user placed by the auth
// middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

// ContextWithUser attaches the authenticated user to the context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}
