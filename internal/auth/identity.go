package auth

import "context"

// Identity is the authenticated principal attached to a request. Everything
// below the HTTP layer receives it (or its UserID) as an explicit parameter;
// it is never read from ambient request state.
type Identity struct {
	UserID   string
	Username string
}

type identityKey struct{}

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the identity placed by the auth middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
