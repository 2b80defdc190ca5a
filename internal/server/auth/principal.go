package auth

import "context"

type ctxKey struct{}

// WithPrincipal attaches the verified claims to ctx for one request.
func WithPrincipal(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

func PrincipalFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*Claims)
	return claims, ok && claims != nil
}
