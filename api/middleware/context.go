package middleware

import "context"

type contextKey string

const ctxStorefrontToken contextKey = "storefront_token"

// StorefrontTokenFromContext returns the anonymous browser token attached
// by the StorefrontToken middleware.
func StorefrontTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxStorefrontToken).(string); ok {
		return v
	}
	return ""
}

// WithStorefrontToken injects the browser token into the context.
func WithStorefrontToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxStorefrontToken, token)
}
