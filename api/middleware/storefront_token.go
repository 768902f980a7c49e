package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/solevibe/solevibe-backend/pkg/logger"
)

const storefrontTokenHeader = "X-Storefront-Token"

// StorefrontToken attaches the anonymous browser token to the request.
// A request without one gets a fresh UUID; the header is echoed back so
// the storefront can persist it.
func StorefrontToken(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(storefrontTokenHeader))
			if token == "" {
				token = uuid.NewString()
			}

			w.Header().Set(storefrontTokenHeader, token)

			ctx := WithStorefrontToken(r.Context(), token)
			if logg != nil {
				ctx = logg.WithStorefrontToken(ctx, token)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
