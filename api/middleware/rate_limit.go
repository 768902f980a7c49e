package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/solevibe/solevibe-backend/api/responses"
	"github.com/solevibe/solevibe-backend/pkg/config"
	pkgerrors "github.com/solevibe/solevibe-backend/pkg/errors"
	"github.com/solevibe/solevibe-backend/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// CheckoutRateLimitPolicy defines the throttling parameters for the
// checkout surface.
type CheckoutRateLimitPolicy struct {
	window     time.Duration
	ipLimit    int
	tokenLimit int
}

// NewCheckoutRateLimitPolicy derives the policy from checkout config. The
// same ceiling applies per client IP and per storefront token.
func NewCheckoutRateLimitPolicy(cfg config.CheckoutConfig) CheckoutRateLimitPolicy {
	return CheckoutRateLimitPolicy{
		window:     cfg.RateLimitWindow,
		ipLimit:    cfg.RateLimitMax,
		tokenLimit: cfg.RateLimitMax,
	}
}

func (p CheckoutRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.tokenLimit > 0)
}

func (p CheckoutRateLimitPolicy) ipKey(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("rl:ip:checkout:%s", ip)
}

func (p CheckoutRateLimitPolicy) tokenKey(token string) string {
	if token == "" {
		return ""
	}
	return fmt.Sprintf("rl:token:checkout:%s", token)
}

// CheckoutRateLimit enforces per-IP and per-token counters on checkout
// endpoints.
func CheckoutRateLimit(policy CheckoutRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			if policy.ipLimit > 0 {
				if key := policy.ipKey(ip); key != "" {
					if allowed, count, err := allow(ctx, store, key, policy.window, int64(policy.ipLimit)); err != nil {
						responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					} else if !allowed {
						respondRateLimited(ctx, logg, w, policy, "ip", ip, count, policy.ipLimit)
						return
					}
				}
			}

			if policy.tokenLimit > 0 {
				token := StorefrontTokenFromContext(ctx)
				if key := policy.tokenKey(token); key != "" {
					if allowed, count, err := allow(ctx, store, key, policy.window, int64(policy.tokenLimit)); err != nil {
						responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					} else if !allowed {
						respondRateLimited(ctx, logg, w, policy, "token", token, count, policy.tokenLimit)
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func allow(ctx context.Context, store rateLimiterStore, key string, window time.Duration, limit int64) (bool, int64, error) {
	count, err := store.IncrWithTTL(ctx, key, window)
	if err != nil {
		return false, 0, err
	}
	return count <= limit, count, nil
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy CheckoutRateLimitPolicy, scope, subject string, count int64, limit int) {
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          scope,
			"subject":        subject,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(policy.window.Seconds()),
		})
		logg.Warn(logCtx, "checkout.rate_limit.blocked")
	}
	err := pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded")
	responses.WriteError(ctx, nil, w, err)
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
