package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
)

const tooManyAttempts = "Too many attempts. Please wait a moment and try again."

type rateLimiterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// AuthRateLimitPolicy throttles one account form. A zero limit disables that counter.
type AuthRateLimitPolicy struct {
	form       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

func NewAuthRateLimitPolicy(form string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	form = strings.ToLower(strings.TrimSpace(form))
	if form == "" {
		form = "auth"
	}
	return AuthRateLimitPolicy{form: form, window: window, ipLimit: ipLimit, emailLimit: emailLimit}
}

// counter is one fixed-window bucket a form post is charged against.
type counter struct {
	scope string
	value string
	limit int
}

func (p AuthRateLimitPolicy) counters(r *http.Request) []counter {
	var out []counter
	if p.ipLimit > 0 {
		if ip := clientIP(r); ip != "" {
			out = append(out, counter{scope: "ip", value: ip, limit: p.ipLimit})
		}
	}
	if p.emailLimit > 0 {
		// Emails are hashed so addresses never appear in Redis keys or logs.
		if email := strings.ToLower(strings.TrimSpace(r.PostFormValue("email"))); email != "" {
			sum := sha256.Sum256([]byte(email))
			out = append(out, counter{scope: "email", value: hex.EncodeToString(sum[:]), limit: p.emailLimit})
		}
	}
	return out
}

// AuthRateLimit charges login and register posts against per-IP and per-email windows.
// GET requests for the forms are never counted.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger, writeErr ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || policy.window <= 0 || (policy.ipLimit <= 0 && policy.emailLimit <= 0) {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			for _, c := range policy.counters(r) {
				key := store.RateLimitKey(policy.form + ":" + c.scope + ":" + c.value)
				attempts, err := store.IncrWithTTL(ctx, key, policy.window)
				if err != nil {
					writeErr(w, r, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if attempts > int64(c.limit) {
					if logg != nil {
						logg.Warn(logg.WithFields(ctx, map[string]any{
							"form":           policy.form,
							"scope":          c.scope,
							"attempts":       attempts,
							"limit":          c.limit,
							"window_seconds": int(policy.window.Seconds()),
						}), "auth.rate_limited")
					}
					writeErr(w, r, pkgerrors.New(pkgerrors.CodeRateLimit, tooManyAttempts))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP takes the first X-Forwarded-For hop, then X-Real-IP, then the socket peer.
func clientIP(r *http.Request) string {
	if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
