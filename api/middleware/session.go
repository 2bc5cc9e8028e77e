package middleware

import (
	"context"
	"net/http"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/apiclient"
	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/config"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
)

type sessionLoader interface {
	Initialize(ctx context.Context, sessionID string) (session.State, error)
}

// Session resolves the browser session cookie, restores its auth state and
// attaches the backend token to the request context.
func Session(cfg config.SessionConfig, store sessionLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sid := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil && session.ValidID(cookie.Value) {
				sid = cookie.Value
			}
			if sid == "" {
				sid = session.NewID()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(cfg.TTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.SecureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}

			state, err := store.Initialize(ctx, sid)
			if err != nil && logg != nil {
				logg.Error(logg.WithSessionID(ctx, sid), "session.initialize_failed", err)
			}

			ctx = session.WithState(ctx, state)
			ctx = apiclient.WithToken(ctx, state.Token())
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sid)
				if user := state.User(); user != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"user_id":    user.ID,
						"actor_role": string(user.Role),
					})
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth sends anonymous visitors to /login.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.FromContext(r.Context()).Authenticated() {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
