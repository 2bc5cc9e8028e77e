package middleware

import (
	"net/http"

	"github.com/angelmondragon/mahalaxmi-storefront/internal/session"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/enums"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
)

// RequireRole admits only sessions holding role. Anonymous visitors go to /login,
// signed in users without the role go home without a notice.
func RequireRole(role enums.Role, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := session.FromContext(r.Context())
			if !state.Authenticated() {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !state.Role().Allows(role) {
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "required_role", string(role)), "auth.role_denied")
				}
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
