package gate

import (
	"net/http"

	"github.com/jonwraymond/authgate/policy"
)

// Middleware runs the gate for every request. Rejections are written as
// JSON and the handler chain stops; otherwise the decision is attached
// to the request context and next runs.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision, err := g.Authenticate(r.Context(), r.URL.Path, r.Method, r.Header.Get)
		if err != nil {
			WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithDecision(r.Context(), decision)))
	})
}

// RequirePermissions guards a handler behind explicit permissions. The
// request must carry an authenticated decision holding every required
// permission (or the wildcard).
func RequirePermissions(required ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := FromContext(r.Context())
			if d == nil || !d.Authenticated {
				WriteError(w, authRequired())
				return
			}
			if !policy.HasAll(d.Permissions, required) {
				WriteError(w, permissionDenied(required, d.Permissions))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole guards a handler behind a role. Admin passes any role
// check.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := FromContext(r.Context())
			if d == nil || !d.Authenticated {
				WriteError(w, authRequired())
				return
			}
			if got := d.Role(); got != role && got != policy.RoleAdmin {
				WriteError(w, roleDenied(role, got))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
