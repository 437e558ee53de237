package middleware

import (
	"net/http"

	"go-clinic-dashboard/internal/resource"
	"go-clinic-dashboard/pkg/response"

	"github.com/gorilla/mux"
)

const accessDenied = "Access denied"

// RequirePermission renders 403 unless the session grants the named check.
// Session is read from context (set by AuthMiddleware).
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Session information not found")
				return
			}

			if !session.Can(permission) {
				response.Forbidden(w, accessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Access is the level a screen route needs.
type Access int

const (
	AccessView Access = iota
	AccessManage
)

// KindLookup resolves a registered screen kind.
type KindLookup interface {
	Kind(name string) (resource.KindInfo, bool)
}

// RequireKindAccess guards /screens/{kind} routes with the view or manage
// permission of the kind named in the path.
func RequireKindAccess(kinds KindLookup, access Access) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Session information not found")
				return
			}

			info, ok := kinds.Kind(mux.Vars(r)["kind"])
			if !ok {
				response.NotFound(w, "Unknown resource kind")
				return
			}

			permission := info.ViewPermission
			if access == AccessManage {
				permission = info.ManagePermission
			}
			if !session.Can(permission) {
				response.Forbidden(w, accessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
