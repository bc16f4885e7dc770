package auth

import (
	"log/slog"
	"net/http"

	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

// RoleAuthorization gates routes on the closed role set. There is no
// permission store behind it: the privacy package's role set is the
// whole policy, which keeps route gating and field gating in one place.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

// Require allows only the named roles through.
func (ra *RoleAuthorization) Require(roles ...privacy.Role) func(http.Handler) http.Handler {
	allowed := make(map[privacy.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				ra.logger.Warn("authorization check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			role := privacy.ParseRole(user.Role)
			if _, ok := allowed[role]; !ok {
				ra.logger.Warn("access denied: role not allowed",
					"user_id", user.ID,
					"role", user.Role,
					"path", r.URL.Path)
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates admin-only data management routes.
func (ra *RoleAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.Require(privacy.RoleAdmin)
}

// RequireAdminOrHR gates approval and audit-trail routes.
func (ra *RoleAuthorization) RequireAdminOrHR() func(http.Handler) http.Handler {
	return ra.Require(privacy.RoleAdmin, privacy.RoleHR)
}
