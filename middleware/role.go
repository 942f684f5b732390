package middleware

import (
	"log"
	"net/http"

	"sahne-client/constants"
	"sahne-client/models"
	"sahne-client/utils"
)

// RequireRole vérifie que l'utilisateur authentifié a le rôle attendu.
// Doit être placé derrière Auth.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	message := constants.ErrClientOnly
	if role == models.RoleChef {
		message = constants.ErrChefOnly
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			claims := GetUserFromContext(r.Context())
			if claims == nil {
				utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
				return
			}

			if claims.Role != role {
				log.Printf("⚠️  Accès %s refusé pour: %s (role=%s)", role, claims.Email, claims.Role)
				utils.RespondError(w, http.StatusForbidden, message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
