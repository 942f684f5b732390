package middleware

import (
	"net/http"

	"sahne-client/utils"
)

// Guest vérifie que l'utilisateur n'est PAS connecté.
// Un token invalide ou expiré est ignoré : c'est le cas normal d'une reconnexion.
func Guest(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if _, err := utils.ValidateToken(tokenString, jwtSecret); err == nil {
				utils.RespondError(w, http.StatusForbidden, "Vous êtes déjà connecté")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
