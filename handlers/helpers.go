package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"sahne-client/constants"
	"sahne-client/middleware"
	"sahne-client/mockdata"
	"sahne-client/utils"

	"github.com/gorilla/mux"
)

// maxBodySize limite la taille des corps JSON acceptés
const maxBodySize = 1 << 20

// RequireMethod vérifie que la méthode HTTP est correcte. Retourne false et écrit l'erreur si non.
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		utils.RespondError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
		return false
	}
	return true
}

// ParseIDVar extrait et valide un identifiant numérique depuis les vars de l'URL (clé et message configurables).
func ParseIDVar(w http.ResponseWriter, r *http.Request, key, errMsg string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[key], 10, 64)
	if err != nil || id <= 0 {
		utils.RespondError(w, http.StatusNotFound, errMsg)
		return 0, false
	}
	return id, true
}

// decodeJSON décode le corps de la requête. Retourne false et écrit l'erreur si le JSON est invalide.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Body == nil || r.Body == http.NoBody {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidJSONBody)
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(dst); err != nil {
		utils.RespondError(w, http.StatusBadRequest, constants.ErrInvalidJSONBody)
		return false
	}
	return true
}

// actorFrom lit l'appelant depuis les claims posés par middleware.Auth
func actorFrom(w http.ResponseWriter, r *http.Request) (mockdata.Actor, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return mockdata.Actor{}, false
	}
	return mockdata.Actor{UserID: claims.UserID, Role: claims.Role}, true
}

// respondStoreError traduit une erreur du store en réponse JSON
func respondStoreError(w http.ResponseWriter, err error) {
	var storeErr *mockdata.Error
	if !errors.As(err, &storeErr) {
		log.Printf("❌ Erreur serveur: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}
	if len(storeErr.Fields) > 0 {
		utils.RespondValidationError(w, storeErr.Fields)
		return
	}
	utils.RespondError(w, storeErr.Status, storeErr.Message)
}
