package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"sahne-client/constants"
	"sahne-client/models"
)

// RespondJSON envoie une réponse JSON
func RespondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	if w.Header().Get(constants.HeaderContentType) == "" {
		w.Header().Set(constants.HeaderContentType, constants.HeaderApplicationJSON)
	}
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	w.WriteHeader(statusCode)

	if data != nil {
		// Les en-têtes sont déjà partis : on ne peut que journaliser
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("❌ Erreur lors de l'encodage JSON: %v", err)
		}
	}
}

// RespondError envoie une erreur métier {error, message}
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// RespondValidationError envoie une erreur 422 {message, errors{champ: [..]}}
func RespondValidationError(w http.ResponseWriter, fields FieldErrors) {
	RespondJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
		Message: constants.ErrInvalidData,
		Errors:  map[string][]string(fields),
	})
}

// RespondMessage envoie une réponse {message}
func RespondMessage(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, models.MessageResponse{Message: message})
}

// RespondSuccess envoie une réponse de succès JSON
func RespondSuccess(w http.ResponseWriter, message string, data interface{}) {
	RespondJSON(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}
