package handlers

import (
	"net/http"
	"runtime"
	"time"

	"sahne-client/utils"
)

var startTime = time.Now()

// HealthHandler gère les endpoints de santé
type HealthHandler struct {
	environment string
}

// NewHealthHandler crée un nouveau HealthHandler
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment}
}

// Health retourne l'état de santé du serveur avec métriques
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"message":    "Le serveur fonctionne correctement",
		"env":        h.environment,
		"database":   "fixtures en mémoire",
		"uptime":     time.Since(startTime).String(),
		"go_version": runtime.Version(),
	})
}
