package handlers

import (
	"net/http"

	"sahne-client/constants"
	"sahne-client/mockdata"
	"sahne-client/models"
	"sahne-client/utils"
)

// ReviewHandler gère les réponses des chefs aux avis
type ReviewHandler struct {
	store *mockdata.Store
}

// NewReviewHandler crée une nouvelle instance de ReviewHandler
func NewReviewHandler(store *mockdata.Store) *ReviewHandler {
	return &ReviewHandler{store: store}
}

// Reply publie la réponse unique du chef {review}
func (h *ReviewHandler) Reply(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := ParseIDVar(w, r, "id", constants.ErrReviewNotFound)
	if !ok {
		return
	}

	var req models.ReplyReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.store.ReplyToReview(r.Context(), actor, id, req.Reply)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, models.ReviewResponse{Review: review})
}
