package handlers

import (
	"context"
	"log"
	"net/http"

	"sahne-client/constants"
	"sahne-client/mockdata"
	"sahne-client/models"
	"sahne-client/utils"
)

// ReservationHandler gère les réservations des clients et des chefs
type ReservationHandler struct {
	store *mockdata.Store
}

// NewReservationHandler crée une nouvelle instance de ReservationHandler
func NewReservationHandler(store *mockdata.Store) *ReservationHandler {
	return &ReservationHandler{store: store}
}

// List retourne les réservations de l'appelant, filtrées par ?status= {reservations}
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	status := models.ReservationStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		fields := utils.FieldErrors{}
		fields.Set("status", constants.ErrInvalidData)
		utils.RespondValidationError(w, fields)
		return
	}

	list, err := h.store.ListReservations(r.Context(), actor, status)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, models.ReservationListResponse{Reservations: list})
}

// Show retourne une réservation {reservation}
func (h *ReservationHandler) Show(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := ParseIDVar(w, r, "id", constants.ErrReservationNotFound)
	if !ok {
		return
	}

	reservation, err := h.store.Reservation(r.Context(), actor, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, models.ReservationResponse{Reservation: reservation})
}

// Create enregistre une demande de réservation {message, data}
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req models.CreateReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.store.CreateReservation(r.Context(), actor.UserID, req)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	log.Printf("📅 Réservation #%d créée (chef %d, %s %s, %d invités)",
		reservation.ID, reservation.ChefID, reservation.Date, reservation.Time, reservation.GuestCount)
	utils.RespondJSON(w, http.StatusCreated, models.CreateReservationResponse{
		Message: "Votre demande de réservation a été envoyée au chef",
		Data:    reservation,
	})
}

// Cancel annule une réservation (client)
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Réservation annulée", h.store.CancelReservation)
}

// Confirm accepte une réservation (chef)
func (h *ReservationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Réservation confirmée", h.store.ConfirmReservation)
}

// Complete marque une prestation comme effectuée (chef)
func (h *ReservationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Prestation terminée", h.store.CompleteReservation)
}

// Reject refuse une réservation avec un motif {reason} (chef)
func (h *ReservationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req models.RejectReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, "Réservation refusée", func(ctx context.Context, actor mockdata.Actor, id int64) (models.Reservation, error) {
		return h.store.RejectReservation(ctx, actor, id, req.Reason)
	})
}

// Review publie l'avis du client sur une réservation terminée {review}
func (h *ReservationHandler) Review(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := ParseIDVar(w, r, "id", constants.ErrReservationNotFound)
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.store.CreateReview(r.Context(), actor, id, req)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, models.ReviewResponse{Review: review})
}

type transitionFunc func(ctx context.Context, actor mockdata.Actor, id int64) (models.Reservation, error)

// transition applique un changement de statut et répond {message, reservation}
func (h *ReservationHandler) transition(w http.ResponseWriter, r *http.Request, message string, apply transitionFunc) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := ParseIDVar(w, r, "id", constants.ErrReservationNotFound)
	if !ok {
		return
	}

	reservation, err := apply(r.Context(), actor, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	log.Printf("✓ Réservation #%d -> %s", reservation.ID, reservation.Status)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     message,
		"reservation": reservation,
	})
}
