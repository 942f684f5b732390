package services

import (
	"context"
	"fmt"
	"net/url"

	"sahne-client/models"
)

// ReservationService gère les réservations du client et du chef
type ReservationService struct {
	api Requester
}

// NewReservationService crée une nouvelle instance
func NewReservationService(api Requester) *ReservationService {
	return &ReservationService{api: api}
}

// GetMyReservations liste les réservations de l'utilisateur, filtrées par statut si non vide
func (s *ReservationService) GetMyReservations(ctx context.Context, status models.ReservationStatus) ([]models.Reservation, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {string(status)}}
	}
	var resp models.ReservationListResponse
	if err := s.api.Get(ctx, "/reservations", query, &resp); err != nil {
		return nil, err
	}
	return resp.Reservations, nil
}

// GetReservationByID récupère une réservation
func (s *ReservationService) GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error) {
	var resp models.ReservationResponse
	if err := s.api.Get(ctx, reservationPath(id, ""), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Reservation, nil
}

// CreateReservation crée une réservation et retourne {message, data}
func (s *ReservationService) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.CreateReservationResponse, error) {
	var resp models.CreateReservationResponse
	if err := s.api.Post(ctx, "/reservations", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelReservation annule une réservation (client)
func (s *ReservationService) CancelReservation(ctx context.Context, id int64) error {
	return s.api.Post(ctx, reservationPath(id, "cancel"), nil, nil)
}

// ConfirmReservation accepte une réservation (chef)
func (s *ReservationService) ConfirmReservation(ctx context.Context, id int64) error {
	return s.api.Post(ctx, reservationPath(id, "confirm"), nil, nil)
}

// RejectReservation refuse une réservation avec un motif (chef)
func (s *ReservationService) RejectReservation(ctx context.Context, id int64, reason string) error {
	return s.api.Post(ctx, reservationPath(id, "reject"), models.RejectReservationRequest{Reason: reason}, nil)
}

// CompleteReservation marque la prestation comme effectuée (chef)
func (s *ReservationService) CompleteReservation(ctx context.Context, id int64) error {
	return s.api.Post(ctx, reservationPath(id, "complete"), nil, nil)
}

func reservationPath(id int64, action string) string {
	if action == "" {
		return fmt.Sprintf("/reservations/%d", id)
	}
	return fmt.Sprintf("/reservations/%d/%s", id, action)
}
