package reservation

import (
	"time"

	"sahne-client/models"
)

// IsUpcoming est vrai pour une réservation active dont la date et l'heure ne sont pas passées.
// Une date illisible est classée dans le passé.
func IsUpcoming(r models.Reservation, now time.Time, loc *time.Location) bool {
	if !r.Status.IsActive() {
		return false
	}
	startsAt, err := r.StartsAt(loc)
	if err != nil {
		return false
	}
	return !startsAt.Before(now)
}

// SplitBookings sépare les réservations à venir des passées en conservant l'ordre reçu
func SplitBookings(list []models.Reservation, now time.Time, loc *time.Location) (upcoming, past []models.Reservation) {
	for _, r := range list {
		if IsUpcoming(r, now, loc) {
			upcoming = append(upcoming, r)
		} else {
			past = append(past, r)
		}
	}
	return upcoming, past
}

// CanCancel indique si le client peut annuler
func CanCancel(r models.Reservation) bool {
	return r.CanCancel()
}

// CanReview indique si le client peut laisser un avis
func CanReview(r models.Reservation) bool {
	return r.CanReview()
}

// StatusLabel retourne le libellé affiché d'un statut
func StatusLabel(status models.ReservationStatus) string {
	switch status {
	case models.StatusConfirmed:
		return "Confirmed"
	case models.StatusChefConfirmed:
		return "Confirmed by chef"
	case models.StatusCompleted:
		return "Completed"
	case models.StatusCancelled:
		return "Cancelled"
	case models.StatusRejected:
		return "Rejected"
	default:
		return "Pending"
	}
}

// TimelineStep est une étape du suivi d'une réservation
type TimelineStep struct {
	Label  string
	Active bool
	Date   *models.FlexibleTime
}

// Timeline retourne le suivi demande → confirmation → prestation
func Timeline(r models.Reservation) []TimelineStep {
	confirmed := r.Status == models.StatusConfirmed || r.Status == models.StatusChefConfirmed || r.Status == models.StatusCompleted
	steps := []TimelineStep{
		{Label: "Request sent", Active: true, Date: &r.CreatedAt},
		{Label: "Confirmed by chef", Active: confirmed},
		{Label: "Experience completed", Active: r.Status == models.StatusCompleted},
	}
	if r.Status == models.StatusConfirmed || r.Status == models.StatusChefConfirmed {
		steps[1].Date = &r.UpdatedAt
	}
	if r.Status == models.StatusCompleted {
		steps[2].Date = &r.UpdatedAt
	}
	return steps
}
