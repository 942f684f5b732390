package mockdata

import (
	"context"

	"sahne-client/models"
)

// Les méthodes Find* retournent (nil, nil) quand l'enregistrement n'existe pas.

// UserRepository stocke les comptes
type UserRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Count(ctx context.Context) (int64, error)
}

// ChefRepository stocke les profils chef et leurs formules
type ChefRepository interface {
	Save(ctx context.Context, chef *models.ChefRecord) error
	FindByID(ctx context.Context, id int64) (*models.ChefRecord, error)
	FindByUser(ctx context.Context, userID int64) (*models.ChefRecord, error)
	FindActive(ctx context.Context) ([]models.ChefRecord, error)
}

// ReservationRepository stocke les réservations
type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	Update(ctx context.Context, reservation *models.Reservation) error
	FindByID(ctx context.Context, id int64) (*models.Reservation, error)
	// Find retourne les réservations du filtre, plus récentes d'abord
	Find(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
}

// ReviewRepository stocke les avis
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id int64) (*models.Review, error)
	FindByReservation(ctx context.Context, reservationID int64) (*models.Review, error)
	// FindByChef retourne les avis d'un chef, plus récents d'abord
	FindByChef(ctx context.Context, chefID int64) ([]models.Review, error)
}

// SequenceRepository distribue les identifiants numériques
type SequenceRepository interface {
	// Next retourne le prochain identifiant de la séquence (1 pour une séquence neuve)
	Next(ctx context.Context, name string) (int64, error)
	// Ensure garantit que les prochains identifiants seront strictement supérieurs à floor
	Ensure(ctx context.Context, name string, floor int64) error
}

// Noms des séquences
const (
	SequenceUsers        = "users"
	SequenceChefs        = "chefs"
	SequenceReservations = "reservations"
	SequenceReviews      = "reviews"
)

// Repositories regroupe les stockages utilisés par le Store
type Repositories struct {
	Users        UserRepository
	Chefs        ChefRepository
	Reservations ReservationRepository
	Reviews      ReviewRepository
	Sequences    SequenceRepository
}
