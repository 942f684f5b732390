package database

import (
	"context"
	"fmt"

	"sahne-client/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reservationsCollection = "reservations"

// ReservationRepository gère les réservations du serveur factice
type ReservationRepository struct {
	collection *mongo.Collection
}

// NewReservationRepository crée une nouvelle instance de ReservationRepository
func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{
		collection: db.Collection(reservationsCollection),
	}
}

// Create enregistre une nouvelle réservation
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, reservation); err != nil {
		return fmt.Errorf("erreur lors de la création de la réservation: %w", err)
	}
	return nil
}

// Update remplace une réservation existante
func (r *ReservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": reservation.ID}, reservation)
	if err != nil {
		return fmt.Errorf("erreur lors de la mise à jour de la réservation: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("réservation %d introuvable", reservation.ID)
	}
	return nil
}

// FindByID recherche une réservation par ID
func (r *ReservationRepository) FindByID(ctx context.Context, id int64) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var reservation models.Reservation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche de la réservation: %w", err)
	}
	return &reservation, nil
}

// Find retourne les réservations du filtre, plus récentes d'abord
func (r *ReservationRepository) Find(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, reservationQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des réservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []models.Reservation{}
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des réservations: %w", err)
	}
	return reservations, nil
}

// reservationQuery traduit un filtre en requête MongoDB (les champs vides sont ignorés)
func reservationQuery(filter models.ReservationFilter) bson.M {
	query := bson.M{}
	if filter.ClientID != 0 {
		query["client_id"] = filter.ClientID
	}
	if filter.ChefID != 0 {
		query["chef_id"] = filter.ChefID
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}
	if filter.Time != "" {
		query["time"] = filter.Time
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query["status"] = bson.M{"$in": statuses}
	}
	return query
}
