package database

import (
	"context"
	"fmt"

	"sahne-client/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reviewsCollection = "reviews"

// ReviewRepository gère les avis du serveur factice
type ReviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository crée une nouvelle instance de ReviewRepository
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		collection: db.Collection(reviewsCollection),
	}
}

// Create enregistre un avis (un seul par réservation, garanti par index unique)
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("un avis existe déjà pour la réservation %d", review.ReservationID)
		}
		return fmt.Errorf("erreur lors de la création de l'avis: %w", err)
	}
	return nil
}

// Update remplace un avis existant
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": review.ID}, review)
	if err != nil {
		return fmt.Errorf("erreur lors de la mise à jour de l'avis: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("avis %d introuvable", review.ID)
	}
	return nil
}

// FindByID recherche un avis par ID
func (r *ReviewRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByReservation recherche l'avis d'une réservation
func (r *ReviewRepository) FindByReservation(ctx context.Context, reservationID int64) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"reservation_id": reservationID})
}

// FindByChef retourne les avis d'un chef, plus récents d'abord
func (r *ReviewRepository) FindByChef(ctx context.Context, chefID int64) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"chef_id": chefID}, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des avis: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des avis: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) findOne(ctx context.Context, filter bson.M) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var review models.Review
	err := r.collection.FindOne(ctx, filter).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche de l'avis: %w", err)
	}
	return &review, nil
}
