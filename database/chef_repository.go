package database

import (
	"context"
	"fmt"

	"sahne-client/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chefsCollection = "chefs"

// ChefRepository gère les profils chef et leurs formules
type ChefRepository struct {
	collection *mongo.Collection
}

// NewChefRepository crée une nouvelle instance de ChefRepository
func NewChefRepository(db *mongo.Database) *ChefRepository {
	return &ChefRepository{
		collection: db.Collection(chefsCollection),
	}
}

// Save crée ou remplace un profil chef
func (r *ChefRepository) Save(ctx context.Context, chef *models.ChefRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": chef.ID}, chef, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("erreur lors de l'enregistrement du chef: %w", err)
	}
	return nil
}

// FindByID recherche un chef par ID
func (r *ChefRepository) FindByID(ctx context.Context, id int64) (*models.ChefRecord, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByUser recherche le profil chef d'un compte
func (r *ChefRepository) FindByUser(ctx context.Context, userID int64) (*models.ChefRecord, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

// FindActive retourne les chefs actifs par ID croissant
func (r *ChefRepository) FindActive(ctx context.Context) ([]models.ChefRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des chefs: %w", err)
	}
	defer cursor.Close(ctx)

	chefs := []models.ChefRecord{}
	if err = cursor.All(ctx, &chefs); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des chefs: %w", err)
	}
	return chefs, nil
}

func (r *ChefRepository) findOne(ctx context.Context, filter bson.M) (*models.ChefRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var chef models.ChefRecord
	err := r.collection.FindOne(ctx, filter).Decode(&chef)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche du chef: %w", err)
	}
	return &chef, nil
}
