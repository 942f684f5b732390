package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

type counterDocument struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

// CounterRepository distribue des identifiants numériques croissants (un document par séquence)
type CounterRepository struct {
	collection *mongo.Collection
}

// NewCounterRepository crée une nouvelle instance de CounterRepository
func NewCounterRepository(db *mongo.Database) *CounterRepository {
	return &CounterRepository{
		collection: db.Collection(countersCollection),
	}
}

// Next incrémente la séquence et retourne la nouvelle valeur
func (r *CounterRepository) Next(ctx context.Context, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc counterDocument
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("erreur lors de l'incrément de la séquence %s: %w", name, err)
	}
	return doc.Seq, nil
}

// Ensure remonte la séquence à floor si elle est plus basse
func (r *CounterRepository) Ensure(ctx context.Context, name string, floor int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": floor}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("erreur lors de l'initialisation de la séquence %s: %w", name, err)
	}
	return nil
}
