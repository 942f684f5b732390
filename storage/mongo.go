package storage

import (
	"context"

	"sahne-client/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore stocke la session dans MongoDB (un document par espace de noms)
type MongoStore struct {
	repo *database.KVRepository
}

// NewMongoStore crée un stockage adossé à la collection session_kv
func NewMongoStore(db *mongo.Database, namespace string) *MongoStore {
	return &MongoStore{repo: database.NewKVRepository(db, namespace)}
}

// Get récupère une valeur
func (s *MongoStore) Get(ctx context.Context, key string) (string, bool, error) {
	return s.repo.Get(ctx, key)
}

// SetMany écrit plusieurs clés dans une seule mise à jour du document
func (s *MongoStore) SetMany(ctx context.Context, values map[string]string) error {
	return s.repo.SetMany(ctx, values)
}

// Remove supprime plusieurs clés dans une seule mise à jour du document
func (s *MongoStore) Remove(ctx context.Context, keys ...string) error {
	return s.repo.Remove(ctx, keys...)
}
