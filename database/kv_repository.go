package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const kvCollection = "session_kv"

// KVDocument regroupe toutes les clés d'un espace de noms dans un seul document,
// ce qui rend atomiques les écritures et suppressions multi-clés.
type KVDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Namespace string             `bson:"namespace"`
	Values    map[string]string  `bson:"values"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// KVRepository gère les paires clé/valeur de session
type KVRepository struct {
	collection *mongo.Collection
	namespace  string
}

// NewKVRepository crée un repository pour un espace de noms donné
func NewKVRepository(db *mongo.Database, namespace string) *KVRepository {
	return &KVRepository{
		collection: db.Collection(kvCollection),
		namespace:  namespace,
	}
}

// Get récupère une valeur (ok=false si absente)
func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc KVDocument
	err := r.collection.FindOne(ctx, bson.M{"namespace": r.namespace}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("erreur lors de la lecture de la clé %s: %w", key, err)
	}

	value, ok := doc.Values[key]
	return value, ok, nil
}

// SetMany écrit plusieurs clés en une seule mise à jour
func (r *KVRepository) SetMany(ctx context.Context, values map[string]string) error {
	set := bson.M{"updated_at": time.Now()}
	for key, value := range values {
		if err := checkKey(key); err != nil {
			return err
		}
		set["values."+key] = value
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"namespace": r.namespace},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("erreur lors de l'écriture de la session: %w", err)
	}
	return nil
}

// Remove supprime plusieurs clés en une seule mise à jour (sans erreur si absentes)
func (r *KVRepository) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	unset := bson.M{}
	for _, key := range keys {
		if err := checkKey(key); err != nil {
			return err
		}
		unset["values."+key] = ""
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"namespace": r.namespace},
		bson.M{"$unset": unset, "$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("erreur lors de la suppression des clés: %w", err)
	}
	return nil
}

// checkKey refuse les noms de champ que MongoDB interpréterait comme chemin ou opérateur
func checkKey(key string) error {
	if key == "" || strings.Contains(key, ".") || strings.HasPrefix(key, "$") {
		return fmt.Errorf("clé de session invalide: %q", key)
	}
	return nil
}
