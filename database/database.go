package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// queryTimeout borne chaque requête d'un repository
const queryTimeout = 5 * time.Second

// DB est l'instance de connexion à la base de données MongoDB
var DB *mongo.Database
var Client *mongo.Client

// Connect établit la connexion à la base de données MongoDB
func Connect(uri, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Options de connexion
	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("erreur lors de la connexion à MongoDB: %w", err)
	}

	// Vérifier la connexion
	if err = client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("erreur lors du ping MongoDB: %w", err)
	}

	Client = client
	DB = client.Database(dbName)

	log.Println("✓ Connexion à MongoDB établie")

	if err = createIndexes(ctx); err != nil {
		return fmt.Errorf("erreur lors de la création des index: %w", err)
	}

	return nil
}

// Ping vérifie que la connexion MongoDB est active
func Ping() error {
	if Client == nil {
		return fmt.Errorf("client MongoDB non initialisé")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return Client.Ping(ctx, nil)
}

// Close ferme la connexion à la base de données
func Close() error {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return Client.Disconnect(ctx)
	}
	return nil
}

// createIndexes crée les index nécessaires
func createIndexes(ctx context.Context) error {
	// Un seul document de session par espace de noms
	namespaceIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "namespace", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := DB.Collection(kvCollection).Indexes().CreateOne(ctx, namespaceIndex)
	if err != nil {
		return fmt.Errorf("erreur lors de la création de l'index namespace: %w", err)
	}

	log.Println("✓ Index MongoDB créés")
	return nil
}

// CreateStoreIndexes crée les index des collections du serveur factice
func CreateStoreIndexes() error {
	if DB == nil {
		return fmt.Errorf("base MongoDB non initialisée")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		// Un compte par email
		{usersCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{chefsCollection, mongo.IndexModel{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		}},
		// Recherche des créneaux déjà pris
		{reservationsCollection, mongo.IndexModel{
			Keys: bson.D{{Key: "chef_id", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}},
		}},
		{reservationsCollection, mongo.IndexModel{
			Keys: bson.D{{Key: "client_id", Value: 1}},
		}},
		// Un avis par réservation
		{reviewsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "reservation_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}

	for _, idx := range indexes {
		if _, err := DB.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("erreur lors de la création d'un index sur %s: %w", idx.collection, err)
		}
	}

	log.Println("✓ Index du serveur factice créés")
	return nil
}
