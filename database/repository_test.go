package database

import (
	"context"
	"testing"
	"time"

	"sahne-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestReservationQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter models.ReservationFilter
		want   bson.M
	}{
		{"sans filtre", models.ReservationFilter{}, bson.M{}},
		{"client", models.ReservationFilter{ClientID: 1}, bson.M{"client_id": int64(1)}},
		{
			"créneau actif d'un chef",
			models.ReservationFilter{ChefID: 2, Date: "2025-06-01", Time: "19:00", Statuses: []models.ReservationStatus{models.StatusPending, models.StatusChefConfirmed}},
			bson.M{"chef_id": int64(2), "date": "2025-06-01", "time": "19:00", "status": bson.M{"$in": []string{"pending", "chef_confirmed"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reservationQuery(tt.filter))
		})
	}
}

func TestCreateStoreIndexes_dbNil(t *testing.T) {
	oldDB := DB
	DB = nil
	defer func() { DB = oldDB }()

	assert.Error(t, CreateStoreIndexes())
}

// unreachableDB retourne une base dont le serveur ne répond pas ; la sélection de serveur
// attendrait une minute sans le délai propre à chaque requête
func unreachableDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("attente du délai de requête")
	}
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(time.Minute))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client.Database("sahne_test")
}

func TestKVRepository_delaiParRequete(t *testing.T) {
	repo := NewKVRepository(unreachableDB(t), "default")

	start := time.Now()
	_, _, err := repo.Get(context.Background(), "@sahne:auth_token")
	require.Error(t, err)
	assert.Less(t, time.Since(start), queryTimeout+5*time.Second)
}

func TestUserRepository_delaiParRequete(t *testing.T) {
	repo := NewUserRepository(unreachableDB(t))

	start := time.Now()
	_, err := repo.FindByID(context.Background(), 1)
	require.Error(t, err)
	assert.Less(t, time.Since(start), queryTimeout+5*time.Second)
}
