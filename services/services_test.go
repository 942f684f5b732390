package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sahne-client/api"
	"sahne-client/apierror"
	"sahne-client/constants"
	"sahne-client/models"
	"sahne-client/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest garde la trace du dernier appel reçu par le serveur de test
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]interface{}
}

func newTestAPI(t *testing.T, status int, response string) (*api.Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.RawQuery
		rec.Body = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 5*time.Second, storage.NewMemoryStore()), rec
}

func TestAuthService_Login(t *testing.T) {
	client, rec := newTestAPI(t, http.StatusOK, `{"token":"T","user":{"id":7,"name":"Ayşe","email":"a@b.co","role":"client"}}`)

	resp, err := NewAuthService(client).Login(context.Background(), models.LoginRequest{Email: "a@b.co", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "T", resp.Token)
	assert.Equal(t, int64(7), resp.User.ID)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/auth/login", rec.Path)
	assert.Equal(t, "a@b.co", rec.Body["email"])
}

func TestAuthService_LoginSansJeton(t *testing.T) {
	client, _ := newTestAPI(t, http.StatusOK, `{"user":{"id":7}}`)

	_, err := NewAuthService(client).Login(context.Background(), models.LoginRequest{})
	assert.True(t, apierror.IsKind(err, apierror.KindBusiness))
}

func TestAuthService_Register(t *testing.T) {
	client, rec := newTestAPI(t, http.StatusCreated, `{"token":"T2","user":{"id":8,"role":"chef"}}`)

	resp, err := NewAuthService(client).Register(context.Background(), models.RegisterRequest{
		Name: "Chef", Email: "c@d.co", Phone: "05321234567",
		Password: "password123", PasswordConfirmation: "password123", Role: models.RoleChef,
	})
	require.NoError(t, err)
	assert.True(t, resp.User.IsChef())
	assert.Equal(t, "/auth/register", rec.Path)
	assert.Equal(t, "password123", rec.Body["password_confirmation"])
	assert.Equal(t, "chef", rec.Body["role"])
}

func TestAuthService_GetCurrentUserEtLogout(t *testing.T) {
	client, rec := newTestAPI(t, http.StatusOK, `{"user":{"id":3,"name":"Can"}}`)
	svc := NewAuthService(client)

	user, err := svc.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Can", user.Name)
	assert.Equal(t, "/auth/user", rec.Path)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, "/auth/logout", rec.Path)
	assert.Equal(t, http.MethodPost, rec.Method)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	client, rec := newTestAPI(t, http.StatusOK, `{"message":"Lien envoyé"}`)

	msg, err := NewAuthService(client).ForgotPassword(context.Background(), " a@b.co ")
	require.NoError(t, err)
	assert.Equal(t, "Lien envoyé", msg)
	assert.Equal(t, "a@b.co", rec.Body["email"])
}

func TestChefService_GetChefs(t *testing.T) {
	client, rec := newTestAPI(t, http.StatusOK, `{"data":[{"id":1,"rating":4.9,"user":{"name":"Mehmet Yılmaz"}}],"meta":{"current_page":1,"last_page":3,"per_page":10,"total":25}}`)

	min := 1500.0
	resp, err := NewChefService(client).GetChefs(context.Background(), models.ChefFilters{MinPrice: &min, Page: 1})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Mehmet Yılmaz", resp.Data[0].Name())
	// La pagination est transmise sans modification
	assert.Equal(t, models.PaginationMeta{CurrentPage: 1, LastPage: 3, PerPage: 10, Total: 25}, resp.Meta)
	assert.True(t, resp.Meta.HasNextPage())
	assert.Equal(t, "/chefs", rec.Path)
	assert.Contains(t, rec.Query, "min_price=1500")
}

func TestChefService_GetChefByID(t *testing.T) {
	t.Run("profil correspondant", func(t *testing.T) {
		client, rec := newTestAPI(t, http.StatusOK, `{"data":{"id":2,"title":"Chef italien","packages":[{"id":4,"price_per_person":2200,"is_active":true}]}}`)
		profile, err := NewChefService(client).GetChefByID(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), profile.ID)
		assert.Len(t, profile.ActivePackages(), 1)
		assert.Equal(t, "/chefs/2", rec.Path)
	})

	t.Run("profil différent", func(t *testing.T) {
		client, _ := newTestAPI(t, http.StatusOK, `{"data":{"id":9}}`)
		_, err := NewChefService(client).GetChefByID(context.Background(), 2)
		require.Error(t, err)
		assert.Equal(t, constants.ErrChefMismatch, apierror.Message(err, ""))
	})

	t.Run("chef introuvable", func(t *testing.T) {
		client, _ := newTestAPI(t, http.StatusNotFound, `{"message":"Chef introuvable"}`)
		_, err := NewChefService(client).GetChefByID(context.Background(), 2)
		apiErr, ok := apierror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}

func TestChefService_SearchChefs(t *testing.T) {
	client, rec := newTestAPI(t, http.StatusOK, `{"chefs":[{"id":1},{"id":3}]}`)

	chefs, err := NewChefService(client).SearchChefs(context.Background(), "sushi")
	require.NoError(t, err)
	assert.Len(t, chefs, 2)
	assert.Equal(t, "/chefs/search", rec.Path)
	assert.Equal(t, "query=sushi", rec.Query)
}

func TestReservationService_Lecture(t *testing.T) {
	t.Run("liste filtrée", func(t *testing.T) {
		client, rec := newTestAPI(t, http.StatusOK, `{"reservations":[{"id":1,"status":"pending","date":"2030-01-01","time":"19:00"}]}`)
		list, err := NewReservationService(client).GetMyReservations(context.Background(), models.StatusPending)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "status=pending", rec.Query)
	})

	t.Run("liste complète", func(t *testing.T) {
		client, rec := newTestAPI(t, http.StatusOK, `{"reservations":[]}`)
		_, err := NewReservationService(client).GetMyReservations(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, rec.Query)
	})

	t.Run("détail", func(t *testing.T) {
		client, rec := newTestAPI(t, http.StatusOK, `{"reservation":{"id":5,"reservation_date":"2030-01-01T19:30:00","status":"confirmed"}}`)
		r, err := NewReservationService(client).GetReservationByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "19:30", r.Time)
		assert.Equal(t, "/reservations/5", rec.Path)
	})
}

func TestReservationService_CreateReservation(t *testing.T) {
	client, rec := newTestAPI(t, http.StatusCreated, `{"message":"Réservation créée","data":{"id":12,"status":"pending","total_price":5000}}`)

	req := models.CreateReservationRequest{
		ChefProfileID:       1,
		ExperiencePackageID: 1,
		Date:                "2030-05-10T19:00:00",
		Time:                "19:00",
		GuestCount:          2,
		Address:             "Bebek, İstanbul",
		AddressType:         models.AddressVilla,
		SpecialOccasion:     "Birthday",
	}
	resp, err := NewReservationService(client).CreateReservation(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.Data.ID)
	assert.Equal(t, "Réservation créée", resp.Message)
	assert.Equal(t, "2030-05-10T19:00:00", rec.Body["date"])
	assert.Equal(t, "villa", rec.Body["address_type"])
	assert.NotContains(t, rec.Body, "dietary_notes")
	assert.NotContains(t, rec.Body, "allergies")
}

func TestReservationService_Transitions(t *testing.T) {
	client, rec := newTestAPI(t, http.StatusOK, `{"message":"ok"}`)
	svc := NewReservationService(client)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		path string
	}{
		{"annulation", func() error { return svc.CancelReservation(ctx, 4) }, "/reservations/4/cancel"},
		{"confirmation", func() error { return svc.ConfirmReservation(ctx, 4) }, "/reservations/4/confirm"},
		{"refus", func() error { return svc.RejectReservation(ctx, 4, "Indisponible") }, "/reservations/4/reject"},
		{"fin de prestation", func() error { return svc.CompleteReservation(ctx, 4) }, "/reservations/4/complete"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, http.MethodPost, rec.Method)
			assert.Equal(t, tt.path, rec.Path)
		})
	}

	require.NoError(t, svc.RejectReservation(ctx, 4, "Indisponible"))
	assert.Equal(t, "Indisponible", rec.Body["reason"])
}

func TestReservationService_Conflit(t *testing.T) {
	client, _ := newTestAPI(t, http.StatusConflict, `{"message":"Ce créneau est déjà réservé"}`)

	_, err := NewReservationService(client).CreateReservation(context.Background(), models.CreateReservationRequest{})
	apiErr, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, apierror.KindBusiness, apiErr.Kind)
	assert.Equal(t, "Ce créneau est déjà réservé", apiErr.Message)
}

func TestReviewService(t *testing.T) {
	ctx := context.Background()

	t.Run("création", func(t *testing.T) {
		client, rec := newTestAPI(t, http.StatusCreated, `{"review":{"id":1,"reservation_id":9,"overall_rating":4.5}}`)
		review, err := NewReviewService(client).CreateReview(ctx, models.CreateReviewRequest{
			ReservationID: 9,
			Ratings:       models.Ratings{FoodQuality: 5, Presentation: 4, Professionalism: 5, ValueForMoney: 4},
			Comment:       "Excellent",
		})
		require.NoError(t, err)
		assert.Equal(t, 4.5, review.OverallRating)
		assert.Equal(t, "/reservations/9/review", rec.Path)
		assert.EqualValues(t, 5, rec.Body["food_quality"])
	})

	t.Run("réponse du chef", func(t *testing.T) {
		client, rec := newTestAPI(t, http.StatusOK, `{"review":{"id":1,"chef_reply":"Merci !"}}`)
		review, err := NewReviewService(client).ReplyToReview(ctx, 1, "Merci !")
		require.NoError(t, err)
		assert.True(t, review.HasReply())
		assert.Equal(t, "/reviews/1/reply", rec.Path)
		assert.Equal(t, "Merci !", rec.Body["reply"])
	})

	t.Run("avis d'un chef", func(t *testing.T) {
		client, rec := newTestAPI(t, http.StatusOK, `{"reviews":[{"id":1},{"id":2}]}`)
		reviews, err := NewReviewService(client).GetChefReviews(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, reviews, 2)
		assert.Equal(t, "/chefs/3/reviews", rec.Path)
	})
}
