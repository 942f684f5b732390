package mockdata

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"sahne-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trt = time.FixedZone("TRT", 3*3600)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func newTestStore(t *testing.T) (*Store, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2025, 5, 10, 12, 0, 0, 0, trt)}
	return NewMemoryStore(trt, WithClock(c.now)), c
}

var ctx = context.Background()

func listChefs(t *testing.T, s *Store, q ChefQuery) ([]models.Chef, models.PaginationMeta) {
	t.Helper()
	chefs, meta, err := s.ListChefs(ctx, q)
	require.NoError(t, err)
	return chefs, meta
}

func listReservations(t *testing.T, s *Store, actor Actor, status models.ReservationStatus) []models.Reservation {
	t.Helper()
	list, err := s.ListReservations(ctx, actor, status)
	require.NoError(t, err)
	return list
}

func completePast(t *testing.T, s *Store) int {
	t.Helper()
	count, err := s.CompletePast(ctx)
	require.NoError(t, err)
	return count
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var storeErr *Error
	require.True(t, errors.As(err, &storeErr), "erreur inattendue: %v", err)
	return storeErr.Status
}

var (
	client = Actor{UserID: 1, Role: models.RoleClient}
	mehmet = Actor{UserID: 101, Role: models.RoleChef}
	elena  = Actor{UserID: 102, Role: models.RoleChef}
)

func bookingRequest() models.CreateReservationRequest {
	return models.CreateReservationRequest{
		ChefProfileID:       1,
		ExperiencePackageID: 1,
		Date:                "2025-06-01T19:00:00",
		Time:                "19:00",
		GuestCount:          4,
		Address:             "Bağdat Caddesi 12, Kadıköy",
		AddressType:         models.AddressHome,
		SpecialOccasion:     "birthday",
		DietaryNotes:        "vegetarian",
	}
}

func TestAuthenticate(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.Authenticate(ctx, "DEMO@sahne.com ", DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, user.Role)

	_, err = s.Authenticate(ctx, DemoClientEmail, "mauvais")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = s.Authenticate(ctx, "inconnu@sahne.com", DemoPassword)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestCreateUser(t *testing.T) {
	s, _ := newTestStore(t)

	user, err := s.CreateUser(ctx, models.RegisterRequest{Name: " Can ", Email: "Can@Example.com", Phone: "0532 111 22 33", Password: "secret123", Role: models.RoleChef})
	require.NoError(t, err)
	assert.Equal(t, "can@example.com", user.Email)
	assert.Equal(t, "05321112233", user.Phone)

	// Un nouveau chef n'apparaît pas dans la liste tant que son profil est inactif
	_, ok, err := s.ChefIDForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	chefs, meta := listChefs(t, s, ChefQuery{})
	assert.Len(t, chefs, 3)
	assert.Equal(t, 3, meta.Total)

	_, err = s.CreateUser(ctx, models.RegisterRequest{Name: "Autre", Email: "can@example.com", Password: "secret123", Role: models.RoleClient})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
	var storeErr *Error
	require.True(t, errors.As(err, &storeErr))
	assert.Contains(t, storeErr.Fields, "email")

	_, err = s.Authenticate(ctx, "can@example.com", "secret123")
	assert.NoError(t, err)
}

func TestListChefs(t *testing.T) {
	s, _ := newTestStore(t)
	price := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		query ChefQuery
		want  []int64
	}{
		{"sans filtre, tri par note", ChefQuery{}, []int64{3, 1, 2}},
		{"recherche texte", ChefQuery{Search: "ital"}, []int64{2}},
		{"recherche insensible à la casse", ChefQuery{Search: "MEHMET"}, []int64{1}},
		{"spécialité", ChefQuery{Specialties: []string{"mediterranean"}}, []int64{1, 2}},
		{"prix minimum", ChefQuery{MinPrice: price(2500)}, []int64{3}},
		{"prix maximum", ChefQuery{MaxPrice: price(2000)}, []int64{1}},
		{"note minimum", ChefQuery{MinRating: price(4.9)}, []int64{3, 1}},
		{"aucun résultat", ChefQuery{Search: "thaï"}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chefs, meta := listChefs(t, s, tt.query)
			ids := make([]int64, 0, len(chefs))
			for _, c := range chefs {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), meta.Total)
			assert.Equal(t, 1, meta.LastPage)
		})
	}
}

func TestListChefs_pageHorsLimite(t *testing.T) {
	s, _ := newTestStore(t)

	chefs, meta := listChefs(t, s, ChefQuery{Page: 2})
	assert.Empty(t, chefs)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.False(t, meta.HasNextPage())
}

func TestChefProfile(t *testing.T) {
	s, _ := newTestStore(t)

	profile, err := s.ChefProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Mehmet Yılmaz", profile.User.Name)
	assert.Len(t, profile.ActivePackages(), 2)
	assert.Equal(t, 8, profile.MaxGuests)

	_, err = s.ChefProfile(ctx, 99)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestCreateReservation(t *testing.T) {
	s, _ := newTestStore(t)

	r, err := s.CreateReservation(ctx, 1, bookingRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, r.Status)
	assert.Equal(t, "2025-06-01", r.Date)
	assert.Equal(t, "19:00", r.Time)
	assert.Equal(t, 10000.0, r.TotalPrice)
	require.NotNil(t, r.Chef)
	assert.Equal(t, "Mehmet Yılmaz", r.Chef.Name)
	require.NotNil(t, r.SpecialOccasion)
	assert.Equal(t, "birthday", *r.SpecialOccasion)

	// Même chef, même créneau
	_, err = s.CreateReservation(ctx, 1, bookingRequest())
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestCreateReservation_validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateReservationRequest)
		field  string
		status int
	}{
		{"date passée", func(r *models.CreateReservationRequest) { r.Date, r.Time = "2025-05-01T19:00:00", "19:00" }, "date", http.StatusUnprocessableEntity},
		{"date illisible", func(r *models.CreateReservationRequest) { r.Date, r.Time = "demain", "" }, "date", http.StatusUnprocessableEntity},
		{"trop d'invités", func(r *models.CreateReservationRequest) { r.GuestCount = 12 }, "guest_count", http.StatusUnprocessableEntity},
		{"adresse vide", func(r *models.CreateReservationRequest) { r.Address = "  " }, "address", http.StatusUnprocessableEntity},
		{"formule d'un autre chef", func(r *models.CreateReservationRequest) { r.ExperiencePackageID = 3 }, "experience_package_id", http.StatusUnprocessableEntity},
		{"chef inconnu", func(r *models.CreateReservationRequest) { r.ChefProfileID = 42 }, "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			req := bookingRequest()
			tt.mutate(&req)

			_, err := s.CreateReservation(ctx, 1, req)
			require.Error(t, err)
			assert.Equal(t, tt.status, statusOf(t, err))
			if tt.field != "" {
				var storeErr *Error
				require.True(t, errors.As(err, &storeErr))
				assert.Contains(t, storeErr.Fields, tt.field)
			}
		})
	}
}

func TestReservation_visibility(t *testing.T) {
	s, _ := newTestStore(t)
	r, err := s.CreateReservation(ctx, 1, bookingRequest())
	require.NoError(t, err)

	_, err = s.Reservation(ctx, client, r.ID)
	assert.NoError(t, err)
	_, err = s.Reservation(ctx, mehmet, r.ID)
	assert.NoError(t, err)
	_, err = s.Reservation(ctx, elena, r.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	assert.Len(t, listReservations(t, s, client, ""), 1)
	assert.Len(t, listReservations(t, s, client, models.StatusCompleted), 0)
	assert.Len(t, listReservations(t, s, elena, ""), 0)
}

func TestReservation_transitions(t *testing.T) {
	s, c := newTestStore(t)
	r, err := s.CreateReservation(ctx, 1, bookingRequest())
	require.NoError(t, err)

	_, err = s.ConfirmReservation(ctx, client, r.ID)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err), "un client ne confirme pas")

	_, err = s.RejectReservation(ctx, mehmet, r.ID, " ")
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))

	confirmed, err := s.ConfirmReservation(ctx, mehmet, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusChefConfirmed, confirmed.Status)

	_, err = s.CancelReservation(ctx, client, r.ID)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	// Le créneau n'est pas encore passé
	assert.Equal(t, 0, completePast(t, s))

	c.t = time.Date(2025, 6, 1, 19, 0, 0, 0, trt)
	assert.Equal(t, 1, completePast(t, s))
	done, err := s.Reservation(ctx, client, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)

	_, err = s.CompleteReservation(ctx, mehmet, r.ID)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestReservation_cancelAndReject(t *testing.T) {
	s, _ := newTestStore(t)
	first, err := s.CreateReservation(ctx, 1, bookingRequest())
	require.NoError(t, err)

	cancelled, err := s.CancelReservation(ctx, client, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// Le créneau annulé est de nouveau libre
	second, err := s.CreateReservation(ctx, 1, bookingRequest())
	require.NoError(t, err)

	rejected, err := s.RejectReservation(ctx, mehmet, second.ID, "Indisponible ce soir-là")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Indisponible ce soir-là", *rejected.RejectionReason)
}

func TestReviews(t *testing.T) {
	s, _ := newTestStore(t)
	r, err := s.CreateReservation(ctx, 1, bookingRequest())
	require.NoError(t, err)

	req := models.CreateReviewRequest{
		ReservationID: r.ID,
		Ratings:       models.Ratings{FoodQuality: 5, Presentation: 5, Professionalism: 4, ValueForMoney: 4},
		Comment:       "Soirée parfaite",
	}

	_, err = s.CreateReview(ctx, client, r.ID, req)
	assert.Equal(t, http.StatusConflict, statusOf(t, err), "réservation non terminée")

	_, err = s.ConfirmReservation(ctx, mehmet, r.ID)
	require.NoError(t, err)
	_, err = s.CompleteReservation(ctx, mehmet, r.ID)
	require.NoError(t, err)

	bad := req
	bad.FoodQuality = 6
	_, err = s.CreateReview(ctx, client, r.ID, bad)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))

	review, err := s.CreateReview(ctx, client, r.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 4.5, review.OverallRating)
	require.NotNil(t, review.Client)
	assert.Equal(t, "Ayşe Demir", review.Client.Name)

	_, err = s.CreateReview(ctx, client, r.ID, req)
	assert.Equal(t, http.StatusConflict, statusOf(t, err), "un seul avis par réservation")

	list, err := s.ChefReviews(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	chefs, _ := listChefs(t, s, ChefQuery{Search: "mehmet"})
	require.Len(t, chefs, 1)
	assert.Equal(t, 128, chefs[0].TotalReviews)

	_, err = s.ReplyToReview(ctx, elena, review.ID, "Merci")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	replied, err := s.ReplyToReview(ctx, mehmet, review.ID, " Merci beaucoup ")
	require.NoError(t, err)
	assert.True(t, replied.HasReply())
	assert.Equal(t, "Merci beaucoup", *replied.ChefReply)

	_, err = s.ReplyToReview(ctx, mehmet, review.ID, "Encore merci")
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestScheduler(t *testing.T) {
	s, _ := newTestStore(t)
	sc := NewScheduler(s)
	require.NoError(t, sc.Start())
	sc.completePastReservations()
	sc.Stop()
}
