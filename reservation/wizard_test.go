package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"sahne-client/apierror"
	"sahne-client/constants"
	"sahne-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var istanbul = time.FixedZone("TRT", 3*3600)

// fakeCreator enregistre les demandes reçues
type fakeCreator struct {
	mu       sync.Mutex
	calls    int
	requests []models.CreateReservationRequest
	err      error
	block    chan struct{}
}

func (f *fakeCreator) CreateReservation(_ context.Context, req models.CreateReservationRequest) (*models.CreateReservationResponse, error) {
	f.mu.Lock()
	f.calls++
	f.requests = append(f.requests, req)
	err := f.err
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return &models.CreateReservationResponse{
		Message: "Réservation créée",
		Data:    models.Reservation{ID: 42, Status: models.StatusPending},
	}, nil
}

func testChef() models.ChefProfile {
	photo := "https://cdn.sahne.com/chefs/1.jpg"
	return models.ChefProfile{
		ID:           1,
		User:         models.ChefUser{ID: 10, Name: "Mehmet Yılmaz"},
		ProfileImage: &photo,
		Packages: []models.ExperiencePackage{
			{ID: 1, DisplayName: "Ottoman Feast", PricePerPerson: 1000, IsActive: true},
			{ID: 2, DisplayName: "Modern Turkish", PricePerPerson: 1800, IsActive: false},
		},
	}
}

func newTestWizard(t *testing.T, creator *fakeCreator) *Wizard {
	t.Helper()
	flow := NewFlow(creator, istanbul)
	flow.now = func() time.Time { return time.Date(2025, 5, 10, 15, 0, 0, 0, istanbul) }
	w, err := flow.Start(testChef(), 1)
	require.NoError(t, err)
	return w
}

// toConfirm remplit les deux premières étapes
func toConfirm(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.SelectDate("2025-05-20"))
	require.NoError(t, w.SelectTime("19:30"))
	require.NoError(t, w.ContinueToDetails())
	require.NoError(t, w.SetGuestCount(4))
	require.NoError(t, w.SetEventType("Birthday"))
	require.NoError(t, w.SetAddress("  Bebek Mah. 12, İstanbul "))
	require.NoError(t, w.ContinueToConfirm())
}

func TestStart(t *testing.T) {
	flow := NewFlow(&fakeCreator{}, istanbul)

	w, err := flow.Start(testChef(), 1)
	require.NoError(t, err)
	d := w.Draft()
	assert.Equal(t, StepDate, w.Step())
	assert.Equal(t, "Mehmet Yılmaz", d.ChefName)
	assert.Equal(t, "Ottoman Feast", d.PackageName)
	assert.Equal(t, 1000.0, d.PackagePrice)
	assert.Equal(t, DefaultGuests, d.GuestCount)
	assert.Equal(t, models.AddressHome, d.AddressType)
	assert.Equal(t, Dinner, w.MealPeriod())

	_, err = flow.Start(testChef(), 2)
	assert.Equal(t, constants.ErrPackageInactive, apierror.Message(err, ""))

	_, err = flow.Start(testChef(), 99)
	assert.Equal(t, constants.ErrPackageNotFound, apierror.Message(err, ""))
}

func TestSelectDate_bornes(t *testing.T) {
	w := newTestWizard(t, &fakeCreator{})

	min, max := w.DateRange()
	assert.Equal(t, "2025-05-11", min.Format(DateLayout))
	assert.Equal(t, "2025-08-10", max.Format(DateLayout))
	assert.Equal(t, "2025-05-11", w.Draft().Date, "date par défaut: demain")

	tests := []struct {
		date    string
		wantErr bool
	}{
		{"2025-05-10", true},
		{"2025-05-11", false},
		{"2025-08-10", false},
		{"2025-08-11", true},
		{"10/05/2025", true},
	}
	for _, tt := range tests {
		err := w.SelectDate(tt.date)
		assert.Equal(t, tt.wantErr, err != nil, "SelectDate(%s)", tt.date)
		if tt.wantErr && err != nil {
			assert.True(t, apierror.IsKind(err, apierror.KindClientValidation))
		}
	}
}

func TestTimeSlots(t *testing.T) {
	assert.Equal(t, []string{"12:00", "12:30", "13:00", "13:30", "14:00"}, TimeSlots(Lunch))
	assert.Len(t, TimeSlots(Dinner), 9)
	assert.Equal(t, "18:00", TimeSlots(Dinner)[0])
	assert.Equal(t, "22:00", TimeSlots(Dinner)[8])

	w := newTestWizard(t, &fakeCreator{})
	assert.Error(t, w.SelectTime("12:30"), "un créneau du midi est refusé au dîner")
	require.NoError(t, w.SetMealPeriod(Lunch))
	assert.NoError(t, w.SelectTime("12:30"))
}

func TestChangementDeServiceEffaceLHeure(t *testing.T) {
	w := newTestWizard(t, &fakeCreator{})

	require.NoError(t, w.SelectDate("2025-05-20"))
	require.NoError(t, w.SelectTime("19:00"))
	require.NoError(t, w.SetMealPeriod(Lunch))

	assert.Empty(t, w.Draft().Time)
	err := w.ContinueToDetails()
	assert.Equal(t, constants.MsgSelectTime, apierror.Message(err, ""))
	assert.Equal(t, StepDate, w.Step())

	require.NoError(t, w.SelectTime("13:00"))
	assert.NoError(t, w.ContinueToDetails())
}

func TestChangementDeDateEffaceLHeure(t *testing.T) {
	w := newTestWizard(t, &fakeCreator{})

	require.NoError(t, w.SelectTime("19:00"))
	require.NoError(t, w.SelectDate("2025-05-21"))
	assert.Empty(t, w.Draft().Time)

	// Même service : l'heure reste choisie
	require.NoError(t, w.SelectTime("20:00"))
	require.NoError(t, w.SetMealPeriod(Dinner))
	assert.Equal(t, "20:00", w.Draft().Time)
}

func TestGuestCount_bornes(t *testing.T) {
	w := newTestWizard(t, &fakeCreator{})
	require.NoError(t, w.SelectTime("19:00"))
	require.NoError(t, w.ContinueToDetails())

	assert.False(t, w.DecrementGuests(), "décrémenter depuis 2 est sans effet")
	assert.Equal(t, 2, w.Draft().GuestCount)

	for i := 0; i < 10; i++ {
		assert.True(t, w.IncrementGuests())
	}
	assert.Equal(t, 12, w.Draft().GuestCount)
	assert.False(t, w.IncrementGuests(), "onzième incrément sans effet")
	assert.False(t, w.IncrementGuests(), "douzième incrément sans effet")
	assert.Equal(t, 12, w.Draft().GuestCount)

	require.NoError(t, w.SetGuestCount(40))
	assert.Equal(t, MaxGuests, w.Draft().GuestCount)
	require.NoError(t, w.SetGuestCount(0))
	assert.Equal(t, MinGuests, w.Draft().GuestCount)
}

func TestDetails_validation(t *testing.T) {
	w := newTestWizard(t, &fakeCreator{})
	require.NoError(t, w.SelectTime("19:00"))
	require.NoError(t, w.ContinueToDetails())

	err := w.ContinueToConfirm()
	apiErr, ok := apierror.As(err)
	require.True(t, ok)
	assert.Equal(t, constants.MsgSelectEventType, apiErr.FieldError("event_type"))
	assert.Equal(t, constants.MsgEnterAddress, apiErr.FieldError("address"))

	assert.Error(t, w.SetEventType("Wedding"))
	assert.Error(t, w.SetAddressType("castle"))
	_, err = w.ToggleDietary("Carnivore")
	assert.Error(t, err)

	on, err := w.ToggleDietary("Vegan")
	require.NoError(t, err)
	assert.True(t, on)
	_, _ = w.ToggleDietary("Halal")
	on, _ = w.ToggleDietary("Vegan")
	assert.False(t, on)
	assert.Equal(t, []string{"Halal"}, w.Draft().DietaryRestrictions)

	// Une option répétée reste sélectionnée une seule fois
	require.NoError(t, w.SetDietary([]string{"Vegan", "Halal", "Vegan"}))
	assert.Equal(t, []string{"Vegan", "Halal"}, w.Draft().DietaryRestrictions)
	assert.Error(t, w.SetDietary([]string{"Vegan", "Carnivore"}))
	assert.Equal(t, []string{"Vegan", "Halal"}, w.Draft().DietaryRestrictions, "saisie invalide sans effet")

	truncated, err := w.SetSpecialRequests(strings.Repeat("ğ", 600))
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Equal(t, 500, len([]rune(w.Draft().SpecialRequests)))

	require.NoError(t, w.SetEventType("Anniversary"))
	require.NoError(t, w.SetAddress("   "))
	assert.Error(t, w.ContinueToConfirm(), "une adresse blanche est refusée")
}

func TestTotal_recalcule(t *testing.T) {
	w := newTestWizard(t, &fakeCreator{})
	toConfirm(t, w)

	assert.Equal(t, 4000.0, w.Total())
}

func TestSubmit_conditionsRequises(t *testing.T) {
	creator := &fakeCreator{}
	w := newTestWizard(t, creator)
	toConfirm(t, w)

	assert.False(t, w.CanSubmit())
	_, err := w.Submit(context.Background())
	assert.Equal(t, constants.MsgAcceptTerms, apierror.Message(err, ""))
	assert.Equal(t, 0, creator.calls)
}

func TestSubmit_succes(t *testing.T) {
	creator := &fakeCreator{}
	w := newTestWizard(t, creator)
	toConfirm(t, w)
	require.NoError(t, w.AcceptTerms(true))
	assert.True(t, w.CanSubmit())

	res, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.ReservationID)
	assert.Equal(t, "Mehmet Yılmaz", res.ChefName)
	assert.Equal(t, StepSuccess, w.Step())
	assert.Equal(t, Draft{}, w.Draft(), "le brouillon est abandonné")
	assert.Equal(t, 1, creator.calls)

	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 1, creator.calls)

	got, ok := w.Result()
	assert.True(t, ok)
	assert.Equal(t, int64(42), got.ReservationID)
}

func TestSubmit_echecConserveLeBrouillon(t *testing.T) {
	creator := &fakeCreator{err: apierror.Business(409, "Ce créneau est déjà réservé")}
	w := newTestWizard(t, creator)
	toConfirm(t, w)
	require.NoError(t, w.AcceptTerms(true))
	before := w.Draft()

	_, err := w.Submit(context.Background())
	assert.Equal(t, "Ce créneau est déjà réservé", apierror.Message(err, ""))
	assert.Equal(t, StepConfirm, w.Step())
	assert.Equal(t, before, w.Draft())
	assert.True(t, w.CanSubmit(), "nouvel essai possible")

	creator.mu.Lock()
	creator.err = nil
	creator.mu.Unlock()
	_, err = w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, creator.calls)
}

func TestSubmit_unSeulEnvoiSimultane(t *testing.T) {
	creator := &fakeCreator{block: make(chan struct{})}
	w := newTestWizard(t, creator)
	toConfirm(t, w)
	require.NoError(t, w.AcceptTerms(true))

	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return !w.CanSubmit() }, time.Second, 5*time.Millisecond)
	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitting)
	assert.ErrorIs(t, w.Back(), ErrSubmitting)

	close(creator.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, creator.calls)
}

func TestBack(t *testing.T) {
	w := newTestWizard(t, &fakeCreator{})
	toConfirm(t, w)
	require.NoError(t, w.AcceptTerms(true))

	// Confirmation → détails : seule l'acceptation des conditions est perdue
	require.NoError(t, w.Back())
	assert.Equal(t, StepDetails, w.Step())
	assert.Equal(t, 4, w.Draft().GuestCount)
	require.NoError(t, w.ContinueToConfirm())
	assert.False(t, w.CanSubmit())

	// Détails → date : les saisies des détails sont abandonnées, date et heure restent
	require.NoError(t, w.Back())
	require.NoError(t, w.Back())
	d := w.Draft()
	assert.Equal(t, StepDate, w.Step())
	assert.Equal(t, DefaultGuests, d.GuestCount)
	assert.Empty(t, d.EventType)
	assert.Empty(t, d.Address)
	assert.Equal(t, "2025-05-20", d.Date)
	assert.Equal(t, "19:30", d.Time)

	// Depuis la première étape, la session est abandonnée
	require.NoError(t, w.Back())
	assert.Equal(t, StepAborted, w.Step())
	assert.ErrorIs(t, w.SelectTime("19:00"), ErrClosed)
	assert.ErrorIs(t, w.Back(), ErrClosed)
}

func TestAbort(t *testing.T) {
	creator := &fakeCreator{}
	w := newTestWizard(t, creator)
	toConfirm(t, w)
	w.Abort()

	assert.Equal(t, StepAborted, w.Step())
	assert.Equal(t, Draft{}, w.Draft())
	_, err := w.Submit(context.Background())
	assert.True(t, errors.Is(err, ErrClosed))
	assert.Equal(t, 0, creator.calls)
}

func TestWrongStep(t *testing.T) {
	w := newTestWizard(t, &fakeCreator{})
	assert.ErrorIs(t, w.SetAddress("x"), ErrWrongStep)
	assert.ErrorIs(t, w.AcceptTerms(true), ErrWrongStep)
	assert.False(t, w.IncrementGuests())
}

func TestBuildRequest_allerRetour(t *testing.T) {
	draft := Draft{
		ChefID:              1,
		ChefName:            "Mehmet Yılmaz",
		PackageID:           3,
		PackageName:         "Ottoman Feast",
		PackagePrice:        2500,
		Date:                "2025-05-20",
		Time:                "19:30",
		GuestCount:          6,
		EventType:           "Anniversary",
		SpecialRequests:     "Pas de coriandre",
		DietaryRestrictions: []string{"Vegetarian", "Nut-free"},
		Address:             "Bebek, İstanbul",
		AddressType:         models.AddressVilla,
	}

	data, err := json.Marshal(BuildRequest(draft))
	require.NoError(t, err)
	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &sent))

	assert.Equal(t, map[string]interface{}{
		"chef_profile_id":       float64(1),
		"experience_package_id": float64(3),
		"date":                  "2025-05-20T19:30:00",
		"time":                  "19:30",
		"guest_count":           float64(6),
		"address":               "Bebek, İstanbul",
		"address_type":          "villa",
		"allergies":             "Pas de coriandre",
		"dietary_notes":         "Vegetarian, Nut-free",
		"special_occasion":      "Anniversary",
	}, sent)

	// Sans restriction ni demande particulière, les champs sont omis
	draft.DietaryRestrictions = nil
	draft.SpecialRequests = ""
	draft.AddressType = ""
	data, _ = json.Marshal(BuildRequest(draft))
	sent = nil
	require.NoError(t, json.Unmarshal(data, &sent))
	assert.NotContains(t, sent, "dietary_notes")
	assert.NotContains(t, sent, "allergies")
	assert.Equal(t, "home", sent["address_type"])
}

func TestSubmit_requeteEnvoyee(t *testing.T) {
	creator := &fakeCreator{}
	w := newTestWizard(t, creator)
	toConfirm(t, w)
	require.NoError(t, w.AcceptTerms(true))
	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	req := creator.requests[0]
	assert.Equal(t, int64(1), req.ChefProfileID)
	assert.Equal(t, int64(1), req.ExperiencePackageID)
	assert.Equal(t, "2025-05-20T19:30:00", req.Date)
	assert.Equal(t, 4, req.GuestCount)
	assert.Equal(t, "Bebek Mah. 12, İstanbul", req.Address)
	assert.Equal(t, "Birthday", req.SpecialOccasion)
	assert.Empty(t, req.DietaryNotes)
}
