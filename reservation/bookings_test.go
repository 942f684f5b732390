package reservation

import (
	"testing"
	"time"

	"sahne-client/apierror"
	"sahne-client/constants"
	"sahne-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUpcoming(t *testing.T) {
	now := time.Date(2025, 5, 10, 15, 0, 0, 0, istanbul)

	tests := []struct {
		name string
		r    models.Reservation
		want bool
	}{
		{"confirmée passée", models.Reservation{Status: models.StatusConfirmed, Date: "2025-05-09", Time: "19:00"}, false},
		{"confirmée future", models.Reservation{Status: models.StatusConfirmed, Date: "2025-05-11", Time: "19:00"}, true},
		{"même jour, heure passée", models.Reservation{Status: models.StatusPending, Date: "2025-05-10", Time: "12:00"}, false},
		{"même jour, heure future", models.Reservation{Status: models.StatusChefConfirmed, Date: "2025-05-10", Time: "19:00"}, true},
		{"terminée future", models.Reservation{Status: models.StatusCompleted, Date: "2025-06-01", Time: "19:00"}, false},
		{"annulée future", models.Reservation{Status: models.StatusCancelled, Date: "2025-06-01", Time: "19:00"}, false},
		{"date illisible", models.Reservation{Status: models.StatusPending, Date: "bientôt"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUpcoming(tt.r, now, istanbul))
		})
	}
}

func TestSplitBookings(t *testing.T) {
	now := time.Date(2025, 5, 10, 15, 0, 0, 0, istanbul)
	list := []models.Reservation{
		{ID: 1, Status: models.StatusConfirmed, Date: "2025-05-01", Time: "19:00"},
		{ID: 2, Status: models.StatusPending, Date: "2025-06-01", Time: "19:00"},
		{ID: 3, Status: models.StatusRejected, Date: "2025-06-02", Time: "19:00"},
		{ID: 4, Status: models.StatusConfirmed, Date: "2025-06-03", Time: "12:30"},
	}

	upcoming, past := SplitBookings(list, now, istanbul)
	require.Len(t, upcoming, 2)
	require.Len(t, past, 2)
	assert.Equal(t, int64(2), upcoming[0].ID)
	assert.Equal(t, int64(4), upcoming[1].ID)
	assert.Equal(t, int64(1), past[0].ID)
	assert.Equal(t, int64(3), past[1].ID)
}

func TestStatusLabelEtTimeline(t *testing.T) {
	assert.Equal(t, "Pending", StatusLabel(models.StatusPending))
	assert.Equal(t, "Rejected", StatusLabel(models.StatusRejected))

	steps := Timeline(models.Reservation{Status: models.StatusCompleted})
	require.Len(t, steps, 3)
	for _, s := range steps {
		assert.True(t, s.Active, s.Label)
	}

	steps = Timeline(models.Reservation{Status: models.StatusPending})
	assert.True(t, steps[0].Active)
	assert.False(t, steps[1].Active)
	assert.Nil(t, steps[1].Date)
}

func TestReviewForm(t *testing.T) {
	completed := models.Reservation{ID: 9, Status: models.StatusCompleted}

	t.Run("formulaire valide", func(t *testing.T) {
		form := ReviewForm{Ratings: UniformRatings(5), Comment: "  Inoubliable  "}
		require.NoError(t, form.Validate(completed))
		req := form.Request(completed.ID)
		assert.Equal(t, "Inoubliable", req.Comment)
		assert.Equal(t, 5.0, req.Ratings.Average())
	})

	t.Run("réservation non terminée", func(t *testing.T) {
		form := ReviewForm{Ratings: UniformRatings(5), Comment: "ok"}
		err := form.Validate(models.Reservation{Status: models.StatusConfirmed})
		assert.Equal(t, constants.ErrCannotReview, apierror.Message(err, ""))
	})

	t.Run("notes et commentaire invalides", func(t *testing.T) {
		form := ReviewForm{Ratings: models.Ratings{FoodQuality: 0, Presentation: 6, Professionalism: 3, ValueForMoney: 3}}
		err := form.Validate(completed)
		apiErr, ok := apierror.As(err)
		require.True(t, ok)
		assert.Equal(t, constants.MsgInvalidRating, apiErr.FieldError("food_quality"))
		assert.Equal(t, constants.MsgInvalidRating, apiErr.FieldError("presentation"))
		assert.Empty(t, apiErr.FieldError("professionalism"))
		assert.Equal(t, constants.MsgCommentRequired, apiErr.FieldError("comment"))
	})
}

func TestValidateReply(t *testing.T) {
	reply := "Merci beaucoup !"
	assert.NoError(t, ValidateReply(models.Review{ID: 1}, reply))
	assert.Error(t, ValidateReply(models.Review{ID: 1}, "   "))

	err := ValidateReply(models.Review{ID: 1, ChefReply: &reply}, "Encore merci")
	assert.Equal(t, constants.ErrAlreadyReplied, apierror.Message(err, ""))
}
