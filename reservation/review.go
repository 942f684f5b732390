package reservation

import (
	"strings"

	"sahne-client/apierror"
	"sahne-client/constants"
	"sahne-client/models"
	"sahne-client/utils"
)

// ReviewForm est le formulaire d'avis d'une réservation terminée
type ReviewForm struct {
	Ratings models.Ratings
	Comment string
}

// UniformRatings applique la même note aux quatre dimensions
func UniformRatings(n int) models.Ratings {
	return models.Ratings{FoodQuality: n, Presentation: n, Professionalism: n, ValueForMoney: n}
}

// Validate vérifie le formulaire avant tout appel réseau
func (f ReviewForm) Validate(r models.Reservation) error {
	if !CanReview(r) {
		return apierror.ClientValidation(constants.ErrCannotReview, nil)
	}

	fields := utils.FieldErrors{}
	for field, value := range f.Ratings.Values() {
		fields.Add(utils.ValidateRating(field, value))
	}
	comment := strings.TrimSpace(f.Comment)
	if comment == "" {
		fields.Set("comment", constants.MsgCommentRequired)
	}
	fields.Add(utils.ValidateMaxLength("comment", comment, utils.MaxTextLength))
	return fields.Err()
}

// Request construit le corps de POST /reservations/{id}/review
func (f ReviewForm) Request(reservationID int64) models.CreateReviewRequest {
	return models.CreateReviewRequest{
		ReservationID: reservationID,
		Ratings:       f.Ratings,
		Comment:       strings.TrimSpace(f.Comment),
	}
}

// ValidateReply vérifie qu'un chef peut encore répondre à l'avis
func ValidateReply(review models.Review, reply string) error {
	if review.HasReply() {
		return apierror.ClientValidation(constants.ErrAlreadyReplied, nil)
	}
	fields := utils.FieldErrors{}
	fields.Add(utils.ValidateRequired("reply", reply))
	fields.Add(utils.ValidateMaxLength("reply", strings.TrimSpace(reply), utils.MaxTextLength))
	return fields.Err()
}
