package mockdata

import (
	"context"
	"math"
	"strings"

	"sahne-client/constants"
	"sahne-client/models"
	"sahne-client/utils"
)

// CreateReview publie l'avis du client sur une réservation terminée (un seul par réservation)
func (s *Store) CreateReview(ctx context.Context, actor Actor, reservationID int64, req models.CreateReviewRequest) (models.Review, error) {
	if actor.Role != models.RoleClient {
		return models.Review{}, forbidden(constants.ErrClientOnly)
	}

	comment := strings.TrimSpace(req.Comment)
	fields := utils.FieldErrors{}
	for field, value := range req.Ratings.Values() {
		fields.Add(utils.ValidateRating(field, value))
	}
	fields.Add(utils.ValidateMaxLength("comment", comment, utils.MaxTextLength))
	if err := invalid(fields); err != nil {
		return models.Review{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.visibleReservation(ctx, actor, reservationID)
	if err != nil {
		return models.Review{}, err
	}
	if !r.CanReview() {
		return models.Review{}, conflict(constants.ErrCannotReview)
	}
	existing, err := s.repos.Reviews.FindByReservation(ctx, reservationID)
	if err != nil {
		return models.Review{}, err
	}
	if existing != nil {
		return models.Review{}, conflict(constants.ErrAlreadyReviewed)
	}

	id, err := s.repos.Sequences.Next(ctx, SequenceReviews)
	if err != nil {
		return models.Review{}, err
	}
	now := s.timestamp()
	review := &models.Review{
		ID:              id,
		ReservationID:   reservationID,
		ClientID:        r.ClientID,
		ChefID:          r.ChefID,
		FoodQuality:     req.FoodQuality,
		Presentation:    req.Presentation,
		Professionalism: req.Professionalism,
		ValueForMoney:   req.ValueForMoney,
		OverallRating:   req.Ratings.Average(),
		Comment:         optional(comment),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	client, err := s.repos.Users.FindByID(ctx, r.ClientID)
	if err != nil {
		return models.Review{}, err
	}
	if client != nil {
		review.Client = &models.ReviewClient{ID: client.ID, Name: client.Name}
	}
	if err := s.repos.Reviews.Create(ctx, review); err != nil {
		return models.Review{}, err
	}

	chef, err := s.repos.Chefs.FindByID(ctx, r.ChefID)
	if err != nil {
		return models.Review{}, err
	}
	if chef != nil {
		total := float64(chef.TotalReviews)
		chef.Rating = math.Round((chef.Rating*total+review.OverallRating)/(total+1)*10) / 10
		chef.TotalReviews++
		if err := s.repos.Chefs.Save(ctx, chef); err != nil {
			return models.Review{}, err
		}
	}

	return *review, nil
}

// ChefReviews retourne les avis d'un chef, plus récents d'abord
func (s *Store) ChefReviews(ctx context.Context, chefID int64) ([]models.Review, error) {
	chef, err := s.repos.Chefs.FindByID(ctx, chefID)
	if err != nil {
		return nil, err
	}
	if chef == nil {
		return nil, notFound(constants.ErrChefNotFound)
	}
	return s.repos.Reviews.FindByChef(ctx, chefID)
}

// ReplyToReview enregistre la réponse unique du chef concerné
func (s *Store) ReplyToReview(ctx context.Context, actor Actor, reviewID int64, reply string) (models.Review, error) {
	if actor.Role != models.RoleChef {
		return models.Review{}, forbidden(constants.ErrChefOnly)
	}

	reply = strings.TrimSpace(reply)
	fields := utils.FieldErrors{}
	fields.Add(utils.ValidateRequired("reply", reply))
	fields.Add(utils.ValidateMaxLength("reply", reply, utils.MaxTextLength))
	if err := invalid(fields); err != nil {
		return models.Review{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	review, err := s.repos.Reviews.FindByID(ctx, reviewID)
	if err != nil {
		return models.Review{}, err
	}
	chefID, ok, err := s.ChefIDForUser(ctx, actor.UserID)
	if err != nil {
		return models.Review{}, err
	}
	if review == nil || !ok || review.ChefID != chefID {
		return models.Review{}, notFound(constants.ErrReviewNotFound)
	}
	if review.HasReply() {
		return models.Review{}, conflict(constants.ErrAlreadyReplied)
	}

	review.ChefReply = &reply
	review.UpdatedAt = s.timestamp()
	if err := s.repos.Reviews.Update(ctx, review); err != nil {
		return models.Review{}, err
	}
	return *review, nil
}
