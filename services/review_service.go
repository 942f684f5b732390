package services

import (
	"context"
	"fmt"

	"sahne-client/models"
)

// ReviewService gère les avis et les réponses des chefs
type ReviewService struct {
	api Requester
}

// NewReviewService crée une nouvelle instance
func NewReviewService(api Requester) *ReviewService {
	return &ReviewService{api: api}
}

// GetChefReviews liste les avis publiés sur un chef
func (s *ReviewService) GetChefReviews(ctx context.Context, chefID int64) ([]models.Review, error) {
	var resp models.ReviewListResponse
	if err := s.api.Get(ctx, fmt.Sprintf("/chefs/%d/reviews", chefID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}

// CreateReview publie un avis sur une réservation terminée
func (s *ReviewService) CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	var resp models.ReviewResponse
	if err := s.api.Post(ctx, fmt.Sprintf("/reservations/%d/review", req.ReservationID), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Review, nil
}

// ReplyToReview publie la réponse du chef à un avis
func (s *ReviewService) ReplyToReview(ctx context.Context, reviewID int64, reply string) (*models.Review, error) {
	var resp models.ReviewResponse
	if err := s.api.Post(ctx, fmt.Sprintf("/reviews/%d/reply", reviewID), models.ReplyReviewRequest{Reply: reply}, &resp); err != nil {
		return nil, err
	}
	return &resp.Review, nil
}
