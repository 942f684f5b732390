package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"sahne-client/apierror"
	"sahne-client/constants"
	"sahne-client/models"
)

// ChefService gère la consultation des chefs
type ChefService struct {
	api Requester
}

// NewChefService crée une nouvelle instance
func NewChefService(api Requester) *ChefService {
	return &ChefService{api: api}
}

// GetChefs retourne une page de chefs et la pagination du serveur telle quelle
func (s *ChefService) GetChefs(ctx context.Context, filters models.ChefFilters) (*models.ChefListResponse, error) {
	var resp models.ChefListResponse
	if err := s.api.Get(ctx, "/chefs", filters.Values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetChefByID retourne le profil détaillé et vérifie qu'il correspond à l'id demandé
func (s *ChefService) GetChefByID(ctx context.Context, id int64) (*models.ChefProfile, error) {
	var resp models.ChefProfileResponse
	if err := s.api.Get(ctx, fmt.Sprintf("/chefs/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data.ID != id {
		return nil, apierror.Business(0, constants.ErrChefMismatch)
	}
	return &resp.Data, nil
}

// SearchChefs recherche des chefs par texte libre
func (s *ChefService) SearchChefs(ctx context.Context, query string) ([]models.Chef, error) {
	var resp models.ChefSearchResponse
	params := url.Values{"query": {strings.TrimSpace(query)}}
	if err := s.api.Get(ctx, "/chefs/search", params, &resp); err != nil {
		return nil, err
	}
	return resp.Chefs, nil
}
