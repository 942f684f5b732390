package services

import (
	"context"
	"net/http"
	"strings"

	"sahne-client/apierror"
	"sahne-client/constants"
	"sahne-client/models"
)

// AuthService gère les appels d'authentification
type AuthService struct {
	api Requester
}

// NewAuthService crée une nouvelle instance
func NewAuthService(api Requester) *AuthService {
	return &AuthService{api: api}
}

// Login authentifie un utilisateur et retourne {token, user}
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.api.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return checkAuthResponse(&resp)
}

// Register crée un compte et retourne {token, user}
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.api.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return checkAuthResponse(&resp)
}

// Logout invalide le jeton côté serveur
func (s *AuthService) Logout(ctx context.Context) error {
	return s.api.Post(ctx, "/auth/logout", nil, nil)
}

// GetCurrentUser récupère l'utilisateur authentifié
func (s *AuthService) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var resp models.CurrentUserResponse
	if err := s.api.Get(ctx, "/auth/user", nil, &resp); err != nil {
		return nil, err
	}
	if resp.User.ID == 0 {
		return nil, apierror.Business(http.StatusOK, constants.ErrUnexpected)
	}
	return &resp.User, nil
}

// ForgotPassword demande l'envoi d'un email de réinitialisation
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp models.MessageResponse
	req := models.ForgotPasswordRequest{Email: strings.TrimSpace(email)}
	if err := s.api.Post(ctx, "/auth/forgot-password", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Une réponse sans jeton ou sans utilisateur ne peut pas ouvrir de session
func checkAuthResponse(resp *models.AuthResponse) (*models.AuthResponse, error) {
	if resp.Token == "" || resp.User.ID == 0 {
		return nil, apierror.Business(http.StatusOK, constants.ErrUnexpected)
	}
	return resp, nil
}
