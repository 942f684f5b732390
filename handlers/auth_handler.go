package handlers

import (
	"log"
	"net/http"
	"strings"

	"sahne-client/constants"
	"sahne-client/middleware"
	"sahne-client/mockdata"
	"sahne-client/models"
	"sahne-client/utils"
)

// AuthHandler gère les requêtes d'authentification
type AuthHandler struct {
	store     *mockdata.Store
	jwtSecret string
}

// NewAuthHandler crée une nouvelle instance de AuthHandler
func NewAuthHandler(store *mockdata.Store, jwtSecret string) *AuthHandler {
	return &AuthHandler{store: store, jwtSecret: jwtSecret}
}

// Register gère l'inscription d'un nouvel utilisateur
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Valider les données
	if fields := validateRegisterRequest(&req); !fields.Empty() {
		utils.RespondValidationError(w, fields)
		return
	}

	user, err := h.store.CreateUser(r.Context(), req)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	token, err := utils.GenerateToken(user, h.jwtSecret)
	if err != nil {
		log.Printf("Erreur lors de la génération du token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Nouvel utilisateur inscrit: %s (%s)", user.Email, user.Role)
	utils.RespondJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

// Login gère la connexion d'un utilisateur
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := utils.FieldErrors{}
	fields.Add(utils.ValidateEmail(req.Email))
	fields.Add(utils.ValidateRequired("password", req.Password))
	if !fields.Empty() {
		utils.RespondValidationError(w, fields)
		return
	}

	user, err := h.store.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	token, err := utils.GenerateToken(user, h.jwtSecret)
	if err != nil {
		log.Printf("Erreur lors de la génération du token: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
		return
	}

	log.Printf("✓ Connexion réussie: %s", user.Email)
	utils.RespondJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}

// Logout termine la session (les jetons sont sans état : rien à révoquer)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.RespondMessage(w, http.StatusOK, "Déconnexion réussie")
}

// CurrentUser retourne l'utilisateur du jeton
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
		return
	}

	user, err := h.store.FindUserByID(r.Context(), claims.UserID)
	if mockdata.IsNotFound(err) {
		// Compte supprimé depuis l'émission du jeton
		utils.RespondError(w, http.StatusUnauthorized, constants.ErrInvalidToken)
		return
	}
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, models.CurrentUserResponse{User: user})
}

// ForgotPassword accepte une demande de réinitialisation sans révéler si le compte existe
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fields := utils.FieldErrors{}
	fields.Add(utils.ValidateEmail(req.Email))
	if !fields.Empty() {
		utils.RespondValidationError(w, fields)
		return
	}

	exists, err := h.store.EmailExists(r.Context(), req.Email)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if exists {
		log.Printf("📧 Lien de réinitialisation demandé pour %s", strings.ToLower(strings.TrimSpace(req.Email)))
	}
	utils.RespondMessage(w, http.StatusOK, "Si un compte existe pour cet email, un lien de réinitialisation a été envoyé")
}

// validateRegisterRequest valide les données d'inscription
func validateRegisterRequest(req *models.RegisterRequest) utils.FieldErrors {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = utils.NormalizePhone(req.Phone)
	if req.Role == "" {
		req.Role = models.RoleClient
	}

	fields := utils.FieldErrors{}
	fields.Add(utils.ValidateRequired("name", req.Name))
	fields.Add(utils.ValidateEmail(req.Email))
	fields.Add(utils.ValidatePhone(req.Phone))
	fields.Add(utils.ValidatePassword(req.Password))
	fields.Add(utils.ValidatePasswordConfirmation(req.Password, req.PasswordConfirmation))
	if req.Role != models.RoleClient && req.Role != models.RoleChef {
		fields.Set("role", constants.MsgInvalidRole)
	}
	return fields
}
