// Package session est la source de vérité de "qui est connecté" : il persiste
// le couple jeton/utilisateur et en déduit les redirections.
package session

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"sahne-client/apierror"
	"sahne-client/constants"
	"sahne-client/models"
	"sahne-client/storage"
	"sahne-client/utils"
)

// AuthAPI regroupe les appels d'authentification utilisés par le contrôleur
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
}

// Controller possède l'utilisateur en mémoire et le stockage de session.
// Les méthodes qui écrivent la session sont sérialisées par opMu ; Invalidate
// ne prend que mu pour pouvoir être appelé depuis un appel réseau en cours.
type Controller struct {
	store storage.Store
	auth  AuthAPI

	opMu sync.Mutex

	mu        sync.RWMutex
	state     State
	user      *models.User
	listeners []func(State)
}

// New crée un contrôleur dans l'état Unknown ; Load doit être appelé une fois
func New(store storage.Store, auth AuthAPI) *Controller {
	return &Controller{store: store, auth: auth, state: StateUnknown}
}

// Load relit la session persistée. Seul le premier appel a un effet.
func (c *Controller) Load(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.State() != StateUnknown {
		return nil
	}

	user, err := c.readStoredSession(ctx)
	if err != nil {
		log.Printf("⚠️ Lecture de la session impossible: %v", err)
	}
	if user != nil {
		log.Printf("✓ Session restaurée pour %s", user.Email)
	}
	c.setUser(user)
	return err
}

// readStoredSession retourne l'utilisateur persisté si le couple jeton/utilisateur est complet et lisible
func (c *Controller) readStoredSession(ctx context.Context) (*models.User, error) {
	token, hasToken, err := c.store.Get(ctx, constants.StorageKeyAuthToken)
	if err != nil {
		return nil, err
	}
	raw, hasUser, err := c.store.Get(ctx, constants.StorageKeyUserData)
	if err != nil {
		return nil, err
	}

	if !hasToken && !hasUser {
		return nil, nil
	}

	var user models.User
	if hasToken && token != "" && hasUser {
		if err := json.Unmarshal([]byte(raw), &user); err == nil && user.ID != 0 {
			return &user, nil
		}
		log.Println("⚠️ Utilisateur persisté illisible, session effacée")
	} else {
		log.Println("⚠️ Session persistée incomplète, session effacée")
	}

	// Un couple incomplet ou illisible ne doit pas survivre
	return nil, c.store.Remove(ctx, constants.StorageKeyAuthToken, constants.StorageKeyUserData)
}

// Login authentifie l'utilisateur et persiste la session
func (c *Controller) Login(ctx context.Context, req models.LoginRequest) error {
	req.Email = strings.TrimSpace(req.Email)

	fields := utils.FieldErrors{}
	fields.Add(utils.ValidateEmail(req.Email))
	fields.Add(utils.ValidateRequired("password", req.Password))
	if err := fields.Err(); err != nil {
		return err
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	resp, err := c.auth.Login(ctx, req)
	if err != nil {
		return err
	}
	return c.persist(ctx, resp)
}

// Register crée un compte client ou chef et persiste la session
func (c *Controller) Register(ctx context.Context, req models.RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = utils.NormalizePhone(req.Phone)
	if req.Role == "" {
		req.Role = models.RoleClient
	}

	if err := ValidateRegistration(req); err != nil {
		return err
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	resp, err := c.auth.Register(ctx, req)
	if err != nil {
		return err
	}
	return c.persist(ctx, resp)
}

// ValidateRegistration vérifie le formulaire d'inscription avant tout appel réseau
func ValidateRegistration(req models.RegisterRequest) error {
	fields := utils.FieldErrors{}
	fields.Add(utils.ValidateRequired("name", req.Name))
	fields.Add(utils.ValidateEmail(req.Email))
	fields.Add(utils.ValidatePhone(req.Phone))
	fields.Add(utils.ValidatePassword(req.Password))
	fields.Add(utils.ValidatePasswordConfirmation(req.Password, req.PasswordConfirmation))
	if req.Role != models.RoleClient && req.Role != models.RoleChef {
		fields.Set("role", constants.MsgInvalidRole)
	}
	return fields.Err()
}

// persist écrit jeton et utilisateur en une seule opération puis met à jour la mémoire
func (c *Controller) persist(ctx context.Context, resp *models.AuthResponse) error {
	data, err := json.Marshal(resp.User)
	if err != nil {
		return &apierror.Error{Kind: apierror.KindBusiness, Message: constants.ErrUnexpected, Err: err}
	}

	if err := c.store.SetMany(ctx, map[string]string{
		constants.StorageKeyAuthToken: resp.Token,
		constants.StorageKeyUserData:  string(data),
	}); err != nil {
		log.Printf("❌ Enregistrement de la session impossible: %v", err)
		return &apierror.Error{Kind: apierror.KindBusiness, Message: constants.ErrUnexpected, Err: err}
	}

	user := resp.User
	c.setUser(&user)
	log.Printf("✓ Connecté: %s (%s)", user.Email, user.Role)
	return nil
}

// Logout prévient le serveur si un jeton existe puis efface la session.
// Un second appel ne refait aucun appel réseau.
func (c *Controller) Logout(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.logout(ctx)
}

func (c *Controller) logout(ctx context.Context) error {
	token, err := storage.GetString(ctx, c.store, constants.StorageKeyAuthToken)
	if err != nil {
		log.Printf("⚠️ %v", err)
	}
	if token != "" {
		if err := c.auth.Logout(ctx); err != nil {
			log.Printf("⚠️ Déconnexion serveur ignorée: %v", err)
		}
	}

	// Effacement même si le contexte de l'appelant a expiré
	clearCtx := context.WithoutCancel(ctx)
	if err := c.store.Remove(clearCtx, constants.StorageKeyAuthToken, constants.StorageKeyUserData); err != nil {
		// La mémoire reste alignée sur le stockage
		log.Printf("❌ Effacement de la session impossible: %v", err)
		return &apierror.Error{Kind: apierror.KindBusiness, Message: constants.ErrUnexpected, Err: err}
	}

	c.setUser(nil)
	return nil
}

// RefreshUser recharge l'utilisateur depuis le serveur ; en cas d'échec la session est effacée
func (c *Controller) RefreshUser(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	token, err := storage.GetString(ctx, c.store, constants.StorageKeyAuthToken)
	if err != nil || token == "" {
		if logoutErr := c.logout(ctx); logoutErr != nil {
			return logoutErr
		}
		return &apierror.Error{Kind: apierror.KindUnauthorized, Message: constants.ErrSessionExpired, Err: err}
	}

	user, err := c.auth.GetCurrentUser(ctx)
	if err != nil {
		log.Printf("⚠️ Rafraîchissement de l'utilisateur impossible: %v", err)
		if logoutErr := c.logout(ctx); logoutErr != nil {
			log.Printf("❌ %v", logoutErr)
		}
		return err
	}

	return c.persist(ctx, &models.AuthResponse{Token: token, User: *user})
}

// Invalidate abandonne l'utilisateur en mémoire après un 401 (le stockage est déjà effacé)
func (c *Controller) Invalidate() {
	c.mu.RLock()
	authenticated := c.state == StateAuthenticated
	c.mu.RUnlock()
	if !authenticated {
		return
	}
	log.Println("🔒 Session invalidée par le serveur")
	c.setUser(nil)
}

// ForgotPassword demande un lien de réinitialisation
func (c *Controller) ForgotPassword(ctx context.Context, email string) (string, error) {
	fields := utils.FieldErrors{}
	fields.Add(utils.ValidateEmail(email))
	if err := fields.Err(); err != nil {
		return "", err
	}
	return c.auth.ForgotPassword(ctx, strings.TrimSpace(email))
}

// CompleteOnboarding mémorise que l'introduction a été vue
func (c *Controller) CompleteOnboarding(ctx context.Context) error {
	return storage.Set(ctx, c.store, constants.StorageKeyOnboardingCompleted, "true")
}

// OnboardingCompleted indique si l'introduction a déjà été vue
func (c *Controller) OnboardingCompleted(ctx context.Context) (bool, error) {
	value, err := storage.GetString(ctx, c.store, constants.StorageKeyOnboardingCompleted)
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

// User retourne une copie de l'utilisateur connecté (nil si anonyme)
func (c *Controller) User() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	user := *c.user
	return &user
}

// IsAuthenticated est vrai si et seulement si un utilisateur est présent
func (c *Controller) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user != nil
}

// IsLoading est vrai tant que la session persistée n'a pas été relue
func (c *Controller) IsLoading() bool {
	return c.State() == StateUnknown
}

// State retourne l'état courant
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// OnChange enregistre un écouteur appelé à chaque changement d'état
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Redirect applique la politique de redirection pour l'écran courant
func (c *Controller) Redirect(current Route) (Route, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.state == StateUnknown:
		return "", false
	case c.user == nil && !current.InAuthArea():
		return RouteLogin, true
	case c.user != nil && current.InAuthArea():
		return HomeFor(c.user), true
	}
	return "", false
}

// InitialRoute choisit le premier écran après le chargement
func (c *Controller) InitialRoute(ctx context.Context) (Route, error) {
	if c.IsLoading() {
		return RouteSplash, nil
	}
	if user := c.User(); user != nil {
		return HomeFor(user), nil
	}
	done, err := c.OnboardingCompleted(ctx)
	if err != nil {
		return RouteLogin, err
	}
	if !done {
		return RouteOnboarding, nil
	}
	return RouteLogin, nil
}

// setUser remplace l'utilisateur et notifie les écouteurs si l'état change
func (c *Controller) setUser(user *models.User) {
	c.mu.Lock()
	previous := c.state
	c.user = user
	if user != nil {
		c.state = StateAuthenticated
	} else {
		c.state = StateAnonymous
	}
	state := c.state
	listeners := append([]func(State){}, c.listeners...)
	c.mu.Unlock()

	if state == previous {
		return
	}
	for _, fn := range listeners {
		fn(state)
	}
}
