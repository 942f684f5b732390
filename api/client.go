// Package api est le point de sortie unique vers l'API SAHNE : il attache le
// jeton, normalise les erreurs et efface la session locale sur un 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"sahne-client/apierror"
	"sahne-client/constants"
	"sahne-client/models"
	"sahne-client/storage"

	"github.com/google/uuid"
)

const maxResponseSize = 10 << 20

// Client est le client HTTP de l'API
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      storage.Store

	mu             sync.RWMutex
	onUnauthorized []func()
}

// Option personnalise un Client
type Option func(*Client)

// WithHTTPClient remplace le client HTTP sous-jacent
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New crée un client pour baseURL (ex: https://api.sahne.com/api)
func New(baseURL string, timeout time.Duration, store storage.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL retourne l'URL de base configurée
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnUnauthorized enregistre un callback appelé après l'effacement de session dû à un 401
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

// Get exécute une requête GET
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post exécute une requête POST
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Do exécute une requête et décode la réponse JSON dans out (si non nil).
// Toute erreur retournée est une *apierror.Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	requestID := req.Header.Get(constants.HeaderRequestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("⚠️ %s %s -> aucune réponse (%s) [%s]: %v", method, path, time.Since(start), requestID, err)
		return apierror.Network(constants.ErrNoResponse, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return apierror.Network(constants.ErrNoResponse, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("⚠️ %s %s -> %d (%s) [%s]", method, path, resp.StatusCode, time.Since(start), requestID)
		return c.normalizeError(ctx, resp.StatusCode, data)
	}

	log.Printf("✓ %s %s -> %d (%s) [%s]", method, path, resp.StatusCode, time.Since(start), requestID)

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &apierror.Error{
			Kind:    apierror.KindBusiness,
			Status:  resp.StatusCode,
			Message: constants.ErrUnexpected,
			Err:     fmt.Errorf("décodage de la réponse %s %s: %w", method, path, err),
		}
	}
	return nil
}

// newRequest construit la requête et attache le jeton lu à chaque appel
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apierror.ClientValidation(constants.ErrInvalidData, nil)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &apierror.Error{Kind: apierror.KindNetwork, Message: constants.ErrNoResponse, Err: err}
	}
	req.Header.Set(constants.HeaderContentType, constants.HeaderApplicationJSON)
	req.Header.Set(constants.HeaderAccept, constants.HeaderApplicationJSON)
	req.Header.Set(constants.HeaderRequestID, uuid.NewString())

	// Le jeton n'est jamais mis en cache : un jeton effacé n'est pas réutilisé
	token, _, err := c.store.Get(ctx, constants.StorageKeyAuthToken)
	if err != nil {
		log.Printf("⚠️ Lecture du jeton impossible: %v", err)
	} else if token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	return req, nil
}

// normalizeError convertit une réponse en erreur {message, status, errors}
func (c *Client) normalizeError(ctx context.Context, status int, data []byte) error {
	var payload models.ErrorResponse
	_ = json.Unmarshal(data, &payload)

	message := payload.Message
	if message == "" {
		message = constants.ErrUnexpected
	}

	apiErr := &apierror.Error{Status: status, Message: message}
	switch {
	case status == http.StatusUnauthorized:
		apiErr.Kind = apierror.KindUnauthorized
		c.clearSession(ctx)
	case len(payload.Errors) > 0:
		apiErr.Kind = apierror.KindValidation
		apiErr.Errors = payload.Errors
	default:
		apiErr.Kind = apierror.KindBusiness
	}
	return apiErr
}

// clearSession efface jeton et utilisateur avant de rendre la main à l'appelant
func (c *Client) clearSession(ctx context.Context) {
	// Le contexte de la requête peut être expiré : l'effacement ne doit pas en dépendre
	clearCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := c.store.Remove(clearCtx, constants.StorageKeyAuthToken, constants.StorageKeyUserData); err != nil {
		log.Printf("❌ Effacement de la session après 401 impossible: %v", err)
	} else {
		log.Println("🔒 401 reçu: session locale effacée")
	}

	c.mu.RLock()
	hooks := append([]func(){}, c.onUnauthorized...)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
}

// IsUnauthorized indique si err provient d'un 401
func IsUnauthorized(err error) bool {
	var apiErr *apierror.Error
	return errors.As(err, &apiErr) && apiErr.Kind == apierror.KindUnauthorized
}
