// Package services regroupe les appels métier à l'API SAHNE. Chaque méthode est
// un simple passe-plat typé : pas de cache ni de nouvelle tentative.
package services

import (
	"context"
	"net/url"
)

// Requester est le sous-ensemble du client HTTP utilisé par les services
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
}
