// Package storage fournit le stockage clé/valeur persistant de la session
// (jeton, utilisateur sérialisé, onboarding, thème).
package storage

import (
	"context"
	"fmt"
)

// Store est un stockage clé/valeur. SetMany et Remove s'appliquent à toutes les
// clés ou à aucune ; Remove sur une clé absente n'est pas une erreur.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, values map[string]string) error
	Remove(ctx context.Context, keys ...string) error
}

// Set écrit une seule clé
func Set(ctx context.Context, s Store, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

// GetString lit une clé en ignorant son absence
func GetString(ctx context.Context, s Store, key string) (string, error) {
	value, _, err := s.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("lecture de %s: %w", key, err)
	}
	return value, nil
}
