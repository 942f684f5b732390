// Package theme gère la préférence clair/sombre persistée du client.
package theme

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"sahne-client/constants"
	"sahne-client/storage"
)

// Mode est la préférence d'affichage
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
	ModeAuto  Mode = "auto"
)

// ParseMode valide une préférence saisie
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case ModeLight, ModeDark, ModeAuto:
		return mode, nil
	}
	return "", fmt.Errorf("thème invalide %q, doit être \"light\", \"dark\" ou \"auto\"", s)
}

// Colors est la palette d'un thème
type Colors struct {
	Background    string `json:"background"`
	Surface       string `json:"surface"`
	Primary       string `json:"primary"`
	Accent        string `json:"accent"`
	Text          string `json:"text"`
	TextSecondary string `json:"text_secondary"`
	Border        string `json:"border"`
}

var (
	LightColors = Colors{
		Background:    "#FFFFFF",
		Surface:       "#F8F9FA",
		Primary:       "#1A1A2E",
		Accent:        "#C9A050",
		Text:          "#1A1A2E",
		TextSecondary: "#6B7280",
		Border:        "#E5E7EB",
	}
	DarkColors = Colors{
		Background:    "#0D0D14",
		Surface:       "#1A1A2E",
		Primary:       "#FFFFFF",
		Accent:        "#C9A050",
		Text:          "#FFFFFF",
		TextSecondary: "#9CA3AF",
		Border:        "#2D2D44",
	}
)

// Manager garde la préférence en mémoire et la persiste sous sa propre clé
type Manager struct {
	store storage.Store

	mu   sync.RWMutex
	mode Mode
}

// NewManager crée un gestionnaire en mode clair
func NewManager(store storage.Store) *Manager {
	return &Manager{store: store, mode: ModeLight}
}

// Load relit la préférence ; une valeur inconnue est ignorée
func (m *Manager) Load(ctx context.Context) error {
	saved, err := storage.GetString(ctx, m.store, constants.StorageKeyThemeMode)
	if err != nil {
		return err
	}
	mode, err := ParseMode(saved)
	if err != nil {
		if saved != "" {
			log.Printf("⚠️ Thème enregistré ignoré: %q", saved)
		}
		return nil
	}

	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()
	return nil
}

// Set persiste puis applique un nouveau mode
func (m *Manager) Set(ctx context.Context, mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	if err := storage.Set(ctx, m.store, constants.StorageKeyThemeMode, string(mode)); err != nil {
		return fmt.Errorf("enregistrement du thème: %w", err)
	}

	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()
	return nil
}

// Mode retourne la préférence courante
func (m *Manager) Mode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// IsDark indique si le thème sombre est actif selon la préférence système
func (m *Manager) IsDark(systemDark bool) bool {
	mode := m.Mode()
	return mode == ModeDark || (mode == ModeAuto && systemDark)
}

// Colors retourne la palette active
func (m *Manager) Colors(systemDark bool) Colors {
	if m.IsDark(systemDark) {
		return DarkColors
	}
	return LightColors
}
