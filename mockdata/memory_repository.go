package mockdata

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"sahne-client/models"
)

// NewMemoryRepositories crée des stockages en mémoire (perdus à l'arrêt du serveur)
func NewMemoryRepositories() Repositories {
	return Repositories{
		Users:        &memoryUsers{accounts: make(map[int64]models.Account)},
		Chefs:        &memoryChefs{chefs: make(map[int64]models.ChefRecord)},
		Reservations: &memoryReservations{reservations: make(map[int64]models.Reservation)},
		Reviews:      &memoryReviews{reviews: make(map[int64]models.Review)},
		Sequences:    &memorySequences{values: make(map[string]int64)},
	}
}

type memoryUsers struct {
	mu       sync.RWMutex
	accounts map[int64]models.Account
}

func (m *memoryUsers) Create(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.ID]; ok {
		return fmt.Errorf("utilisateur %d déjà existant", account.ID)
	}
	for _, existing := range m.accounts {
		if existing.Email == account.Email {
			return fmt.Errorf("cet email est déjà utilisé")
		}
	}
	m.accounts[account.ID] = *account
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id int64) (*models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[id]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, account := range m.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.accounts)), nil
}

type memoryChefs struct {
	mu    sync.RWMutex
	chefs map[int64]models.ChefRecord
}

func (m *memoryChefs) Save(_ context.Context, chef *models.ChefRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chefs[chef.ID] = *chef
	return nil
}

func (m *memoryChefs) FindByID(_ context.Context, id int64) (*models.ChefRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chef, ok := m.chefs[id]
	if !ok {
		return nil, nil
	}
	return &chef, nil
}

func (m *memoryChefs) FindByUser(_ context.Context, userID int64) (*models.ChefRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, chef := range m.chefs {
		if chef.UserID == userID {
			found := chef
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryChefs) FindActive(_ context.Context) ([]models.ChefRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.ChefRecord, 0, len(m.chefs))
	for _, chef := range m.chefs {
		if chef.Active {
			result = append(result, chef)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

type memoryReservations struct {
	mu           sync.RWMutex
	reservations map[int64]models.Reservation
}

func (m *memoryReservations) Create(_ context.Context, reservation *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reservations[reservation.ID]; ok {
		return fmt.Errorf("réservation %d déjà existante", reservation.ID)
	}
	m.reservations[reservation.ID] = *reservation
	return nil
}

func (m *memoryReservations) Update(_ context.Context, reservation *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reservations[reservation.ID]; !ok {
		return fmt.Errorf("réservation %d introuvable", reservation.ID)
	}
	m.reservations[reservation.ID] = *reservation
	return nil
}

func (m *memoryReservations) FindByID(_ context.Context, id int64) (*models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reservation, ok := m.reservations[id]
	if !ok {
		return nil, nil
	}
	return &reservation, nil
}

func (m *memoryReservations) Find(_ context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.Reservation, 0)
	for _, r := range m.reservations {
		if filter.Matches(r) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID > result[j].ID
	})
	return result, nil
}

type memoryReviews struct {
	mu      sync.RWMutex
	reviews map[int64]models.Review
}

func (m *memoryReviews) Create(_ context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.reviews {
		if existing.ID == review.ID || existing.ReservationID == review.ReservationID {
			return fmt.Errorf("avis déjà existant pour la réservation %d", review.ReservationID)
		}
	}
	m.reviews[review.ID] = *review
	return nil
}

func (m *memoryReviews) Update(_ context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reviews[review.ID]; !ok {
		return fmt.Errorf("avis %d introuvable", review.ID)
	}
	m.reviews[review.ID] = *review
	return nil
}

func (m *memoryReviews) FindByID(_ context.Context, id int64) (*models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	review, ok := m.reviews[id]
	if !ok {
		return nil, nil
	}
	return &review, nil
}

func (m *memoryReviews) FindByReservation(_ context.Context, reservationID int64) (*models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, review := range m.reviews {
		if review.ReservationID == reservationID {
			found := review
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryReviews) FindByChef(_ context.Context, chefID int64) ([]models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.Review, 0)
	for _, review := range m.reviews {
		if review.ChefID == chefID {
			result = append(result, review)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID > result[j].ID
	})
	return result, nil
}

type memorySequences struct {
	mu     sync.Mutex
	values map[string]int64
}

func (m *memorySequences) Next(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name]++
	return m.values[name], nil
}

func (m *memorySequences) Ensure(_ context.Context, name string, floor int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[name] < floor {
		m.values[name] = floor
	}
	return nil
}
