// Package mockdata contient les règles métier et les fixtures du serveur d'API factice :
// comptes, chefs, formules, réservations et avis.
package mockdata

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"sahne-client/constants"
	"sahne-client/models"
	"sahne-client/utils"

	"golang.org/x/text/cases"
)

// PerPage est la taille de page de GET /chefs
const PerPage = 10

// Store applique les règles métier du serveur factice au-dessus des repositories.
// Les écritures sont sérialisées pour que les vérifications (email libre, créneau libre,
// avis unique) et l'enregistrement forment un seul pas.
type Store struct {
	mu    sync.Mutex
	loc   *time.Location
	now   func() time.Time
	repos Repositories
}

// Option personnalise un Store
type Option func(*Store)

// WithClock remplace l'horloge (tests)
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore crée un store sur les repositories donnés et les peuple des fixtures s'ils sont vides ;
// loc sert à interpréter date + heure des réservations
func NewStore(ctx context.Context, repos Repositories, loc *time.Location, opts ...Option) (*Store, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Store{
		loc:   loc,
		now:   time.Now,
		repos: repos,
	}
	for _, opt := range opts {
		opt(s)
	}

	count, err := repos.Users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("erreur lors du comptage des utilisateurs: %w", err)
	}
	if count == 0 {
		if err := s.seed(ctx); err != nil {
			return nil, fmt.Errorf("erreur lors du chargement des fixtures: %w", err)
		}
		log.Println("📝 Fixtures chargées (comptes de démonstration et chefs)")
	}
	return s, nil
}

// NewMemoryStore crée un store en mémoire peuplé des fixtures
func NewMemoryStore(loc *time.Location, opts ...Option) *Store {
	s, err := NewStore(context.Background(), NewMemoryRepositories(), loc, opts...)
	if err != nil {
		// les repositories en mémoire ne retournent pas d'erreur sur une base vide
		panic(err)
	}
	return s
}

func (s *Store) timestamp() models.FlexibleTime {
	return models.FlexibleTime{Time: s.now().UTC().Truncate(time.Second)}
}

// ---------------------------------------------------------------------------
// Comptes
// ---------------------------------------------------------------------------

// Authenticate vérifie email et mot de passe
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	acc, err := s.repos.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return models.User{}, err
	}
	if acc == nil || !utils.CheckPassword(acc.PasswordHash, password) {
		return models.User{}, &Error{Status: http.StatusUnauthorized, Message: constants.ErrInvalidCredentials}
	}
	return acc.User, nil
}

// CreateUser crée un compte (l'email doit être libre). Un compte chef reçoit un profil vide inactif.
func (s *Store) CreateUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(req.Email)
	existing, err := s.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		fields := utils.FieldErrors{}
		fields.Set("email", constants.ErrEmailTaken)
		return models.User{}, invalid(fields)
	}

	id, err := s.repos.Sequences.Next(ctx, SequenceUsers)
	if err != nil {
		return models.User{}, err
	}
	now := s.timestamp()
	acc := &models.Account{
		User: models.User{
			ID:        id,
			Name:      strings.TrimSpace(req.Name),
			Email:     email,
			Phone:     utils.NormalizePhone(req.Phone),
			Role:      req.Role,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: hash,
	}
	if err := s.repos.Users.Create(ctx, acc); err != nil {
		return models.User{}, err
	}

	if acc.Role == models.RoleChef {
		chefID, err := s.repos.Sequences.Next(ctx, SequenceChefs)
		if err != nil {
			return models.User{}, err
		}
		if err := s.repos.Chefs.Save(ctx, &models.ChefRecord{ID: chefID, UserID: acc.ID, CreatedAt: now}); err != nil {
			return models.User{}, err
		}
	}
	return acc.User, nil
}

// FindUserByID récupère un compte
func (s *Store) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	acc, err := s.repos.Users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if acc == nil {
		return models.User{}, notFound(constants.ErrUserNotFound)
	}
	return acc.User, nil
}

// EmailExists indique si un compte utilise déjà cet email
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	acc, err := s.repos.Users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, err
	}
	return acc != nil, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ---------------------------------------------------------------------------
// Chefs
// ---------------------------------------------------------------------------

// ChefQuery représente les filtres de GET /chefs côté serveur
type ChefQuery struct {
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	Specialties []string
	MinRating   *float64
	Page        int
}

// ListChefs retourne une page de chefs actifs filtrés, triés par note décroissante
func (s *Store) ListChefs(ctx context.Context, q ChefQuery) ([]models.Chef, models.PaginationMeta, error) {
	chefs, err := s.activeChefs(ctx)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	matched := make([]models.Chef, 0, len(chefs))
	for _, chef := range chefs {
		if q.matches(chef) {
			matched = append(matched, chef)
		}
	}

	page, meta := paginate(matched, q.Page)
	return page, meta, nil
}

// SearchChefs recherche un texte dans le nom, la bio et les spécialités
func (s *Store) SearchChefs(ctx context.Context, query string) ([]models.Chef, error) {
	chefs, err := s.activeChefs(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.Chef, 0)
	for _, chef := range chefs {
		if matchesText(chef, query) {
			result = append(result, chef)
		}
	}
	return result, nil
}

// ChefProfile retourne le profil détaillé d'un chef actif
func (s *Store) ChefProfile(ctx context.Context, id int64) (models.ChefProfile, error) {
	rec, err := s.repos.Chefs.FindByID(ctx, id)
	if err != nil {
		return models.ChefProfile{}, err
	}
	if rec == nil || !rec.Active {
		return models.ChefProfile{}, notFound(constants.ErrChefNotFound)
	}
	user, err := s.chefUser(ctx, rec)
	if err != nil {
		return models.ChefProfile{}, err
	}
	return chefProfile(rec, user), nil
}

// ChefIDForUser retourne le profil chef d'un compte chef
func (s *Store) ChefIDForUser(ctx context.Context, userID int64) (int64, bool, error) {
	rec, err := s.repos.Chefs.FindByUser(ctx, userID)
	if err != nil || rec == nil {
		return 0, false, err
	}
	return rec.ID, true, nil
}

// activeChefs retourne les chefs actifs en version liste, par note décroissante
func (s *Store) activeChefs(ctx context.Context) ([]models.Chef, error) {
	records, err := s.repos.Chefs.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Rating != records[j].Rating {
			return records[i].Rating > records[j].Rating
		}
		return records[i].ID < records[j].ID
	})

	chefs := make([]models.Chef, 0, len(records))
	for i := range records {
		user, err := s.chefUser(ctx, &records[i])
		if err != nil {
			return nil, err
		}
		chefs = append(chefs, chefListItem(&records[i], user))
	}
	return chefs, nil
}

func (s *Store) chefUser(ctx context.Context, rec *models.ChefRecord) (models.ChefUser, error) {
	acc, err := s.repos.Users.FindByID(ctx, rec.UserID)
	if err != nil {
		return models.ChefUser{}, err
	}
	if acc == nil {
		return models.ChefUser{ID: rec.UserID}, nil
	}
	return models.ChefUser{ID: acc.ID, Name: acc.Name, Email: acc.Email, Phone: acc.Phone}, nil
}

func chefListItem(rec *models.ChefRecord, user models.ChefUser) models.Chef {
	chef := models.Chef{
		ID:              rec.ID,
		UserID:          rec.UserID,
		Bio:             rec.Bio,
		ExperienceYears: rec.ExperienceYears,
		Specialties:     append([]string{}, rec.Specialties...),
		Rating:          rec.Rating,
		TotalReviews:    rec.TotalReviews,
		IsActive:        rec.Active,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.CreatedAt,
		User:            &user,
	}
	for _, p := range rec.Packages {
		description := ""
		if p.Description != nil {
			description = *p.Description
		}
		chef.Packages = append(chef.Packages, models.ChefPackage{
			ID:            p.ID,
			ChefID:        rec.ID,
			Name:          p.DisplayName,
			Description:   description,
			Price:         p.PricePerPerson,
			DurationHours: p.DurationHours,
			MaxGuests:     p.MaxGuests,
			IsActive:      p.IsActive,
		})
	}
	return chef
}

func chefProfile(rec *models.ChefRecord, user models.ChefUser) models.ChefProfile {
	profile := models.ChefProfile{
		ID:                 rec.ID,
		User:               user,
		Title:              rec.Title,
		Biography:          rec.Bio,
		CulinaryPhilosophy: rec.Philosophy,
		Specialties:        append([]string{}, rec.Specialties...),
		IsActive:           rec.Active,
		Parcours:           []models.ChefParcours{},
		Media:              []models.ChefMedia{},
		Packages:           make([]models.ExperiencePackage, 0, len(rec.Packages)),
		Regions:            []models.Region{istanbul},
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.CreatedAt,
	}
	for _, p := range rec.Packages {
		profile.Packages = append(profile.Packages, p.ExperiencePackage)
		if p.MaxGuests > profile.MaxGuests {
			profile.MaxGuests = p.MaxGuests
		}
	}
	return profile
}

func (q ChefQuery) matches(chef models.Chef) bool {
	if q.Search != "" && !matchesText(chef, q.Search) {
		return false
	}
	price := chef.StartingPrice()
	if q.MinPrice != nil && price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && price > *q.MaxPrice {
		return false
	}
	if q.MinRating != nil && chef.Rating < *q.MinRating {
		return false
	}
	if len(q.Specialties) > 0 && !hasAnySpecialty(chef, q.Specialties) {
		return false
	}
	return true
}

// fold replie la casse (İ/ı compris) ; un Caser ne se partage pas entre goroutines
func fold(s string) string {
	return cases.Fold().String(s)
}

// matchesText compare sans tenir compte de la casse
func matchesText(chef models.Chef, query string) bool {
	needle := fold(strings.TrimSpace(query))
	if needle == "" {
		return true
	}
	haystack := []string{chef.Name(), chef.Bio}
	haystack = append(haystack, chef.Specialties...)
	for _, h := range haystack {
		if strings.Contains(fold(h), needle) {
			return true
		}
	}
	return false
}

func hasAnySpecialty(chef models.Chef, wanted []string) bool {
	for _, w := range wanted {
		for _, s := range chef.Specialties {
			if fold(s) == fold(w) {
				return true
			}
		}
	}
	return false
}

func paginate(chefs []models.Chef, page int) ([]models.Chef, models.PaginationMeta) {
	total := len(chefs)
	lastPage := int(math.Ceil(float64(total) / PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	if page < 1 {
		page = 1
	}

	meta := models.PaginationMeta{CurrentPage: page, LastPage: lastPage, PerPage: PerPage, Total: total}
	start := (page - 1) * PerPage
	if start >= total {
		return []models.Chef{}, meta
	}
	end := start + PerPage
	if end > total {
		end = total
	}
	meta.From = start + 1
	meta.To = end
	return chefs[start:end], meta
}
