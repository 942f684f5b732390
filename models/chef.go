package models

import (
	"net/url"
	"strconv"
	"strings"
)

// ChefUser représente le compte utilisateur rattaché à un chef
type ChefUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Chef représente un chef dans la liste (ChefResource)
type Chef struct {
	ID              int64         `json:"id"`
	UserID          int64         `json:"user_id"`
	Bio             string        `json:"bio"`
	ExperienceYears int           `json:"experience_years"`
	Specialties     []string      `json:"specialties"`
	Rating          float64       `json:"rating"`
	TotalReviews    int           `json:"total_reviews"`
	ProfileImage    *string       `json:"profile_image"`
	CoverImage      *string       `json:"cover_image"`
	IsActive        bool          `json:"is_active"`
	CreatedAt       FlexibleTime  `json:"created_at"`
	UpdatedAt       FlexibleTime  `json:"updated_at"`
	User            *ChefUser     `json:"user,omitempty"`
	Packages        []ChefPackage `json:"packages,omitempty"`
	Photos          []ChefPhoto   `json:"photos,omitempty"`
}

// Name retourne le nom affiché du chef
func (c Chef) Name() string {
	if c.User != nil {
		return c.User.Name
	}
	return ""
}

// StartingPrice retourne le prix minimal des formules actives (0 si aucune)
func (c Chef) StartingPrice() float64 {
	min := 0.0
	for _, p := range c.Packages {
		if !p.IsActive {
			continue
		}
		if min == 0 || p.Price < min {
			min = p.Price
		}
	}
	return min
}

// ChefPackage représente la version courte d'une formule dans la liste
type ChefPackage struct {
	ID            int64   `json:"id"`
	ChefID        int64   `json:"chef_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	DurationHours int     `json:"duration_hours"`
	MaxGuests     int     `json:"max_guests"`
	IsActive      bool    `json:"is_active"`
}

// ChefPhoto représente une photo de la galerie d'un chef
type ChefPhoto struct {
	ID       int64  `json:"id"`
	ChefID   int64  `json:"chef_id"`
	PhotoURL string `json:"photo_url"`
	Order    int    `json:"order"`
}

// ChefProfile représente le profil détaillé d'un chef (ChefProfileResource)
type ChefProfile struct {
	ID                 int64               `json:"id"`
	User               ChefUser            `json:"user"`
	Title              string              `json:"title"`
	Biography          string              `json:"biography"`
	CulinaryPhilosophy string              `json:"culinary_philosophy"`
	ProfileImage       *string             `json:"profile_image"`
	CoverImage         *string             `json:"cover_image"`
	Specialties        []string            `json:"specialties"`
	MaxGuests          int                 `json:"max_guests"`
	IsActive           bool                `json:"is_active"`
	Parcours           []ChefParcours      `json:"parcours"`
	Media              []ChefMedia         `json:"media"`
	Packages           []ExperiencePackage `json:"packages"`
	Regions            []Region            `json:"regions"`
	CreatedAt          FlexibleTime        `json:"created_at"`
	UpdatedAt          FlexibleTime        `json:"updated_at"`
}

// ActivePackages retourne uniquement les formules réservables
func (p ChefProfile) ActivePackages() []ExperiencePackage {
	active := make([]ExperiencePackage, 0, len(p.Packages))
	for _, pkg := range p.Packages {
		if pkg.IsActive {
			active = append(active, pkg)
		}
	}
	return active
}

// Package recherche une formule par identifiant
func (p ChefProfile) Package(id int64) (ExperiencePackage, bool) {
	for _, pkg := range p.Packages {
		if pkg.ID == id {
			return pkg, true
		}
	}
	return ExperiencePackage{}, false
}

// ChefParcours représente une étape de formation ou d'expérience
type ChefParcours struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // "education" ou "experience"
	Institution string `json:"institution"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	Order       string `json:"order"`
}

// ChefMedia représente une photo ou une vidéo du profil
type ChefMedia struct {
	ID      int64   `json:"id"`
	Type    string  `json:"type"`
	Path    string  `json:"path"`
	URL     string  `json:"url"`
	Caption *string `json:"caption"`
	Order   int     `json:"order"`
}

// ExperiencePackage représente une formule réservable ("essential", "signature", "ultimate")
type ExperiencePackage struct {
	ID             int64   `json:"id"`
	Type           string  `json:"type"`
	DisplayName    string  `json:"display_name"`
	BasePrice      float64 `json:"base_price"`
	PricePerPerson float64 `json:"price_per_person"`
	CoursesCount   int     `json:"courses_count"`
	Description    *string `json:"description"`
	IncludesWine   bool    `json:"includes_wine"`
	CrewMembers    *int    `json:"crew_members"`
	IsActive       bool    `json:"is_active"`
}

// Region représente une zone desservie par un chef
type Region struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// ChefFilters représente les filtres de GET /chefs
type ChefFilters struct {
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	Specialties []string
	MinRating   *float64
	Page        int
}

// Values encode les filtres en paramètres de requête (les champs vides sont omis)
func (f ChefFilters) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(f.Search); s != "" {
		v.Set("search", s)
	}
	if f.MinPrice != nil {
		v.Set("min_price", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		v.Set("max_price", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	for _, s := range f.Specialties {
		v.Add("specialties[]", s)
	}
	if f.MinRating != nil {
		v.Set("min_rating", strconv.FormatFloat(*f.MinRating, 'f', -1, 64))
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}

// ChefListResponse enveloppe GET /chefs
type ChefListResponse struct {
	Data []Chef         `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// ChefProfileResponse enveloppe GET /chefs/{id}
type ChefProfileResponse struct {
	Data ChefProfile `json:"data"`
}

// ChefSearchResponse enveloppe GET /chefs/search
type ChefSearchResponse struct {
	Chefs []Chef `json:"chefs"`
}
