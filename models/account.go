package models

// Account est un utilisateur stocké par le serveur factice, avec son mot de passe haché
type Account struct {
	User         `bson:",inline"`
	PasswordHash string `json:"-" bson:"password_hash"`
}

// PackageRecord est une formule stockée avec sa durée et sa capacité
type PackageRecord struct {
	ExperiencePackage `bson:",inline"`
	DurationHours     int `bson:"duration_hours"`
	MaxGuests         int `bson:"max_guests"`
}

// ChefRecord est le profil chef stocké par le serveur factice
type ChefRecord struct {
	ID              int64           `bson:"_id"`
	UserID          int64           `bson:"user_id"`
	Title           string          `bson:"title"`
	Bio             string          `bson:"bio"`
	Philosophy      string          `bson:"philosophy"`
	ExperienceYears int             `bson:"experience_years"`
	Specialties     []string        `bson:"specialties"`
	Rating          float64         `bson:"rating"`
	TotalReviews    int             `bson:"total_reviews"`
	Active          bool            `bson:"active"`
	Packages        []PackageRecord `bson:"packages"`
	CreatedAt       FlexibleTime    `bson:"created_at"`
}

// Package recherche une formule stockée par identifiant
func (c ChefRecord) Package(id int64) (PackageRecord, bool) {
	for _, p := range c.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return PackageRecord{}, false
}

// ReservationFilter restreint une recherche de réservations (valeur zéro = pas de filtre)
type ReservationFilter struct {
	ClientID int64
	ChefID   int64
	Statuses []ReservationStatus
	Date     string
	Time     string
}

// Matches indique si une réservation passe le filtre
func (f ReservationFilter) Matches(r Reservation) bool {
	if f.ClientID != 0 && r.ClientID != f.ClientID {
		return false
	}
	if f.ChefID != 0 && r.ChefID != f.ChefID {
		return false
	}
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.Time != "" && r.Time != f.Time {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if r.Status == s {
			return true
		}
	}
	return false
}
