package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReservationStatus représente l'état d'une réservation côté serveur
type ReservationStatus string

const (
	StatusPending       ReservationStatus = "pending"
	StatusConfirmed     ReservationStatus = "confirmed"
	StatusChefConfirmed ReservationStatus = "chef_confirmed"
	StatusCompleted     ReservationStatus = "completed"
	StatusCancelled     ReservationStatus = "cancelled"
	StatusRejected      ReservationStatus = "rejected"
)

// Valid indique si le statut est connu
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusChefConfirmed, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// IsActive indique si le statut peut encore donner lieu à une prestation
func (s ReservationStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusChefConfirmed
}

// AddressType représente le type de lieu de la prestation
type AddressType string

const (
	AddressHome  AddressType = "home"
	AddressHotel AddressType = "hotel"
	AddressVilla AddressType = "villa"
	AddressOther AddressType = "other"
)

// Valid indique si le type d'adresse est accepté par l'API
func (a AddressType) Valid() bool {
	switch a {
	case AddressHome, AddressHotel, AddressVilla, AddressOther:
		return true
	}
	return false
}

// ReservationParty représente le client ou le chef embarqué dans une réservation
type ReservationParty struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profile_image,omitempty"`
	Title        string  `json:"title,omitempty"`
}

// ReservationPackage représente la formule embarquée dans une réservation
type ReservationPackage struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	DisplayName    string  `json:"display_name,omitempty"`
	Price          float64 `json:"price"`
	PricePerPerson float64 `json:"price_per_person,omitempty"`
	DurationHours  int     `json:"duration_hours"`
	Type           string  `json:"type,omitempty"`
	CoursesCount   int     `json:"courses_count,omitempty"`
	IncludesWine   bool    `json:"includes_wine,omitempty"`
}

// Reservation représente une réservation (forme canonique date + time)
type Reservation struct {
	ID              int64               `json:"id" bson:"_id"`
	ClientID        int64               `json:"client_id" bson:"client_id"`
	ChefID          int64               `json:"chef_id" bson:"chef_id"`
	PackageID       int64               `json:"package_id" bson:"package_id"`
	Date            string              `json:"date" bson:"date"` // YYYY-MM-DD
	Time            string              `json:"time" bson:"time"` // HH:MM
	GuestCount      int                 `json:"guest_count" bson:"guest_count"`
	Address         string              `json:"address" bson:"address"`
	AddressType     AddressType         `json:"address_type,omitempty" bson:"address_type,omitempty"`
	SpecialRequests *string             `json:"special_requests" bson:"special_requests"`
	SpecialOccasion *string             `json:"special_occasion,omitempty" bson:"special_occasion,omitempty"`
	Allergies       *string             `json:"allergies,omitempty" bson:"allergies,omitempty"`
	DietaryNotes    *string             `json:"dietary_notes,omitempty" bson:"dietary_notes,omitempty"`
	Status          ReservationStatus   `json:"status" bson:"status"`
	TotalPrice      float64             `json:"total_price" bson:"total_price"`
	RejectionReason *string             `json:"rejection_reason" bson:"rejection_reason"`
	CreatedAt       FlexibleTime        `json:"created_at" bson:"created_at"`
	UpdatedAt       FlexibleTime        `json:"updated_at" bson:"updated_at"`
	Client          *ReservationParty   `json:"client,omitempty" bson:"client,omitempty"`
	Chef            *ReservationParty   `json:"chef,omitempty" bson:"chef,omitempty"`
	Package         *ReservationPackage `json:"package,omitempty" bson:"package,omitempty"`
}

// UnmarshalJSON accepte l'ancien champ reservation_date comme repli de date
func (r *Reservation) UnmarshalJSON(b []byte) error {
	type alias Reservation
	aux := struct {
		*alias
		LegacyDate string `json:"reservation_date"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if r.Date == "" && aux.LegacyDate != "" {
		r.Date = aux.LegacyDate
		if r.Time == "" && len(aux.LegacyDate) >= 16 {
			r.Time = aux.LegacyDate[11:16]
		}
	}
	return nil
}

// StartsAt combine date et heure dans le fuseau donné (00:00 si l'heure manque)
func (r Reservation) StartsAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if len(r.Date) < 10 {
		return time.Time{}, fmt.Errorf("date de réservation invalide: %q", r.Date)
	}
	clock := "00:00"
	if len(r.Time) >= 5 {
		clock = r.Time[:5]
	}
	return time.ParseInLocation("2006-01-02T15:04", r.Date[:10]+"T"+clock, loc)
}

// CanCancel indique si le client peut encore annuler
func (r Reservation) CanCancel() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanReview indique si un avis peut être rédigé
func (r Reservation) CanReview() bool {
	return r.Status == StatusCompleted
}

// CreateReservationRequest représente le corps de POST /reservations
type CreateReservationRequest struct {
	ChefProfileID       int64       `json:"chef_profile_id"`
	ExperiencePackageID int64       `json:"experience_package_id"`
	Date                string      `json:"date"` // date-time "YYYY-MM-DDTHH:MM:00"
	Time                string      `json:"time"`
	GuestCount          int         `json:"guest_count"`
	Address             string      `json:"address"`
	AddressType         AddressType `json:"address_type"`
	Allergies           string      `json:"allergies,omitempty"`
	DietaryNotes        string      `json:"dietary_notes,omitempty"`
	SpecialOccasion     string      `json:"special_occasion,omitempty"`
}

// CreateReservationResponse enveloppe la réponse de POST /reservations
type CreateReservationResponse struct {
	Message string      `json:"message"`
	Data    Reservation `json:"data"`
}

// ReservationListResponse enveloppe GET /reservations
type ReservationListResponse struct {
	Reservations []Reservation `json:"reservations"`
}

// ReservationResponse enveloppe GET /reservations/{id}
type ReservationResponse struct {
	Reservation Reservation `json:"reservation"`
}

// RejectReservationRequest représente le motif de refus d'un chef
type RejectReservationRequest struct {
	Reason string `json:"reason"`
}
