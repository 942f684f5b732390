package models

// Review représente un avis sur une réservation terminée
type Review struct {
	ID              int64         `json:"id" bson:"_id"`
	ReservationID   int64         `json:"reservation_id" bson:"reservation_id"`
	ClientID        int64         `json:"client_id" bson:"client_id"`
	ChefID          int64         `json:"chef_id" bson:"chef_id"`
	FoodQuality     int           `json:"food_quality" bson:"food_quality"`
	Presentation    int           `json:"presentation" bson:"presentation"`
	Professionalism int           `json:"professionalism" bson:"professionalism"`
	ValueForMoney   int           `json:"value_for_money" bson:"value_for_money"`
	OverallRating   float64       `json:"overall_rating" bson:"overall_rating"`
	Comment         *string       `json:"comment" bson:"comment"`
	ChefReply       *string       `json:"chef_reply" bson:"chef_reply"`
	CreatedAt       FlexibleTime  `json:"created_at" bson:"created_at"`
	UpdatedAt       FlexibleTime  `json:"updated_at" bson:"updated_at"`
	Client          *ReviewClient `json:"client,omitempty" bson:"client,omitempty"`
}

// HasReply indique si le chef a déjà répondu
func (r Review) HasReply() bool {
	return r.ChefReply != nil && *r.ChefReply != ""
}

// ReviewClient représente l'auteur d'un avis
type ReviewClient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Ratings regroupe les quatre notes d'un avis (1 à 5)
type Ratings struct {
	FoodQuality     int `json:"food_quality"`
	Presentation    int `json:"presentation"`
	Professionalism int `json:"professionalism"`
	ValueForMoney   int `json:"value_for_money"`
}

// Average retourne la moyenne des quatre dimensions
func (r Ratings) Average() float64 {
	return float64(r.FoodQuality+r.Presentation+r.Professionalism+r.ValueForMoney) / 4
}

// Values retourne les notes avec leur nom de champ
func (r Ratings) Values() map[string]int {
	return map[string]int{
		"food_quality":    r.FoodQuality,
		"presentation":    r.Presentation,
		"professionalism": r.Professionalism,
		"value_for_money": r.ValueForMoney,
	}
}

// CreateReviewRequest représente le corps de POST /reservations/{id}/review
type CreateReviewRequest struct {
	ReservationID int64 `json:"reservation_id"`
	Ratings
	Comment string `json:"comment,omitempty"`
}

// ReplyReviewRequest représente la réponse d'un chef à un avis
type ReplyReviewRequest struct {
	Reply string `json:"reply"`
}

// ReviewResponse enveloppe un avis unique
type ReviewResponse struct {
	Review Review `json:"review"`
}

// ReviewListResponse enveloppe GET /chefs/{id}/reviews
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
}
