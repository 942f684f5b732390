package reservation

import "sahne-client/models"

// MealPeriod sélectionne la série de créneaux horaires
type MealPeriod string

const (
	Lunch  MealPeriod = "lunch"
	Dinner MealPeriod = "dinner"
)

// Bornes du formulaire de réservation
const (
	MinGuests           = 2
	MaxGuests           = 12
	DefaultGuests       = 2
	MaxSpecialRequests  = 500
	BookingWindowMonths = 3
	DateLayout          = "2006-01-02"
)

// Créneaux de 30 minutes par service
var timeSlots = map[MealPeriod][]string{
	Lunch:  {"12:00", "12:30", "13:00", "13:30", "14:00"},
	Dinner: {"18:00", "18:30", "19:00", "19:30", "20:00", "20:30", "21:00", "21:30", "22:00"},
}

// EventTypes liste les occasions proposées
var EventTypes = []string{
	"Birthday",
	"Anniversary",
	"Business Dinner",
	"Family Gathering",
	"Romantic Dinner",
	"Other",
}

// DietaryOptions est le vocabulaire des restrictions alimentaires
var DietaryOptions = []string{
	"Vegetarian",
	"Vegan",
	"Gluten-free",
	"Halal",
	"Kosher",
	"Dairy-free",
	"Nut-free",
}

// AddressTypes liste les types de lieu acceptés
var AddressTypes = []models.AddressType{
	models.AddressHome,
	models.AddressHotel,
	models.AddressVilla,
	models.AddressOther,
}

// TimeSlots retourne une copie des créneaux d'un service
func TimeSlots(period MealPeriod) []string {
	return append([]string(nil), timeSlots[period]...)
}

// ParseMealPeriod valide un service saisi
func ParseMealPeriod(s string) (MealPeriod, bool) {
	p := MealPeriod(s)
	_, ok := timeSlots[p]
	return p, ok
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
