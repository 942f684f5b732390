package session

import (
	"strings"

	"sahne-client/models"
)

// Route identifie un écran de l'application
type Route string

// Écrans connus. Les routes "/(auth)" forment la zone non authentifiée.
const (
	RouteSplash         Route = "/(auth)/splash"
	RouteOnboarding     Route = "/(auth)/onboarding"
	RouteLogin          Route = "/(auth)/login"
	RouteRegister       Route = "/(auth)/register"
	RouteClientHome     Route = "/(client)"
	RouteExplore        Route = "/(client)/explore"
	RouteBookings       Route = "/(client)/bookings"
	RouteProfile        Route = "/(client)/profile"
	RouteChefHome       Route = "/(chef)"
	RouteReservationNew Route = "/(client)/reservation/date"
)

const authArea = "/(auth)"

// InAuthArea indique si la route appartient à la zone non authentifiée
func (r Route) InAuthArea() bool {
	return r == authArea || strings.HasPrefix(string(r), authArea+"/")
}

// HomeFor retourne l'accueil correspondant au rôle de l'utilisateur
func HomeFor(user *models.User) Route {
	if user.IsChef() {
		return RouteChefHome
	}
	return RouteClientHome
}
