package handlers

import (
	"net/http"

	"sahne-client/middleware"
	"sahne-client/mockdata"
	"sahne-client/models"
	"sahne-client/utils"

	"github.com/gorilla/mux"
)

// RouterConfig regroupe ce dont le routeur du serveur factice a besoin
type RouterConfig struct {
	JWTSecret   string
	Environment string
	CORSOrigins []string
}

// NewRouter monte toutes les routes de l'API sous /api
func NewRouter(store *mockdata.Store, cfg RouterConfig) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "Route introuvable")
	})

	// Middleware globaux
	router.Use(middleware.Logging)
	router.Use(middleware.CORS(cfg.CORSOrigins))

	healthHandler := NewHealthHandler(cfg.Environment)
	authHandler := NewAuthHandler(store, cfg.JWTSecret)
	chefHandler := NewChefHandler(store)
	reservationHandler := NewReservationHandler(store)
	reviewHandler := NewReviewHandler(store)

	api := router.PathPrefix("/api").Subrouter()

	// Routes publiques
	api.HandleFunc("/health", healthHandler.Health).Methods("GET", "OPTIONS")
	api.HandleFunc("/chefs", chefHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/chefs/search", chefHandler.Search).Methods("GET", "OPTIONS")
	api.HandleFunc("/chefs/{id:[0-9]+}", chefHandler.Show).Methods("GET", "OPTIONS")
	api.HandleFunc("/chefs/{id:[0-9]+}/reviews", chefHandler.Reviews).Methods("GET", "OPTIONS")

	// Routes réservées aux visiteurs non connectés
	guest := api.PathPrefix("/auth").Subrouter()
	guest.Use(middleware.Guest(cfg.JWTSecret))
	guest.HandleFunc("/login", authHandler.Login).Methods("POST", "OPTIONS")
	guest.HandleFunc("/register", authHandler.Register).Methods("POST", "OPTIONS")
	guest.HandleFunc("/forgot-password", authHandler.ForgotPassword).Methods("POST", "OPTIONS")

	// Routes protégées
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.JWTSecret))

	clientOnly := middleware.RequireRole(models.RoleClient)
	chefOnly := middleware.RequireRole(models.RoleChef)

	protected.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	protected.HandleFunc("/auth/user", authHandler.CurrentUser).Methods("GET", "OPTIONS")

	protected.HandleFunc("/reservations", reservationHandler.List).Methods("GET", "OPTIONS")
	protected.Handle("/reservations", clientOnly(http.HandlerFunc(reservationHandler.Create))).Methods("POST", "OPTIONS")
	protected.HandleFunc("/reservations/{id:[0-9]+}", reservationHandler.Show).Methods("GET", "OPTIONS")
	protected.Handle("/reservations/{id:[0-9]+}/cancel", clientOnly(http.HandlerFunc(reservationHandler.Cancel))).Methods("POST", "OPTIONS")
	protected.Handle("/reservations/{id:[0-9]+}/review", clientOnly(http.HandlerFunc(reservationHandler.Review))).Methods("POST", "OPTIONS")
	protected.Handle("/reservations/{id:[0-9]+}/confirm", chefOnly(http.HandlerFunc(reservationHandler.Confirm))).Methods("POST", "OPTIONS")
	protected.Handle("/reservations/{id:[0-9]+}/reject", chefOnly(http.HandlerFunc(reservationHandler.Reject))).Methods("POST", "OPTIONS")
	protected.Handle("/reservations/{id:[0-9]+}/complete", chefOnly(http.HandlerFunc(reservationHandler.Complete))).Methods("POST", "OPTIONS")
	protected.Handle("/reviews/{id:[0-9]+}/reply", chefOnly(http.HandlerFunc(reviewHandler.Reply))).Methods("POST", "OPTIONS")

	return router
}
