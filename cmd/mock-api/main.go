// Commande mock-api : serveur de développement qui implémente l'API SAHNE
// consommée par le client, sur des fixtures en mémoire ou dans MongoDB (STORAGE_DRIVER=mongo).
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sahne-client/config"
	"sahne-client/database"
	"sahne-client/handlers"
	"sahne-client/mockdata"
)

func main() {
	// Charger la configuration
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement de la configuration: %v", err)
	}

	repos, err := openRepositories(cfg)
	if err != nil {
		log.Fatalf("❌ Erreur lors de l'ouverture du stockage: %v", err)
	}

	store, err := mockdata.NewStore(context.Background(), repos, cfg.Location())
	if err != nil {
		log.Fatalf("❌ Erreur lors de l'initialisation des données: %v", err)
	}
	log.Printf("✓ Stockage %s prêt", cfg.StorageDriver)

	// Les prestations confirmées passent en "completed" une fois leur créneau passé
	scheduler := mockdata.NewScheduler(store)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("❌ Erreur de démarrage du cron: %v", err)
	}

	router := handlers.NewRouter(store, handlers.RouterConfig{
		JWTSecret:   cfg.JWTSecret,
		Environment: cfg.Environment,
		CORSOrigins: cfg.CORSOrigins,
	})

	// Démarrer le serveur
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Gérer l'arrêt gracieux du serveur
	go func() {
		log.Printf("🚀 Serveur démarré sur http://%s", addr)
		log.Printf("📝 Environnement: %s", cfg.Environment)
		log.Println("📋 Routes disponibles:")
		log.Println("   GET    /api/health                         - Health check")
		log.Println("   POST   /api/auth/login                     - Connexion")
		log.Println("   POST   /api/auth/register                  - Inscription")
		log.Println("   POST   /api/auth/forgot-password           - Mot de passe oublié")
		log.Println("   GET    /api/chefs                          - Liste des chefs (filtres, pagination)")
		log.Println("   GET    /api/chefs/search?query=            - Recherche de chefs")
		log.Println("   GET    /api/chefs/{id}                     - Profil d'un chef")
		log.Println("   GET    /api/chefs/{id}/reviews             - Avis d'un chef")
		log.Println("")
		log.Println("   🔒 Routes protégées:")
		log.Println("   POST   /api/auth/logout                    - Déconnexion")
		log.Println("   GET    /api/auth/user                      - Utilisateur courant")
		log.Println("   GET    /api/reservations                   - Mes réservations (?status=)")
		log.Println("   POST   /api/reservations                   - Réserver (client)")
		log.Println("   GET    /api/reservations/{id}              - Détail d'une réservation")
		log.Println("   POST   /api/reservations/{id}/cancel       - Annuler (client)")
		log.Println("   POST   /api/reservations/{id}/review       - Laisser un avis (client)")
		log.Println("   POST   /api/reservations/{id}/confirm      - Confirmer (chef)")
		log.Println("   POST   /api/reservations/{id}/reject       - Refuser (chef)")
		log.Println("   POST   /api/reservations/{id}/complete     - Terminer (chef)")
		log.Println("   POST   /api/reviews/{id}/reply             - Répondre à un avis (chef)")
		log.Println("")
		log.Printf("   👤 Compte client: %s / %s", mockdata.DemoClientEmail, mockdata.DemoPassword)
		log.Println("\n✨ Le serveur est prêt à recevoir des requêtes!")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Erreur du serveur: %v", err)
		}
	}()

	// Attendre le signal d'arrêt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n🛑 Arrêt du serveur...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Erreur lors de l'arrêt du serveur: %v", err)
	}
	if err := database.Close(); err != nil {
		log.Printf("❌ Erreur lors de la fermeture de MongoDB: %v", err)
	}
	log.Println("✓ Serveur arrêté proprement")
}

// openRepositories choisit le stockage des données du serveur
func openRepositories(cfg *config.ServerConfig) (mockdata.Repositories, error) {
	if cfg.StorageDriver != config.StorageMongo {
		return mockdata.NewMemoryRepositories(), nil
	}

	if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
		return mockdata.Repositories{}, err
	}
	if err := database.CreateStoreIndexes(); err != nil {
		return mockdata.Repositories{}, err
	}
	return mockdata.Repositories{
		Users:        database.NewUserRepository(database.DB),
		Chefs:        database.NewChefRepository(database.DB),
		Reservations: database.NewReservationRepository(database.DB),
		Reviews:      database.NewReviewRepository(database.DB),
		Sequences:    database.NewCounterRepository(database.DB),
	}, nil
}
