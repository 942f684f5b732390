package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"sahne-client/api"
	"sahne-client/config"
	"sahne-client/database"
	"sahne-client/services"
	"sahne-client/session"
	"sahne-client/storage"
	"sahne-client/theme"
)

// App assemble stockage, client HTTP, session et services pour une exécution de la CLI
type App struct {
	Config       *config.Config
	Store        storage.Store
	Client       *api.Client
	Session      *session.Controller
	Auth         *services.AuthService
	Chefs        *services.ChefService
	Reservations *services.ReservationService
	Reviews      *services.ReviewService
	Theme        *theme.Manager

	// current est l'écran logique de la commande en cours
	current session.Route
	ping    func(ctx context.Context) error
	closers []func() error
}

// NewApp ouvre le stockage choisi par STORAGE_DRIVER et câble les services
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, ping, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app := newApp(cfg, store, api.New(cfg.APIBaseURL, cfg.APITimeout, store))
	app.ping = ping
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	return app, nil
}

// newApp câble un client existant (utilisé aussi par les tests)
func newApp(cfg *config.Config, store storage.Store, client *api.Client) *App {
	auth := services.NewAuthService(client)
	controller := session.New(store, auth)
	app := &App{
		Config:       cfg,
		Store:        store,
		Client:       client,
		Session:      controller,
		Auth:         auth,
		Chefs:        services.NewChefService(client),
		Reservations: services.NewReservationService(client),
		Reviews:      services.NewReviewService(client),
		Theme:        theme.NewManager(store),
		current:      session.RouteSplash,
	}

	// Un 401 sur n'importe quel appel vaut déconnexion
	client.OnUnauthorized(controller.Invalidate)
	controller.OnChange(app.onSessionChange)
	return app
}

// Load relit la session et le thème persistés
func (a *App) Load(ctx context.Context) error {
	if err := a.Session.Load(ctx); err != nil {
		return err
	}
	return a.Theme.Load(ctx)
}

// Close libère les connexions du stockage
func (a *App) Close() error {
	var firstErr error
	for _, closer := range a.closers {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// Location retourne le fuseau des dates de réservation
func (a *App) Location() *time.Location {
	if a.Config == nil {
		return time.Local
	}
	return a.Config.Location()
}

// navigate mémorise l'écran courant et applique la redirection éventuelle
func (a *App) navigate(route session.Route) session.Route {
	a.current = route
	if target, ok := a.Session.Redirect(route); ok {
		a.current = target
	}
	return a.current
}

func (a *App) onSessionChange(state session.State) {
	if state == session.StateUnknown {
		return
	}
	if target, ok := a.Session.Redirect(a.current); ok {
		log.Printf("🔀 Session %s: %s -> %s", state, a.current, target)
		a.current = target
	}
}

// openStore retourne le stockage, une sonde de disponibilité et une fonction de fermeture
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func(context.Context) error, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return storage.NewMemoryStore(), nil, nil, nil

	case config.StorageMongo:
		if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
			return nil, nil, nil, err
		}
		ping := func(context.Context) error { return database.Ping() }
		return storage.NewMongoStore(database.DB, cfg.SessionNamespace), ping, database.Close, nil

	case config.StorageRedis:
		client := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("connexion à Redis (%s): %w", cfg.RedisAddr, err)
		}
		log.Println("✓ Connexion à Redis établie")
		store := storage.NewRedisStore(client, cfg.SessionNamespace)
		ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return store, ping, store.Close, nil

	default:
		store, err := storage.NewFileStore(cfg.StoragePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, nil, nil
	}
}
