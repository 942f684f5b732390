package mockdata

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler fait avancer les réservations dans le temps
type Scheduler struct {
	store *Store
	cron  *cron.Cron
}

// NewScheduler crée une nouvelle instance
func NewScheduler(store *Store) *Scheduler {
	return &Scheduler{
		store: store,
		cron:  cron.New(),
	}
}

// Start démarre le cron job
func (sc *Scheduler) Start() error {
	// Vérifier toutes les minutes si des prestations confirmées sont passées
	if _, err := sc.cron.AddFunc("@every 1m", sc.completePastReservations); err != nil {
		return err
	}
	sc.cron.Start()
	log.Println("✓ Cron job réservations démarré (vérification toutes les minutes)")
	return nil
}

// Stop arrête le cron job et attend la fin d'une exécution en cours
func (sc *Scheduler) Stop() {
	<-sc.cron.Stop().Done()
}

// completePastReservations passe en "completed" les prestations confirmées dont le créneau est passé
func (sc *Scheduler) completePastReservations() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := sc.store.CompletePast(ctx)
	if err != nil {
		log.Printf("❌ Erreur lors de la clôture des réservations passées: %v", err)
	}
	if count == 0 {
		return // Rien à faire
	}
	log.Printf("🍽️ %d réservation(s) marquée(s) comme terminée(s)", count)
}
