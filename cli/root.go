// Package cli expose le client SAHNE en ligne de commande (binaire sahne).
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"sahne-client/apierror"
	"sahne-client/config"
	"sahne-client/session"

	"github.com/spf13/cobra"
)

// Opener construit l'application pour une commande
type Opener func(ctx context.Context) (*App, error)

type appKey struct{}

// Execute charge la configuration et lance la commande demandée
func Execute() {
	open := func(ctx context.Context) (*App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		return NewApp(ctx, cfg)
	}

	root := NewRootCommand(open)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %s\n", errorSummary(err))
		os.Exit(1)
	}
}

// NewRootCommand construit l'arbre des commandes
func NewRootCommand(open Opener) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "sahne",
		Short:         "Client SAHNE : réservation de chefs privés",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				log.SetOutput(io.Discard)
			}
			app, err := open(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Load(cmd.Context()); err != nil {
				log.Printf("⚠️ Chargement de l'état local: %v", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, app))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "afficher les journaux HTTP")

	root.AddCommand(
		newLoginCommand(),
		newRegisterCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newForgotPasswordCommand(),
		newOnboardingCommand(),
		newStatusCommand(),
		newChefsCommand(),
		newBookCommand(),
		newBookingsCommand(),
		newReviewCommand(),
		newReplyCommand(),
		newThemeCommand(),
	)
	closeAfterRun(root)
	return root
}

// closeAfterRun ferme l'application après chaque commande, y compris en cas d'erreur
// (cobra n'appelle pas PersistentPostRunE quand RunE échoue)
func closeAfterRun(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub)
	}
	if cmd.RunE == nil {
		return
	}

	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			app := appFrom(cmd)
			if app == nil {
				return
			}
			if closeErr := app.Close(); closeErr != nil {
				log.Printf("⚠️ Fermeture du stockage: %v", closeErr)
				if err == nil {
					err = closeErr
				}
			}
		}()
		return run(cmd, args)
	}
}

// appFrom retourne l'application ouverte par PersistentPreRunE
func appFrom(cmd *cobra.Command) *App {
	app, _ := cmd.Context().Value(appKey{}).(*App)
	return app
}

// requireAuth ouvre un écran protégé ; sans session la redirection mène à la connexion
func requireAuth(cmd *cobra.Command, route session.Route) (*App, error) {
	app := appFrom(cmd)
	if app == nil {
		return nil, errors.New("application non initialisée")
	}
	if app.navigate(route) == session.RouteLogin {
		return nil, &apierror.Error{Kind: apierror.KindUnauthorized, Message: "Vous devez être connecté (sahne login)"}
	}
	return app, nil
}

// errorSummary affiche message et erreurs de champ pour les erreurs API
func errorSummary(err error) string {
	if apiErr, ok := apierror.As(err); ok {
		return apiErr.Summary()
	}
	return err.Error()
}
