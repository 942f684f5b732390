package cli

import (
	"fmt"

	"sahne-client/apierror"
	"sahne-client/constants"

	"github.com/spf13/cobra"
)

// healthResponse est la réponse de GET /health
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Afficher la session, l'écran initial et l'état de l'API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			route, err := app.Session.InitialRoute(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Session: %s\n", app.Session.State())
			if user := app.Session.User(); user != nil {
				fmt.Fprintf(out, "Utilisateur: %s (%s)\n", user.Email, user.Role)
			}
			fmt.Fprintf(out, "Écran initial: %s\n", route)
			fmt.Fprintf(out, "Thème: %s\n", app.Theme.Mode())

			if app.Config != nil {
				fmt.Fprintf(out, "Stockage: %s\n", app.Config.StorageDriver)
			}
			if app.ping != nil {
				if err := app.ping(ctx); err != nil {
					fmt.Fprintf(out, "⚠️ Stockage injoignable: %v\n", err)
				} else {
					fmt.Fprintln(out, "✓ Stockage joignable")
				}
			}

			var health healthResponse
			if err := app.Client.Get(ctx, "/health", nil, &health); err != nil {
				fmt.Fprintf(out, "❌ API %s: %s\n", app.Client.BaseURL(), apierror.Message(err, constants.ErrNoResponse))
				return nil
			}
			fmt.Fprintf(out, "✓ API %s: %s\n", app.Client.BaseURL(), health.Status)
			return nil
		},
	}
}
