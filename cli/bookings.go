package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"sahne-client/models"
	"sahne-client/reservation"
	"sahne-client/session"
	"sahne-client/utils"

	"github.com/spf13/cobra"
)

func newBookingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"reservations"},
		Short:   "Suivre et gérer ses réservations",
	}
	cmd.AddCommand(
		newBookingsListCommand(),
		newBookingsShowCommand(),
		newTransitionCommand("cancel", "Annuler une réservation (client)", func(app *App, cmd *cobra.Command, id int64) error {
			return app.Reservations.CancelReservation(cmd.Context(), id)
		}),
		newTransitionCommand("confirm", "Accepter une demande (chef)", func(app *App, cmd *cobra.Command, id int64) error {
			return app.Reservations.ConfirmReservation(cmd.Context(), id)
		}),
		newTransitionCommand("complete", "Marquer une prestation comme réalisée (chef)", func(app *App, cmd *cobra.Command, id int64) error {
			return app.Reservations.CompleteReservation(cmd.Context(), id)
		}),
		newRejectCommand(),
	)
	return cmd
}

func newBookingsListCommand() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lister les réservations à venir et passées",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireAuth(cmd, session.RouteBookings)
			if err != nil {
				return err
			}
			list, err := app.Reservations.GetMyReservations(cmd.Context(), models.ReservationStatus(status))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			upcoming, past := reservation.SplitBookings(list, time.Now(), app.Location())
			fmt.Fprintf(out, "À venir (%d)\n", len(upcoming))
			for _, r := range upcoming {
				printBookingLine(out, r)
			}
			fmt.Fprintf(out, "Passées (%d)\n", len(past))
			for _, r := range past {
				printBookingLine(out, r)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filtrer par statut (pending, confirmed, completed...)")
	return cmd
}

func newBookingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Afficher une réservation et son suivi",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireAuth(cmd, session.RouteBookings)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			r, err := app.Reservations.GetReservationByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printBookingLine(out, *r)
			if r.Package != nil {
				fmt.Fprintf(out, "Formule: %s\n", packageName(*r.Package))
			}
			fmt.Fprintf(out, "Adresse: %s\n", r.Address)
			if r.SpecialOccasion != nil {
				fmt.Fprintf(out, "Occasion: %s\n", *r.SpecialOccasion)
			}
			if r.DietaryNotes != nil {
				fmt.Fprintf(out, "Régime: %s\n", *r.DietaryNotes)
			}
			if r.RejectionReason != nil {
				fmt.Fprintf(out, "Motif du refus: %s\n", *r.RejectionReason)
			}
			for _, step := range reservation.Timeline(*r) {
				mark := "○"
				if step.Active {
					mark = "●"
				}
				line := fmt.Sprintf("  %s %s", mark, step.Label)
				if step.Date != nil && !step.Date.IsZero() {
					line += " (" + step.Date.Format("January 2, 2006") + ")"
				}
				fmt.Fprintln(out, line)
			}

			var actions []string
			if reservation.CanCancel(*r) {
				actions = append(actions, "cancel")
			}
			if reservation.CanReview(*r) {
				actions = append(actions, "review")
			}
			if len(actions) > 0 {
				fmt.Fprintf(out, "Actions: %s\n", strings.Join(actions, ", "))
			}
			return nil
		},
	}
}

// newTransitionCommand construit une commande de changement de statut sans paramètre
func newTransitionCommand(use, short string, apply func(app *App, cmd *cobra.Command, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireAuth(cmd, session.RouteBookings)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := apply(app, cmd, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Réservation #%d: %s\n", id, use)
			return nil
		},
	}
}

func newRejectCommand() *cobra.Command {
	var reason string

	cmd := newTransitionCommand("reject", "Refuser une demande avec un motif (chef)", func(app *App, cmd *cobra.Command, id int64) error {
		return app.Reservations.RejectReservation(cmd.Context(), id, reason)
	})
	cmd.Flags().StringVar(&reason, "reason", "", "motif du refus")
	return cmd
}

func printBookingLine(out io.Writer, r models.Reservation) {
	who := ""
	if r.Chef != nil {
		who = r.Chef.Name
	}
	fmt.Fprintf(out, "#%d %s %s %s, %d convives, %s [%s]\n",
		r.ID, who, utils.FormatDate(r.Date), r.Time, r.GuestCount, utils.FormatPrice(r.TotalPrice), reservation.StatusLabel(r.Status))
}

func packageName(p models.ReservationPackage) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}
