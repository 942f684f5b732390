package cli

import (
	"fmt"
	"strings"

	"sahne-client/apierror"
	"sahne-client/constants"
	"sahne-client/models"
	"sahne-client/reservation"
	"sahne-client/session"
	"sahne-client/utils"

	"github.com/spf13/cobra"
)

// bookOptions regroupe les saisies des trois étapes de réservation
type bookOptions struct {
	chefID      int64
	packageID   int64
	date        string
	period      string
	slot        string
	guests      int
	eventType   string
	dietary     []string
	requests    string
	address     string
	addressType string
	acceptTerms bool
}

func newBookCommand() *cobra.Command {
	var opts bookOptions

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Réserver une formule (date, détails, confirmation)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireAuth(cmd, session.RouteReservationNew)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			profile, err := app.Chefs.GetChefByID(ctx, opts.chefID)
			if err != nil {
				return err
			}
			wizard, err := reservation.NewFlow(app.Reservations, app.Location()).Start(*profile, opts.packageID)
			if err != nil {
				return err
			}
			if err := fillWizard(wizard, opts); err != nil {
				wizard.Abort()
				return err
			}

			draft := wizard.Draft()
			fmt.Fprintf(out, "%s avec %s\n", draft.PackageName, draft.ChefName)
			fmt.Fprintf(out, "Le %s à %s, %d convives\n", utils.FormatDate(draft.Date), draft.Time, draft.GuestCount)
			fmt.Fprintf(out, "%s (%s)\n", draft.Address, draft.AddressType)
			fmt.Fprintf(out, "Total: %s\n", utils.FormatPrice(wizard.Total()))

			if !opts.acceptTerms {
				wizard.Abort()
				return apierror.ClientValidation(constants.MsgAcceptTerms, map[string][]string{"terms": {constants.MsgAcceptTerms}})
			}
			if err := wizard.AcceptTerms(true); err != nil {
				return err
			}

			result, err := wizard.Submit(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Demande #%d envoyée à %s\n", result.ReservationID, result.ChefName)
			if result.Message != "" {
				fmt.Fprintln(out, result.Message)
			}
			app.navigate(session.RouteBookings)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.chefID, "chef", 0, "identifiant du chef")
	flags.Int64Var(&opts.packageID, "package", 0, "identifiant de la formule")
	flags.StringVar(&opts.date, "date", "", "jour YYYY-MM-DD (par défaut demain)")
	flags.StringVar(&opts.period, "period", string(reservation.Dinner), "service: lunch ou dinner")
	flags.StringVar(&opts.slot, "time", "", "créneau HH:MM du service")
	flags.IntVar(&opts.guests, "guests", reservation.DefaultGuests, "nombre de convives")
	flags.StringVar(&opts.eventType, "event", "", "occasion ("+strings.Join(reservation.EventTypes, ", ")+")")
	flags.StringSliceVar(&opts.dietary, "dietary", nil, "restriction alimentaire (répétable)")
	flags.StringVar(&opts.requests, "requests", "", "demandes particulières")
	flags.StringVar(&opts.address, "address", "", "adresse de la prestation")
	flags.StringVar(&opts.addressType, "address-type", string(models.AddressHome), "home, hotel, villa ou other")
	flags.BoolVar(&opts.acceptTerms, "accept-terms", false, "accepter les conditions de réservation")
	_ = cmd.MarkFlagRequired("chef")
	_ = cmd.MarkFlagRequired("package")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

// fillWizard rejoue les saisies de la ligne de commande étape par étape
func fillWizard(w *reservation.Wizard, opts bookOptions) error {
	if opts.date != "" {
		if err := w.SelectDate(opts.date); err != nil {
			return err
		}
	}
	period, ok := reservation.ParseMealPeriod(opts.period)
	if !ok {
		return apierror.ClientValidation(constants.MsgFixErrors, map[string][]string{"meal_period": {fmt.Sprintf("service inconnu: %s", opts.period)}})
	}
	if err := w.SetMealPeriod(period); err != nil {
		return err
	}
	if err := w.SelectTime(opts.slot); err != nil {
		return err
	}
	if err := w.ContinueToDetails(); err != nil {
		return err
	}

	if err := w.SetGuestCount(opts.guests); err != nil {
		return err
	}
	if opts.eventType != "" {
		if err := w.SetEventType(opts.eventType); err != nil {
			return err
		}
	}
	if err := w.SetDietary(opts.dietary); err != nil {
		return err
	}
	if opts.requests != "" {
		if _, err := w.SetSpecialRequests(opts.requests); err != nil {
			return err
		}
	}
	if err := w.SetAddress(opts.address); err != nil {
		return err
	}
	if err := w.SetAddressType(models.AddressType(opts.addressType)); err != nil {
		return err
	}
	return w.ContinueToConfirm()
}
