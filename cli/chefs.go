package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"sahne-client/models"
	"sahne-client/session"
	"sahne-client/utils"

	"github.com/spf13/cobra"
)

func newChefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chefs",
		Short: "Parcourir les chefs",
	}
	cmd.AddCommand(newChefsListCommand(), newChefsShowCommand(), newChefsSearchCommand(), newChefsReviewsCommand())
	return cmd
}

func newChefsListCommand() *cobra.Command {
	var (
		filters                      models.ChefFilters
		minPrice, maxPrice, minScore float64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lister les chefs avec filtres et pagination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireAuth(cmd, session.RouteExplore)
			if err != nil {
				return err
			}

			// Seuls les filtres saisis sont envoyés
			flags := cmd.Flags()
			if flags.Changed("min-price") {
				filters.MinPrice = &minPrice
			}
			if flags.Changed("max-price") {
				filters.MaxPrice = &maxPrice
			}
			if flags.Changed("min-rating") {
				filters.MinRating = &minScore
			}

			resp, err := app.Chefs.GetChefs(cmd.Context(), filters)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(resp.Data) == 0 {
				fmt.Fprintln(out, "Aucun chef ne correspond à ces critères")
				return nil
			}
			for _, chef := range resp.Data {
				printChefLine(out, chef)
			}
			fmt.Fprintf(out, "Page %d/%d (%d chefs)\n", resp.Meta.CurrentPage, resp.Meta.LastPage, resp.Meta.Total)
			if resp.Meta.HasNextPage() {
				fmt.Fprintf(out, "Suite: --page %d\n", resp.Meta.CurrentPage+1)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filters.Search, "search", "s", "", "texte libre")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "prix minimum")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "prix maximum")
	cmd.Flags().StringSliceVar(&filters.Specialties, "specialty", nil, "spécialité (répétable)")
	cmd.Flags().Float64Var(&minScore, "min-rating", 0, "note minimale")
	cmd.Flags().IntVar(&filters.Page, "page", 0, "page demandée")
	return cmd
}

func newChefsSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <texte>",
		Short: "Rechercher des chefs par texte libre",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireAuth(cmd, session.RouteExplore)
			if err != nil {
				return err
			}
			chefs, err := app.Chefs.SearchChefs(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(chefs) == 0 {
				fmt.Fprintln(out, "Aucun résultat")
				return nil
			}
			for _, chef := range chefs {
				printChefLine(out, chef)
			}
			return nil
		},
	}
}

func newChefsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Afficher le profil et les formules d'un chef",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireAuth(cmd, session.RouteExplore)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			profile, err := app.Chefs.GetChefByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %s\n", profile.User.Name, profile.Title)
			if len(profile.Specialties) > 0 {
				fmt.Fprintf(out, "Spécialités: %s\n", strings.Join(profile.Specialties, ", "))
			}
			if profile.Biography != "" {
				fmt.Fprintf(out, "\n%s\n", profile.Biography)
			}
			fmt.Fprintln(out, "\nFormules:")
			for _, pkg := range profile.ActivePackages() {
				fmt.Fprintf(out, "  #%d %s: %s / personne, %d plats", pkg.ID, pkg.DisplayName, utils.FormatPrice(pkg.PricePerPerson), pkg.CoursesCount)
				if pkg.IncludesWine {
					fmt.Fprint(out, ", vins inclus")
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func newChefsReviewsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reviews <id>",
		Short: "Lister les avis d'un chef",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireAuth(cmd, session.RouteExplore)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			reviews, err := app.Reviews.GetChefReviews(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(reviews) == 0 {
				fmt.Fprintln(out, "Aucun avis pour le moment")
				return nil
			}
			for _, review := range reviews {
				printReview(out, review)
			}
			return nil
		},
	}
}

func printChefLine(out io.Writer, chef models.Chef) {
	fmt.Fprintf(out, "#%d %s ★ %.1f (%d avis)", chef.ID, chef.Name(), chef.Rating, chef.TotalReviews)
	if price := chef.StartingPrice(); price > 0 {
		fmt.Fprintf(out, " dès %s", utils.FormatAmount(price))
	}
	if len(chef.Specialties) > 0 {
		fmt.Fprintf(out, " [%s]", strings.Join(chef.Specialties, ", "))
	}
	fmt.Fprintln(out)
}

func printReview(out io.Writer, review models.Review) {
	author := "Client"
	if review.Client != nil {
		author = review.Client.Name
	}
	fmt.Fprintf(out, "#%d %s ★ %.1f (%s)\n", review.ID, author, review.OverallRating, review.CreatedAt.Format("January 2, 2006"))
	if review.Comment != nil {
		fmt.Fprintf(out, "  %s\n", *review.Comment)
	}
	if review.HasReply() {
		fmt.Fprintf(out, "  ↳ Réponse du chef: %s\n", *review.ChefReply)
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("identifiant invalide: %s", raw)
	}
	return id, nil
}
