package cli

import (
	"fmt"

	"sahne-client/apierror"
	"sahne-client/constants"
	"sahne-client/models"
	"sahne-client/reservation"
	"sahne-client/session"

	"github.com/spf13/cobra"
)

func newReviewCommand() *cobra.Command {
	var (
		rating  int
		ratings models.Ratings
		comment string
	)

	cmd := &cobra.Command{
		Use:   "review <reservation-id>",
		Short: "Noter une prestation terminée",
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

			form := reservation.ReviewForm{Ratings: ratings, Comment: comment}
			if cmd.Flags().Changed("rating") {
				form.Ratings = reservation.UniformRatings(rating)
			}
			if err := form.Validate(*r); err != nil {
				return err
			}

			review, err := app.Reviews.CreateReview(cmd.Context(), form.Request(id))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Avis #%d publié (★ %.1f)\n", review.ID, review.OverallRating)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&rating, "rating", 0, "même note de 1 à 5 pour les quatre critères")
	flags.IntVar(&ratings.FoodQuality, "food", 0, "qualité des plats (1 à 5)")
	flags.IntVar(&ratings.Presentation, "presentation", 0, "présentation (1 à 5)")
	flags.IntVar(&ratings.Professionalism, "professionalism", 0, "professionnalisme (1 à 5)")
	flags.IntVar(&ratings.ValueForMoney, "value", 0, "rapport qualité-prix (1 à 5)")
	flags.StringVarP(&comment, "comment", "m", "", "commentaire")
	return cmd
}

func newReplyCommand() *cobra.Command {
	var (
		chefID int64
		reply  string
	)

	cmd := &cobra.Command{
		Use:   "reply <review-id>",
		Short: "Répondre à un avis (chef)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireAuth(cmd, session.RouteChefHome)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			review := models.Review{ID: id}
			if chefID > 0 {
				found, err := findReview(cmd, app, chefID, id)
				if err != nil {
					return err
				}
				review = found
			}
			if err := reservation.ValidateReply(review, reply); err != nil {
				return err
			}

			updated, err := app.Reviews.ReplyToReview(cmd.Context(), id, reply)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Réponse publiée sur l'avis #%d\n", updated.ID)
			return nil
		},
	}
	cmd.Flags().Int64Var(&chefID, "chef", 0, "identifiant du chef, pour vérifier l'avis avant l'envoi")
	cmd.Flags().StringVarP(&reply, "message", "m", "", "réponse")
	return cmd
}

func findReview(cmd *cobra.Command, app *App, chefID, reviewID int64) (models.Review, error) {
	reviews, err := app.Reviews.GetChefReviews(cmd.Context(), chefID)
	if err != nil {
		return models.Review{}, err
	}
	for _, review := range reviews {
		if review.ID == reviewID {
			return review, nil
		}
	}
	return models.Review{}, apierror.ClientValidation(constants.ErrReviewNotFound, nil)
}
