package cli

import (
	"fmt"

	"sahne-client/models"
	"sahne-client/session"
	"sahne-client/utils"

	"github.com/spf13/cobra"
)

func newLoginCommand() *cobra.Command {
	var req models.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Se connecter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			app.navigate(session.RouteLogin)
			if err := app.Session.Login(cmd.Context(), req); err != nil {
				return err
			}
			user := app.Session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Bienvenue %s (%s) -> %s\n", user.Name, user.Role, app.current)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "adresse email")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "mot de passe")
	return cmd
}

func newRegisterCommand() *cobra.Command {
	var (
		req  models.RegisterRequest
		role string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Créer un compte client ou chef",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			app.navigate(session.RouteRegister)
			req.Role = models.Role(role)
			if req.PasswordConfirmation == "" {
				req.PasswordConfirmation = req.Password
			}
			if err := app.Session.Register(cmd.Context(), req); err != nil {
				return err
			}
			user := app.Session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Compte créé pour %s (%s) -> %s\n", user.Email, user.Role, app.current)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "nom complet")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "adresse email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "téléphone (10 chiffres)")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "mot de passe (8 caractères minimum)")
	cmd.Flags().StringVar(&req.PasswordConfirmation, "password-confirmation", "", "confirmation (par défaut le mot de passe)")
	cmd.Flags().StringVar(&role, "role", string(models.RoleClient), "client ou chef")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Se déconnecter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			if err := app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Déconnecté")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Recharger et afficher l'utilisateur connecté",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireAuth(cmd, session.RouteProfile)
			if err != nil {
				return err
			}
			if err := app.Session.RefreshUser(cmd.Context()); err != nil {
				return err
			}
			user := app.Session.User()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
			fmt.Fprintf(out, "Rôle: %s\n", user.Role)
			if user.Phone != "" {
				fmt.Fprintf(out, "Téléphone: %s\n", utils.FormatPhone(user.Phone))
			}
			return nil
		},
	}
}

func newForgotPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Demander un lien de réinitialisation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := appFrom(cmd).Session.ForgotPassword(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", message)
			return nil
		},
	}
}

func newOnboardingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Écrans d'introduction",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "complete",
		Short: "Marquer l'introduction comme vue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			if err := app.Session.CompleteOnboarding(cmd.Context()); err != nil {
				return err
			}
			route, err := app.Session.InitialRoute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Introduction terminée -> %s\n", route)
			return nil
		},
	})
	return cmd
}
