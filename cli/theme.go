package cli

import (
	"fmt"

	"sahne-client/theme"

	"github.com/spf13/cobra"
)

func newThemeCommand() *cobra.Command {
	var systemDark bool

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Préférence d'affichage clair/sombre",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Afficher la préférence et la palette appliquée",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := appFrom(cmd).Theme
			colors := manager.Colors(systemDark)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Thème: %s (sombre: %t)\n", manager.Mode(), manager.IsDark(systemDark))
			fmt.Fprintf(out, "Fond %s, texte %s, accent %s\n", colors.Background, colors.Text, colors.Accent)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <light|dark|auto>",
		Short: "Changer la préférence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := theme.ParseMode(args[0])
			if err != nil {
				return err
			}
			if err := appFrom(cmd).Theme.Set(cmd.Context(), mode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Thème: %s\n", mode)
			return nil
		},
	})

	cmd.PersistentFlags().BoolVar(&systemDark, "system-dark", false, "le système est en mode sombre (pour le mode auto)")
	return cmd
}
