package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Resolve dependencies and generate the CMake integration files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			locked, _ := cmd.Flags().GetBool("locked")
			watch, _ := cmd.Flags().GetBool("watch")

			opts := app.InstallOptions{
				SettingsOptions: settingsOptions(cmd),
				Locked:          locked,
			}
			if watch {
				return c.app.Watch(cmd.Context(), opts)
			}
			_, err := c.app.Install(cmd.Context(), opts)
			return err
		},
	}
	addSettingsFlags(cmd)
	cmd.Flags().Bool("locked", false, "Fail if the resolved graph differs from recipe.lock")
	cmd.Flags().BoolP("watch", "w", false, "Reinstall whenever the recipe, profile or .env change")
	return cmd
}

func (c *CLI) newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Resolve dependencies and write recipe.lock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.Lock(cmd.Context(), app.ResolveOptions{SettingsOptions: settingsOptions(cmd)})
			return err
		},
	}
	addSettingsFlags(cmd)
	return cmd
}
