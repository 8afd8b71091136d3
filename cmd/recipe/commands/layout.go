package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/app"
)

func (c *CLI) newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the cmake folder layout for the selected settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			create, _ := cmd.Flags().GetBool("create")
			folders, err := c.app.Layout(cmd.Context(), app.LayoutOptions{
				SettingsOptions: settingsOptions(cmd),
				Create:          create,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, row := range [][2]string{
				{"source", folders.Source},
				{"build", folders.Build},
				{"generators", folders.Generators},
				{"includes", folders.Includes},
			} {
				_, _ = fmt.Fprintf(w, "%-11s %s\n", row[0], filepath.ToSlash(row[1]))
			}
			return nil
		},
	}
	addSettingsFlags(cmd)
	cmd.Flags().Bool("create", false, "Create the build and generators folders")
	return cmd
}
