package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the build folder and cached index entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, _ := cmd.Flags().GetBool("cache")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{}

			switch {
			case all:
				opts.Build = true
				opts.Home = true
			case cache:
				opts.Cache = true
			default:
				opts.Build = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("cache", "c", false, "Clean the package index cache")
	cmd.Flags().BoolP("all", "a", false, "Clean the build folder and the whole workspace home")

	return cmd
}
