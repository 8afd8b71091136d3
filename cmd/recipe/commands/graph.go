package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/app"
	"go.trai.ch/recipe/internal/core/domain"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [package]",
		Short: "Resolve the dependency graph and print every package, or one package and its dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := c.app.Resolve(cmd.Context(), app.ResolveOptions{SettingsOptions: settingsOptions(cmd)})
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if graph, err = subgraph(graph, args[0]); err != nil {
					return err
				}
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), domain.NewLockfile(graph, domain.BuildSettings{}).Packages)
			}

			w := cmd.OutOrStdout()
			for p := range graph.Packages() {
				line := p.Ref.String() + " " + p.PackageID
				if p.Direct {
					line += " (direct)"
				}
				_, _ = fmt.Fprintln(w, line)
				if p.Options.Len() > 0 {
					_, _ = fmt.Fprintf(w, "    options: %s\n", p.Options)
				}
				if len(p.Requires) > 0 {
					_, _ = fmt.Fprintf(w, "    requires: %s\n", strings.Join(p.Requires, ", "))
				}
			}
			return nil
		},
	}
	addSettingsFlags(cmd)
	cmd.Flags().Bool("json", false, "Print the graph as JSON")
	return cmd
}

// subgraph keeps name and every package it depends on, in graph order.
func subgraph(g *domain.Graph, name string) (*domain.Graph, error) {
	closure, err := g.Closure(name)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(closure)+1)
	keep[name] = true
	for _, dep := range closure {
		keep[dep] = true
	}

	sub := domain.NewGraph()
	for p := range g.Packages() {
		if !keep[p.Ref.Name] {
			continue
		}
		if err := sub.AddPackage(p); err != nil {
			return nil, err
		}
	}
	return sub, nil
}
