package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/recipe/internal/core/domain"
)

type requirementJSON struct {
	Ref     string           `json:"ref"`
	Options domain.OptionSet `json:"options"`
}

func (c *CLI) newRequirementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requirements",
		Short: "List the declared requirements in declaration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reqs, err := c.app.Requirements(cmd.Context())
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				out := make([]requirementJSON, len(reqs))
				for i, r := range reqs {
					out[i] = requirementJSON{Ref: r.Ref.String(), Options: r.Options}
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			for _, r := range reqs {
				if r.Options.Len() == 0 {
					_, _ = fmt.Fprintln(w, r.Ref.String())
					continue
				}
				_, _ = fmt.Fprintf(w, "%s %s\n", r.Ref, r.Options)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the requirements as JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
