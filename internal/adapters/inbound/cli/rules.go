package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dfguard/dfguard/internal/adapters/outbound/tui"
	"github.com/dfguard/dfguard/internal/domain"
	"github.com/dfguard/dfguard/internal/domain/engine"
)

type ruleJSON struct {
	Name     string          `json:"name"`
	Category domain.Category `json:"category"`
}

func newRulesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the registered rules",
		Long:  "List the built-in rules by category, in the order they run.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := engine.Default()
			byCategory := make(map[domain.Category][]domain.Rule, len(domain.Categories))
			list := []ruleJSON{}
			for _, c := range domain.Categories {
				byCategory[c] = eng.Rules(c)
				for _, r := range byCategory[c] {
					list = append(list, ruleJSON{Name: r.Name(), Category: c})
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(byCategory))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
