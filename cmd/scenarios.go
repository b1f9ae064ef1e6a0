package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/i18n"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the practice scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		secondary := resolveLanguage(cmd) == i18n.Secondary
		verbose, _ := cmd.Flags().GetBool("prompts")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %-32s  %-16s  %-6s  %s\n", "ID", "Title", "Level", "Form", "Prompts")
		fmt.Fprintln(out, strings.Repeat("─", 84))

		cat := catalog.Default()
		for _, sc := range cat.All() {
			fmt.Fprintf(out, "%-16s  %-32s  %-16s  %-6s  %d\n",
				sc.ID,
				truncate(sc.DisplayTitle(secondary), 32),
				sc.DisplayDifficulty(secondary),
				sc.Formality,
				len(sc.Prompts),
			)
			if verbose {
				for i, p := range sc.Prompts {
					fmt.Fprintf(out, "    %d. %s\n", i+1, catalog.Localized(p.Text, p.Translation, secondary))
				}
			}
		}
		return nil
	},
}

func init() {
	scenariosCmd.Flags().BoolP("prompts", "p", false, "Also print each scenario's prompts")
}
