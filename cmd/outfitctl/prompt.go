// cmd/outfitctl/prompt.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajoker/outfit-backend/internal/outfit"
)

var promptJSON bool

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the completion prompt for a catalog and profile",
	Args:  cobra.NoArgs,
	RunE:  runPrompt,
}

func init() {
	promptCmd.Flags().BoolVar(&promptJSON, "json", false, "Output the prompt and candidate pool as JSON")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}

	engine := outfit.NewEngine(engineConfig(), nil, nil)
	sel, err := engine.Prepare(cmd.Context(), catalog, profile)
	if err != nil {
		return err
	}

	prompt := outfit.BuildPrompt(sel.Pool, profile, nil, engine.Config().BatchSize)

	out := cmd.OutOrStdout()
	if promptJSON {
		return printJSON(out, map[string]any{
			"system":        prompt.System,
			"user":          prompt.User,
			"pool":          sel.Pool,
			"low_inventory": sel.LowInventory,
		})
	}

	fmt.Fprintln(out, "# system")
	fmt.Fprintln(out, prompt.System)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "# user")
	fmt.Fprintln(out, prompt.User)
	return nil
}
