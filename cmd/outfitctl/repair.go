// cmd/outfitctl/repair.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javajoker/outfit-backend/internal/outfit"
)

var proposalsPath string

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair and enrich a saved completion body",
	Long:  "Replays uniqueness repair and enrichment on a completion response captured earlier, without calling the completion service.",
	Args:  cobra.NoArgs,
	RunE:  runRepair,
}

func init() {
	repairCmd.Flags().StringVar(&proposalsPath, "proposals", "proposals.json", "Saved completion body ({\"outfits\": [...]})")
}

func runRepair(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}
	body, err := os.ReadFile(proposalsPath)
	if err != nil {
		return fmt.Errorf("read proposals: %w", err)
	}

	engine := outfit.NewEngine(engineConfig(), nil, nil)
	sel, err := engine.Prepare(cmd.Context(), catalog, profile)
	if err != nil {
		return err
	}

	proposals, err := outfit.ParseProposals(string(body), engine.Config().BatchSize)
	if err != nil {
		return err
	}

	repaired, report := outfit.Repair(proposals, sel.Pool)
	outfits := outfit.EnrichAll(repaired, outfit.NewLookup(sel.Lists), profile, report)

	return printJSON(cmd.OutOrStdout(), map[string]any{
		"outfits": outfits,
		"repair":  report,
	})
}
