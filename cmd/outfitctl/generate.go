// cmd/outfitctl/generate.go
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javajoker/outfit-backend/internal/config"
	"github.com/javajoker/outfit-backend/internal/outfit"
	"github.com/javajoker/outfit-backend/internal/services"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run a full generation against the configured completion service",
	Long:  "Loads OPENAI_* and cache settings from the environment (or .env), then prints the enriched outfits as JSON.",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}

	completer, closeCache, err := services.NewCachedCompleter(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	engineCfg := services.EngineConfigFrom(cfg.Outfit)
	if cmd.Flags().Changed("batch") {
		engineCfg.BatchSize = batchSize
	}
	engine := outfit.NewEngine(engineCfg, completer, logrus.WithField("component", "outfitctl"))

	result, err := engine.Generate(cmd.Context(), outfit.GenerateRequest{
		Catalog: catalog,
		Profile: profile,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}
