// cmd/outfitctl/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/javajoker/outfit-backend/internal/outfit"
	"github.com/javajoker/outfit-backend/internal/utils"
)

var (
	catalogPath string
	profilePath string
	batchSize   int
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "outfitctl",
	Short: "Build and inspect outfit generations offline",
	Long:  "Score a catalog against a style profile, print the completion prompt, run a generation, or repair a saved completion.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetOutput(cmd.ErrOrStderr())
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "catalog.json", "Catalog JSON file (array of products)")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "profile.yaml", "Style profile YAML file")
	rootCmd.PersistentFlags().IntVar(&batchSize, "batch", outfit.DefaultBatchSize, "Number of outfits per generation")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(repairCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCatalog(path string) ([]outfit.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var raws []outfit.RawProduct
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return outfit.NormalizeProducts(raws), nil
}

func loadProfile(path string) (outfit.UserProfile, error) {
	var profile outfit.UserProfile

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("parse profile %s: %w", path, err)
	}

	r := &profile.PriceRange
	if r.Min == 0 && r.Max == 0 && !r.IsUnlimited {
		r.IsUnlimited = true
	}

	if err := utils.ValidateStruct(&profile); err != nil {
		return profile, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return profile, nil
}

func engineConfig() outfit.Config {
	cfg := outfit.DefaultConfig()
	cfg.BatchSize = batchSize
	return cfg
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
