package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yaara40/academic-department-website-sub000/internal/config"
	"github.com/Yaara40/academic-department-website-sub000/internal/container"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fixture data from the seed file",
	Long: `Load demo admin accounts, events and page content from the
configured YAML fixture file. Seeding never runs implicitly at startup;
it is meant for fresh databases and demos.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if file, _ := cmd.Flags().GetString("file"); file != "" {
			cfg.Seed.File = file
		}

		ctr, err := container.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		if err := ctr.SeedLoader().LoadFile(context.Background(), cfg.Seed.File); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}

		fmt.Println("seed complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	seedCmd.Flags().String("file", "", "Seed file path (overrides config)")
}
