package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yaara40/academic-department-website-sub000/internal/config"
	"github.com/Yaara40/academic-department-website-sub000/internal/database"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}

		fmt.Println("migration complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
}
