package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yaara40/academic-department-website-sub000/internal/config"
	"github.com/Yaara40/academic-department-website-sub000/internal/container"
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Mark past-dated events as ended",
	Long: `Run the expiry sweep once: every event whose date has passed and
that is not already ended is transitioned to the ended status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctr, err := container.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		count := ctr.EventService().SweepExpired(context.Background())
		fmt.Printf("marked %d event(s) as ended\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
}
