package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Yaara40/academic-department-website-sub000/internal/api"
	"github.com/Yaara40/academic-department-website-sub000/internal/config"
	"github.com/Yaara40/academic-department-website-sub000/internal/container"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the deptsite API server.
The server listens on the configured host and port and serves the public
site endpoints, the admin panel API, and the admin live feed.`,
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

		logger := ctr.Logger()

		// Hot-reload the log level when the config file changes.
		if configPath != "" {
			watcher := config.NewWatcher(cfg, configPath)
			watcher.OnChange(func(newCfg *config.Config) {
				if level, err := logrus.ParseLevel(newCfg.Log.Level); err == nil {
					logger.SetLevel(level)
				}
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("config watcher not started")
			} else {
				defer watcher.Stop()
			}
		}

		go ctr.Hub().Run()

		router := api.SetupRoutes(cfg, ctr.DB(), ctr.Tokens(), ctr.Hub(), api.Controllers{
			Events:     api.NewEventController(ctr.EventService()),
			Activities: api.NewActivityController(ctr.ActivityService()),
			Contents:   api.NewContentController(ctr.ContentService()),
			Auth:       api.NewAuthController(ctr.AuthService()),
		})

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			logger.WithField("addr", addr).Info("server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Fatal("failed to start server")
			}
		}()

		// The expiry sweep also runs on a timer so past events end even
		// when no admin page triggers it.
		sweepDone := make(chan struct{})
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					ctr.EventService().SweepExpired(context.Background())
				case <-sweepDone:
					return
				}
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server")
		close(sweepDone)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Fatal("server forced to shutdown")
		}

		logger.Info("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
}
