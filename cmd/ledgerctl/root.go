package main

import (
	"fmt"
	"os"

	"github.com/dom/esports-stats-ledger/internal/config"
	"github.com/dom/esports-stats-ledger/internal/logger"
	"github.com/dom/esports-stats-ledger/internal/repository/postgres"
	"github.com/dom/esports-stats-ledger/internal/service"
	"github.com/spf13/cobra"
)

var databaseURL string

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Esports stats ledger maintenance tool",
	Long:  "Create admin accounts, rebuild aggregates and print leaderboards straight from the ledger database.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "override DATABASE_URL")

	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(rebuildCmd)
	rootCmd.AddCommand(leaderboardCmd)
}

// openServices loads configuration the same way the server does and wires the
// service layer against the configured database.
func openServices() (*service.Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log := logger.New(cfg.LogLevel)
	repos := postgres.NewRepositories(db)
	return service.NewServices(repos, postgres.NewTransactor(db), cfg, log), nil
}
