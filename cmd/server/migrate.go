package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tasklister/tasklister-api/internal/config"
	"github.com/tasklister/tasklister-api/internal/database"
	"github.com/tasklister/tasklister-api/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		log := logging.New(os.Stdout, cfg.GinMode, cfg.LogLevel)

		db, err := database.Connect(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer database.Close(db)

		return database.Migrate(db, log)
	},
}
