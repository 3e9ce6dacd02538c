package main

import (
	"fmt"

	"menubot/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		dbCfg, err := config.LoadDatabase()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := connectDatabase(dbCfg.DSN(), logger)
		if err != nil {
			return err
		}
		defer db.Close()

		down, _ := cmd.Flags().GetInt("down")
		if down > 0 {
			return rollbackMigrations(db, migrationsSource(cmd), down, logger)
		}

		if err := runMigrations(db, migrationsSource(cmd), logger); err != nil {
			return err
		}
		logger.Info("Database is up to date", zap.String("database", dbCfg.Name))
		return nil
	},
}

func init() {
	migrateCmd.Flags().Int("down", 0, "Roll back this many migrations instead of applying")
	rootCmd.AddCommand(migrateCmd)
}
