package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "menubot",
	Short:         "menubot is a menu-driven Telegram bot with human handoff",
	Long:          `menubot greets users, collects their name and onboarding answers, walks them through a numbered menu tree and hands them off to human attendants.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("migrations", "file://migrations", "Source URL of the database migrations")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable development logging")
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func migrationsSource(cmd *cobra.Command) string {
	source, _ := cmd.Flags().GetString("migrations")
	return source
}
