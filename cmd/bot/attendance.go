package main

import (
	"context"
	"fmt"

	"menubot/internal/config"
	"menubot/internal/repository/postgres"
	"menubot/internal/service"

	"github.com/spf13/cobra"
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Manage human attendances",
}

var attendanceCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Close a user's attendance and return them to the menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		chatID, _ := cmd.Flags().GetString("chat")
		robotID, _ := cmd.Flags().GetInt64("robot")
		if chatID == "" {
			return fmt.Errorf("--chat is required")
		}

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

		svc := service.NewAttendanceService(
			robotID,
			postgres.NewUserRepo(db),
			postgres.NewAttendanceRepo(db),
			logger,
		)
		closed, err := svc.Close(context.Background(), chatID)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "closed %d attendance(s) for chat %s\n", closed, chatID)
		return nil
	},
}

func init() {
	attendanceCloseCmd.Flags().String("chat", "", "Chat id of the user")
	attendanceCloseCmd.Flags().Int64("robot", 1, "Robot the chat belongs to")
	attendanceCmd.AddCommand(attendanceCloseCmd)
	rootCmd.AddCommand(attendanceCmd)
}
