package main

import (
	"context"
	"fmt"

	"menubot/internal/config"
	"menubot/internal/menu"
	"menubot/internal/repository/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Author the menu tree",
}

var menuValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a menu tree file without touching the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "menu tree for robot %d is valid: %d nodes\n", tree.RobotID, tree.Count())
		return nil
	},
}

var menuImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace a robot's menu tree with the contents of a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := loadTree(cmd)
		if err != nil {
			return err
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

		ctx := context.Background()
		if err := postgres.NewRobotRepo(db).Ensure(ctx, tree.RobotID, fmt.Sprintf("robot-%d", tree.RobotID)); err != nil {
			return fmt.Errorf("failed to ensure robot: %w", err)
		}
		if err := postgres.NewMenuRepo(db).ImportTree(ctx, tree.RobotID, tree); err != nil {
			return fmt.Errorf("failed to import menu tree: %w", err)
		}

		logger.Info("Menu tree imported",
			zap.Int64("robot_id", tree.RobotID),
			zap.Int("nodes", tree.Count()),
		)
		return nil
	},
}

func loadTree(cmd *cobra.Command) (menu.Tree, error) {
	path, _ := cmd.Flags().GetString("file")

	tree, err := menu.LoadTreeFile(path)
	if err != nil {
		return menu.Tree{}, err
	}
	if err := tree.Validate(); err != nil {
		return menu.Tree{}, fmt.Errorf("invalid menu tree %s:\n%w", path, err)
	}
	return tree, nil
}

func init() {
	for _, c := range []*cobra.Command{menuValidateCmd, menuImportCmd} {
		c.Flags().StringP("file", "f", "menu.yaml", "Path to the menu tree file")
		menuCmd.AddCommand(c)
	}
	rootCmd.AddCommand(menuCmd)
}
