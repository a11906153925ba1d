package cmd

import (
	"context"
	"fmt"

	"github.com/backlogbot/backlog-bot/backlogbot"
	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/backlogbot/logger"
	"github.com/spf13/cobra"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "create the database schema and indexes without starting the bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), config.SchemaInitTimeout)
		defer cancel()

		b := backlogbot.New(*cfg, Version, Commit)
		if err = b.SetupStore(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		closeCtx, closeCancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer closeCancel()
		b.Close(closeCtx)

		logger.LogSystem("Migration completed successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}
