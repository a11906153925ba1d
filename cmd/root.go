package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/backlogbot/backlog-bot/backlogbot"
	"github.com/backlogbot/backlog-bot/backlogbot/commands"
	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/backlogbot/logger"
	"github.com/disgoorg/disgo/bot"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "unknown"

	configPath     string
	noSyncCommands bool
)

var rootCmd = &cobra.Command{
	Use:           "backlog-bot",
	Short:         "Discord bot for keeping a Steam game backlog",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
	rootCmd.Flags().BoolVar(&noSyncCommands, "no-sync-commands", false, "skip pushing slash commands to the configured guilds on start")
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("Exiting", slog.String("type", "sys"), slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

// loadConfig loads and validates the config, then installs the logger at the configured level.
func loadConfig() (*backlogbot.Config, error) {
	cfg, err := backlogbot.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(logger.NewHandler(os.Stdout, &logger.Options{
		Level:   cfg.Log.Level,
		NoColor: cfg.Log.NoColor,
	})))
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func shouldSyncCommands(cfg *backlogbot.Config) bool {
	return cfg.Bot.SyncCommands && !noSyncCommands
}

func runBot(cmd *cobra.Command, _ []string) error {
	logger.LogSystem("Starting Backlog Bot",
		slog.String("version", Version),
		slog.String("commit", Commit))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.LogSystem("Configuration loaded successfully", slog.String("driver", cfg.DB.Driver))

	b := backlogbot.New(*cfg, Version, Commit)

	setupCtx, cancel := context.WithTimeout(cmd.Context(), config.SchemaInitTimeout)
	defer cancel()
	if err = b.SetupStore(setupCtx); err != nil {
		return fmt.Errorf("failed to set up store: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		b.Close(ctx)
	}()

	if err = b.SetupLookup(); err != nil {
		return fmt.Errorf("failed to set up steam client: %w", err)
	}
	b.SetupService()
	b.StartAPI()

	dispatcher := commands.NewDispatcher(b.Service, b.Paginator)
	listeners := append(dispatcher.Listeners(), bot.NewListenerFunc(b.OnReady))
	if err = b.SetupBot(listeners...); err != nil {
		return fmt.Errorf("failed to set up bot: %w", err)
	}

	if shouldSyncCommands(cfg) {
		logger.LogSystem("Syncing commands", slog.Any("guild_ids", cfg.Bot.GuildIDs))
		if err = b.SyncCommands(); err != nil {
			logger.LogError("Command sync failed, continuing with existing commands", err)
		}
	}

	openCtx, openCancel := context.WithTimeout(cmd.Context(), config.GatewayOpenTimeout)
	defer openCancel()
	if err = b.Client.OpenGateway(openCtx); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}

	logger.LogSystem("Bot is running. Press CTRL-C to exit.")
	<-cmd.Context().Done()
	logger.LogSystem("Shutting down bot...")
	return nil
}
