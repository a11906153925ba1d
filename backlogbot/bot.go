package backlogbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/backlogbot/backlog-bot/backlogbot/api"
	"github.com/backlogbot/backlog-bot/backlogbot/commands"
	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/backlogbot/database"
	"github.com/backlogbot/backlog-bot/backlogbot/database/mongostore"
	"github.com/backlogbot/backlog-bot/backlogbot/database/repositories"
	"github.com/backlogbot/backlog-bot/backlogbot/services/steam"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string

	DB      *database.DB
	Mongo   *mongostore.Store
	Store   backlog.Store
	Lookup  backlog.GameLookup
	Service backlog.Service
	API     *api.Server
}

// SetupStore connects the configured backend and makes sure its schema exists.
func (b *Bot) SetupStore(ctx context.Context) error {
	switch b.Cfg.DB.Driver {
	case DriverMongo:
		store, err := mongostore.Connect(ctx, b.Cfg.Mongo)
		if err != nil {
			return err
		}
		if err = store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return err
		}
		b.Mongo = store
		b.Store = store

	default:
		db, err := database.New(ctx, b.Cfg.DB.Postgres)
		if err != nil {
			return err
		}
		if err = db.InitializeSchema(ctx); err != nil {
			db.Close()
			return err
		}
		b.DB = db
		b.Store = repositories.NewStore(db.BunDB())
	}

	slog.Info("Store ready",
		slog.String("type", "db"),
		slog.String("driver", b.Cfg.DB.Driver))
	return nil
}

// SetupLookup builds the Steam client and wraps it in the cache.
func (b *Bot) SetupLookup() error {
	client := steam.NewClient(
		steam.WithTimeout(b.Cfg.Steam.Timeout.Std()),
		steam.WithAPIBaseURL(b.Cfg.Steam.APIBaseURL),
		steam.WithStoreBaseURL(b.Cfg.Steam.StoreBaseURL),
	)

	cached, err := steam.NewCachedClient(client,
		b.Cfg.Steam.CatalogTTL.Std(),
		b.Cfg.Steam.DetailTTL.Std(),
		b.Cfg.Steam.DetailCacheSize)
	if err != nil {
		return err
	}

	b.Lookup = cached
	return nil
}

// SetupService requires SetupStore and SetupLookup to have run.
func (b *Bot) SetupService() {
	b.Service = backlog.NewService(b.Store, b.Lookup)
}

// StartAPI serves the read-only HTTP API in the background when enabled.
func (b *Bot) StartAPI() {
	if !b.Cfg.API.Enabled {
		return
	}
	b.API = api.NewServer(b.Service, b.Version, b.Commit)
	go func() {
		if err := b.API.Listen(b.Cfg.API.Listen); err != nil {
			slog.Error("HTTP API stopped", slog.String("type", "sys"), slog.Any("error", err))
		}
	}()
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		bot.WithEventManagerConfigOpts(bot.WithAsyncEventsEnabled()),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Backlog Bot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), config.PresenceTimeout)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithPlayingActivity("through your backlog"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.String("type", "sys"), slog.Any("error", err))
	}
}

// SyncCommands pushes the command list to every configured guild. Each guild
// is attempted even if an earlier one fails.
func (b *Bot) SyncCommands() error {
	var errs []error
	for _, guildID := range b.Cfg.Bot.GuildIDs {
		if _, err := b.Client.Rest().SetGuildCommands(b.Cfg.Bot.ApplicationID, guildID, commands.Commands); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.String("guild_id", guildID.String()),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"))
			errs = append(errs, fmt.Errorf("guild %s: %w", guildID, err))
			continue
		}
		slog.Info("Commands synced",
			slog.String("type", "sys"),
			slog.String("guild_id", guildID.String()),
			slog.Int("count", len(commands.Commands)))
	}
	return errors.Join(errs...)
}

func (b *Bot) Close(ctx context.Context) {
	if b.API != nil {
		if err := b.API.Shutdown(ctx); err != nil {
			slog.Error("Failed to stop HTTP API", slog.String("type", "sys"), slog.Any("error", err))
		}
	}
	if b.Client != nil {
		b.Client.Close(ctx)
	}
	if b.DB != nil {
		b.DB.Close()
	}
	if b.Mongo != nil {
		if err := b.Mongo.Close(ctx); err != nil {
			slog.Error("Failed to close mongo", slog.String("type", "db"), slog.Any("error", err))
		}
	}
}
