package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/backlogbot/interactions"
	"github.com/backlogbot/backlog-bot/backlogbot/utils"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"github.com/disgoorg/disgo/discord"
	"golang.org/x/sync/errgroup"
)

var SteamSearch = discord.SlashCommandCreate{
	Name:        "steam_search",
	Description: "Search the Steam catalog by title",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "title",
			Description: "Part of the game's title",
			Required:    true,
		},
	},
}

func SteamSearchHandler(svc backlog.Service) interactions.Handler {
	return func(ctx context.Context, i interactions.Interaction) error {
		// matched as typed; surrounding spaces are part of the substring
		title, _ := i.OptString("title")
		if strings.TrimSpace(title) == "" {
			return utils.EH.CreateUserError(i, "Please provide a game title to search for.")
		}

		// the catalog fetch can outlast Discord's initial response window
		if err := i.DeferCreateMessage(true); err != nil {
			return fmt.Errorf("failed to defer search response: %w", err)
		}

		result, err := svc.Search(ctx, title)
		if err != nil {
			return respondError(i, err)
		}

		shown := result.Shown()
		if len(shown) == 0 {
			return utils.EH.CreateNotFoundError(i, noGamesMessage(result))
		}

		primary, err := gameMessage(ctx, svc, shown[0].AppID)
		if err != nil {
			return respondError(i, err)
		}
		if err = i.CreateMessage(primary); err != nil {
			return fmt.Errorf("failed to send search result: %w", err)
		}

		sendFollowups(ctx, svc, i, shown[1:])
		return nil
	}
}

func noGamesMessage(result backlog.SearchResult) string {
	message := fmt.Sprintf("No games found matching `%s`.", result.Term)
	if len(result.Suggestions) > 0 {
		message += "\nDid you mean: " + strings.Join(result.Suggestions, ", ") + "?"
	}
	return message
}

// sendFollowups fetches details concurrently but posts in match order. A
// failed fetch or send only skips that one game.
func sendFollowups(ctx context.Context, svc backlog.Service, i interactions.Interaction, games []backlog.GameSummary) {
	messages := make([]discord.MessageCreate, len(games))
	errs := make([]error, len(games))

	var g errgroup.Group
	g.SetLimit(config.FollowUpConcurrency)
	for idx, game := range games {
		idx, game := idx, game
		g.Go(func() error {
			messages[idx], errs[idx] = gameMessage(ctx, svc, game.AppID)
			return nil
		})
	}
	_ = g.Wait()

	for idx, game := range games {
		if errs[idx] != nil {
			slog.Warn("Skipping search follow-up",
				slog.String("type", "cmd"),
				slog.Int("app_id", game.AppID),
				slog.Any("error", errs[idx]))
			continue
		}
		if err := i.CreateFollowupMessage(messages[idx]); err != nil {
			slog.Error("Failed to send search follow-up",
				slog.String("type", "cmd"),
				slog.Int("app_id", game.AppID),
				slog.Any("error", err))
		}
	}
}

func gameMessage(ctx context.Context, svc backlog.Service, appID int) (discord.MessageCreate, error) {
	detail, err := svc.GameDetail(ctx, appID)
	if err != nil {
		return discord.MessageCreate{}, err
	}

	embed, err := utils.FormatGameCard(detail)
	if err != nil {
		return discord.MessageCreate{}, err
	}

	return discord.MessageCreate{
		Embeds: []discord.Embed{embed},
		Components: []discord.ContainerComponent{
			discord.NewActionRow(
				discord.NewPrimaryButton(config.AddToBacklogLabel, BacklogButtonID(appID)),
			),
		},
		Flags: discord.MessageFlagEphemeral,
	}, nil
}
