package commands

import (
	"context"
	"errors"

	"github.com/backlogbot/backlog-bot/backlogbot/interactions"
	"github.com/backlogbot/backlog-bot/backlogbot/utils"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/paginator"
)

var Backlog = discord.SlashCommandCreate{
	Name:        "backlog",
	Description: "List the games in your backlog",
}

func BacklogHandler(svc backlog.Service, pager *paginator.Manager) interactions.Handler {
	return func(ctx context.Context, i interactions.Interaction) error {
		user := i.User()

		items, err := svc.Backlog(ctx, user.ID.String())
		if errors.Is(err, backlog.ErrStoreNotFound) {
			return utils.EH.CreateNotFoundError(i, noAccountMessage(user))
		}
		if err != nil {
			return respondError(i, err)
		}

		if len(items) == 0 {
			return utils.EH.CreateInfoEmbed(i, "Your backlog is empty. Use `/steam_search` to find games to add.", true)
		}

		name := displayName(user)
		return pager.Create(i.Respond, paginator.Pages{
			ID:      i.ID().String(),
			Creator: user.ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				utils.FormatBacklogPage(embed, name, items, page)
			},
			Pages:      utils.BacklogPages(len(items)),
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, true)
	}
}
