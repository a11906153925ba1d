package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/backlogbot/backlog-bot/backlogbot/interactions"
	"github.com/backlogbot/backlog-bot/backlogbot/utils"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"github.com/disgoorg/disgo/discord"
)

var Account = discord.SlashCommandCreate{
	Name:        "account",
	Description: "Show your Backlog profile",
}

func AccountHandler(svc backlog.Service) interactions.Handler {
	return func(ctx context.Context, i interactions.Interaction) error {
		user := i.User()

		account, err := svc.Account(ctx, user.ID.String())
		if errors.Is(err, backlog.ErrStoreNotFound) {
			return utils.EH.CreateNotFoundError(i, noAccountMessage(user))
		}
		if err != nil {
			return respondError(i, err)
		}

		return i.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{
				utils.FormatProfileCard(account, displayName(user), user.EffectiveAvatarURL()),
			},
		})
	}
}

func noAccountMessage(user discord.User) string {
	return fmt.Sprintf("No account was found for %s. Use `/register` to create one.", user.Mention())
}

func displayName(user discord.User) string {
	if user.GlobalName != nil && *user.GlobalName != "" {
		return *user.GlobalName
	}
	return user.Username
}
