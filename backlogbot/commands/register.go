package commands

import (
	"context"
	"fmt"

	"github.com/backlogbot/backlog-bot/backlogbot/interactions"
	"github.com/backlogbot/backlog-bot/backlogbot/utils"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"github.com/disgoorg/disgo/discord"
)

var Register = discord.SlashCommandCreate{
	Name:        "register",
	Description: "Create your Backlog account",
}

func RegisterHandler(svc backlog.Service) interactions.Handler {
	return func(ctx context.Context, i interactions.Interaction) error {
		user := i.User()

		result, err := svc.Register(ctx, user.ID.String())
		if err != nil {
			return respondError(i, err)
		}

		if result.AlreadyExists {
			return utils.EH.CreateBusinessLogicError(i, fmt.Sprintf("An account for %s already exists.", user.Mention()))
		}

		return i.CreateMessage(discord.MessageCreate{
			Content: fmt.Sprintf("Welcome %s to the Backlog!", user.Mention()),
		})
	}
}
