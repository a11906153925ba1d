package commands

import (
	"context"
	"fmt"

	"github.com/backlogbot/backlog-bot/backlogbot/interactions"
	"github.com/disgoorg/disgo/discord"
)

var Hello = discord.SlashCommandCreate{
	Name:        "hello",
	Description: "Says hello",
}

func HelloHandler() interactions.Handler {
	return func(_ context.Context, i interactions.Interaction) error {
		return i.CreateMessage(discord.MessageCreate{
			Content: fmt.Sprintf("Hello %s", i.User().Mention()),
		})
	}
}
