package commands

import "github.com/disgoorg/disgo/discord"

// Commands is pushed to every configured guild at startup, in this order.
var Commands = []discord.ApplicationCommandCreate{
	Hello,
	Register,
	Account,
	SteamSearch,
	Backlog,
}
