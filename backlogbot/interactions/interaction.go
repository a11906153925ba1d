package interactions

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// Interaction is the part of an incoming Discord interaction the dispatcher
// needs. Gateway events are adapted with FromEvent; tests provide fakes.
type Interaction interface {
	ID() snowflake.ID
	Type() discord.InteractionType
	User() discord.User

	// CommandName is empty unless the interaction is a slash command.
	CommandName() string
	OptString(name string) (string, bool)
	// CustomID is empty unless the interaction is a component click.
	CustomID() string

	// Respond is the raw responder, used by the paginator.
	Respond(responseType discord.InteractionResponseType, data discord.InteractionResponseData, opts ...rest.RequestOpt) error
	DeferCreateMessage(ephemeral bool) error
	// CreateMessage sends the primary response. After DeferCreateMessage it
	// edits the deferred response instead.
	CreateMessage(messageCreate discord.MessageCreate) error
	CreateFollowupMessage(messageCreate discord.MessageCreate) error
}

type Handler func(ctx context.Context, i Interaction) error

type gatewayInteraction struct {
	*events.InteractionCreate
	deferred bool
}

func FromEvent(e *events.InteractionCreate) Interaction {
	return &gatewayInteraction{InteractionCreate: e}
}

func (i *gatewayInteraction) CommandName() string {
	if data, ok := i.Interaction.(discord.ApplicationCommandInteraction); ok {
		return data.Data.CommandName()
	}
	return ""
}

func (i *gatewayInteraction) OptString(name string) (string, bool) {
	data, ok := i.Interaction.(discord.ApplicationCommandInteraction)
	if !ok || data.Data.Type() != discord.ApplicationCommandTypeSlash {
		return "", false
	}
	return data.SlashCommandInteractionData().OptString(name)
}

func (i *gatewayInteraction) CustomID() string {
	if data, ok := i.Interaction.(discord.ComponentInteraction); ok {
		return data.Data.CustomID()
	}
	return ""
}

func (i *gatewayInteraction) Respond(responseType discord.InteractionResponseType, data discord.InteractionResponseData, opts ...rest.RequestOpt) error {
	return i.InteractionCreate.Respond(responseType, data, opts...)
}

func (i *gatewayInteraction) DeferCreateMessage(ephemeral bool) error {
	var flags discord.MessageFlags
	if ephemeral {
		flags = discord.MessageFlagEphemeral
	}
	if err := i.Respond(discord.InteractionResponseTypeDeferredCreateMessage, discord.MessageCreate{Flags: flags}); err != nil {
		return err
	}
	i.deferred = true
	return nil
}

func (i *gatewayInteraction) CreateMessage(messageCreate discord.MessageCreate) error {
	if !i.deferred {
		return i.Respond(discord.InteractionResponseTypeCreateMessage, messageCreate)
	}

	update := discord.MessageUpdate{
		Content:    &messageCreate.Content,
		Embeds:     &messageCreate.Embeds,
		Components: &messageCreate.Components,
	}
	_, err := i.Client().Rest().UpdateInteractionResponse(i.ApplicationID(), i.Token(), update)
	return err
}

func (i *gatewayInteraction) CreateFollowupMessage(messageCreate discord.MessageCreate) error {
	_, err := i.Client().Rest().CreateFollowupMessage(i.ApplicationID(), i.Token(), messageCreate)
	return err
}
