// Package interactiontest provides an in-memory Interaction for handler tests.
package interactiontest

import (
	"sync"
	"time"

	"github.com/backlogbot/backlog-bot/backlogbot/interactions"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

var _ interactions.Interaction = (*Fake)(nil)

// Fake records every response sent through it.
type Fake struct {
	InteractionID snowflake.ID
	Kind          discord.InteractionType
	Invoker       discord.User
	Command       string
	Options       map[string]string
	Custom        string

	// FollowupErr, when set, is consulted for the n-th follow-up (0 based).
	FollowupErr func(n int) error
	ReplyErr    error

	mu                sync.Mutex
	deferred          bool
	deferredEphemeral bool
	replies           []discord.MessageCreate
	followups         []discord.MessageCreate
	followupAttempts  int
	responseTypes     []discord.InteractionResponseType
}

func NewCommand(user discord.User, name string, options map[string]string) *Fake {
	return &Fake{
		InteractionID: snowflake.New(time.Now()),
		Kind:          discord.InteractionTypeApplicationCommand,
		Invoker:       user,
		Command:       name,
		Options:       options,
	}
}

func NewButton(user discord.User, customID string) *Fake {
	return &Fake{
		InteractionID: snowflake.New(time.Now()),
		Kind:          discord.InteractionTypeComponent,
		Invoker:       user,
		Custom:        customID,
	}
}

func User(id snowflake.ID, username string) discord.User {
	return discord.User{ID: id, Username: username}
}

func (f *Fake) ID() snowflake.ID              { return f.InteractionID }
func (f *Fake) Type() discord.InteractionType { return f.Kind }
func (f *Fake) User() discord.User            { return f.Invoker }
func (f *Fake) CommandName() string           { return f.Command }
func (f *Fake) CustomID() string              { return f.Custom }

func (f *Fake) OptString(name string) (string, bool) {
	v, ok := f.Options[name]
	return v, ok
}

func (f *Fake) Respond(responseType discord.InteractionResponseType, data discord.InteractionResponseData, _ ...rest.RequestOpt) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.responseTypes = append(f.responseTypes, responseType)
	if msg, ok := data.(discord.MessageCreate); ok && responseType == discord.InteractionResponseTypeCreateMessage {
		f.replies = append(f.replies, msg)
	}
	return f.ReplyErr
}

func (f *Fake) DeferCreateMessage(ephemeral bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deferred = true
	f.deferredEphemeral = ephemeral
	f.responseTypes = append(f.responseTypes, discord.InteractionResponseTypeDeferredCreateMessage)
	return nil
}

func (f *Fake) CreateMessage(messageCreate discord.MessageCreate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ReplyErr != nil {
		return f.ReplyErr
	}
	f.replies = append(f.replies, messageCreate)
	return nil
}

func (f *Fake) CreateFollowupMessage(messageCreate discord.MessageCreate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.followupAttempts
	f.followupAttempts++
	if f.FollowupErr != nil {
		if err := f.FollowupErr(n); err != nil {
			return err
		}
	}
	f.followups = append(f.followups, messageCreate)
	return nil
}

func (f *Fake) Replies() []discord.MessageCreate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]discord.MessageCreate(nil), f.replies...)
}

func (f *Fake) Followups() []discord.MessageCreate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]discord.MessageCreate(nil), f.followups...)
}

func (f *Fake) FollowupAttempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.followupAttempts
}

func (f *Fake) ResponseTypes() []discord.InteractionResponseType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]discord.InteractionResponseType(nil), f.responseTypes...)
}

// Deferred reports whether the interaction was deferred, and if so whether ephemerally.
func (f *Fake) Deferred() (deferred, ephemeral bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deferred, f.deferredEphemeral
}

// Responded reports whether anything at all reached the user.
func (f *Fake) Responded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.replies) > 0 || len(f.followups) > 0
}
