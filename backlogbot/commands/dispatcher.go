package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/backlogbot/handlers"
	"github.com/backlogbot/backlog-bot/backlogbot/interactions"
	"github.com/backlogbot/backlog-bot/backlogbot/utils"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/paginator"
)

// Dispatcher routes interactions to handlers. Commands and the backlog button
// are two independent listeners; each ignores events that are not its kind.
type Dispatcher struct {
	commands map[string]interactions.Handler
	button   interactions.Handler
}

func NewDispatcher(svc backlog.Service, pager *paginator.Manager) *Dispatcher {
	return &Dispatcher{
		commands: map[string]interactions.Handler{
			Hello.Name:       handlers.WrapWithLogging(Hello.Name, HelloHandler()),
			Register.Name:    handlers.WrapWithLogging(Register.Name, RegisterHandler(svc)),
			Account.Name:     handlers.WrapWithLogging(Account.Name, AccountHandler(svc)),
			SteamSearch.Name: handlers.WrapWithLogging(SteamSearch.Name, SteamSearchHandler(svc)),
			Backlog.Name:     handlers.WrapWithLogging(Backlog.Name, BacklogHandler(svc, pager)),
		},
		button: handlers.WrapComponentWithLogging("add-backlog", AddBacklogHandler(svc)),
	}
}

// Listeners returns the two gateway listeners to register on the client.
func (d *Dispatcher) Listeners() []bot.EventListener {
	return []bot.EventListener{
		bot.NewListenerFunc(d.onCommand),
		bot.NewListenerFunc(d.onComponent),
	}
}

func (d *Dispatcher) onCommand(e *events.InteractionCreate) {
	if err := d.DispatchCommand(context.Background(), interactions.FromEvent(e)); err != nil {
		slog.Debug("Command dispatch returned error", slog.String("type", "cmd"), slog.Any("error", err))
	}
}

func (d *Dispatcher) onComponent(e *events.InteractionCreate) {
	if err := d.DispatchComponent(context.Background(), interactions.FromEvent(e)); err != nil {
		slog.Debug("Component dispatch returned error", slog.String("type", "component"), slog.Any("error", err))
	}
}

// DispatchCommand handles slash command invocations and ignores everything else.
func (d *Dispatcher) DispatchCommand(ctx context.Context, i interactions.Interaction) error {
	if i.Type() != discord.InteractionTypeApplicationCommand {
		return nil
	}

	h, ok := d.commands[i.CommandName()]
	if !ok {
		slog.Warn("Unknown command",
			slog.String("type", "cmd"),
			slog.String("name", i.CommandName()))
		return utils.EH.CreateUserError(i, "Unknown command.")
	}
	return h(ctx, i)
}

// DispatchComponent handles "Add to Backlog" clicks and ignores everything else.
func (d *Dispatcher) DispatchComponent(ctx context.Context, i interactions.Interaction) error {
	if i.Type() != discord.InteractionTypeComponent || !strings.HasPrefix(i.CustomID(), config.AddBacklogPrefix) {
		return nil
	}
	return d.button(ctx, i)
}

// respondError replies with a message matching err's kind. err is returned
// so the logging wrapper records the failure.
func respondError(i interactions.Interaction, err error) error {
	errorType, message := classifyError(err)
	if replyErr := utils.EH.CreateClassifiedError(i, errorType, message); replyErr != nil {
		return errors.Join(err, replyErr)
	}
	return err
}

func classifyError(err error) (utils.ErrorType, string) {
	switch {
	case errors.Is(err, backlog.ErrInvalidAppID):
		return utils.UserError, "That button is not a valid game."
	case errors.Is(err, backlog.ErrUpstreamNotFound):
		return utils.NotFoundError, "That game could not be found on Steam."
	case errors.Is(err, backlog.ErrMissingPrice):
		return utils.SystemError, "Steam returned incomplete data for that game."
	case errors.Is(err, backlog.ErrNetwork), errors.Is(err, backlog.ErrDecode):
		return utils.SystemError, "Steam is not responding right now. Please try again later."
	case errors.Is(err, backlog.ErrStoreUnavailable):
		return utils.SystemError, "The database is unavailable right now. Please try again later."
	case errors.Is(err, context.DeadlineExceeded):
		return utils.SystemError, "That took too long. Please try again."
	default:
		return utils.SystemError, "Something went wrong. Please try again later."
	}
}
