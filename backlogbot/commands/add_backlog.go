package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/backlogbot/interactions"
	"github.com/backlogbot/backlog-bot/backlogbot/utils"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
)

func BacklogButtonID(appID int) string {
	return config.AddBacklogPrefix + strconv.Itoa(appID)
}

// ParseBacklogButtonID extracts the app id from an "Add to Backlog" custom id.
func ParseBacklogButtonID(customID string) (int, error) {
	raw, ok := strings.CutPrefix(customID, config.AddBacklogPrefix)
	if !ok {
		return 0, fmt.Errorf("custom id %q: %w", customID, backlog.ErrInvalidAppID)
	}
	appID, err := strconv.Atoi(raw)
	if err != nil || appID <= 0 {
		return 0, fmt.Errorf("custom id %q: %w", customID, backlog.ErrInvalidAppID)
	}
	return appID, nil
}

func AddBacklogHandler(svc backlog.Service) interactions.Handler {
	return func(ctx context.Context, i interactions.Interaction) error {
		appID, err := ParseBacklogButtonID(i.CustomID())
		if err != nil {
			return respondError(i, err)
		}

		if err = i.DeferCreateMessage(true); err != nil {
			return fmt.Errorf("failed to defer backlog response: %w", err)
		}

		item, err := svc.AddToBacklog(ctx, i.User().ID.String(), appID)
		if errors.Is(err, backlog.ErrStoreConstraint) {
			return utils.EH.CreateBusinessLogicError(i, "That game is already in your backlog.")
		}
		if err != nil {
			return respondError(i, err)
		}

		return utils.EH.CreateSuccessEmbed(i, fmt.Sprintf("You have successfully added [%s](%s) to your Backlog.",
			item.DisplayName, backlog.StorePageURL(item.AppID)), true)
	}
}
