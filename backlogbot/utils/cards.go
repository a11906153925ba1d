package utils

import (
	"fmt"
	"strings"

	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"github.com/disgoorg/disgo/discord"
)

// FormatGameCard renders a Steam game. A paid game without a price is an
// error rather than an empty field.
func FormatGameCard(detail *backlog.GameDetail) (discord.Embed, error) {
	if detail == nil {
		return discord.Embed{}, fmt.Errorf("no game detail: %w", backlog.ErrUpstreamNotFound)
	}

	var price string
	switch {
	case detail.IsFree:
		price = "Free"
	case detail.Price != nil && *detail.Price != "":
		price = *detail.Price
	default:
		return discord.Embed{}, fmt.Errorf("app %d: %w", detail.AppID, backlog.ErrMissingPrice)
	}

	controller := detail.ControllerSupport
	if controller == "" {
		controller = "None"
	}

	embed := discord.NewEmbedBuilder().
		SetTitle(detail.Name).
		SetURL(backlog.StorePageURL(detail.AppID)).
		SetDescription(detail.ShortDescription).
		SetAuthor(config.EmbedAuthorName, "", config.EmbedAuthorIconURL).
		SetThumbnail(detail.HeaderImage).
		SetImage(detail.HeaderImage).
		SetColor(config.SteamColor).
		AddField("Price", price, true).
		AddField("Controller Support", controller, true).
		Build()
	return embed, nil
}

func FormatProfileCard(user *backlog.User, displayName, avatarURL string) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle(displayName).
		SetAuthor(config.EmbedAuthorName, "", config.EmbedAuthorIconURL).
		SetThumbnail(avatarURL).
		SetColor(config.EmbedDefaultColor).
		AddField("Level", fmt.Sprintf("%d", user.Level), true).
		AddField("EXP", fmt.Sprintf("%d / %d", user.Exp, user.MaxExp), true).
		Build()
}

// BacklogPages returns the page count for n items, at least one.
func BacklogPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + config.BacklogItemsPerPage - 1) / config.BacklogItemsPerPage
}

// FormatBacklogPage fills embed with the given zero-based page of items.
func FormatBacklogPage(embed *discord.EmbedBuilder, displayName string, items []*backlog.BacklogItem, page int) {
	pages := BacklogPages(len(items))
	if page >= pages {
		page = pages - 1
	}
	if page < 0 {
		page = 0
	}

	start := page * config.BacklogItemsPerPage
	end := min(start+config.BacklogItemsPerPage, len(items))

	var description strings.Builder
	for idx, item := range items[start:end] {
		fmt.Fprintf(&description, "`%d.` [%s](%s)\n", start+idx+1, item.DisplayName, backlog.StorePageURL(item.AppID))
	}
	if len(items) == 0 {
		description.WriteString("Your backlog is empty.")
	}

	embed.
		SetTitle(fmt.Sprintf("%s's Backlog", displayName)).
		SetDescription(description.String()).
		SetColor(config.EmbedDefaultColor).
		SetFooter(fmt.Sprintf("Page %d/%d • Total: %d", page+1, pages, len(items)), "")
}
