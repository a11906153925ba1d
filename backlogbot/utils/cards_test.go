package utils

import (
	"fmt"
	"testing"

	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog/mock"
	"github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldValue(t *testing.T, embed discord.Embed, name string) string {
	t.Helper()
	for _, f := range embed.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	t.Fatalf("field %q not found", name)
	return ""
}

func TestFormatGameCard(t *testing.T) {
	tests := []struct {
		name           string
		detail         *backlog.GameDetail
		wantPrice      string
		wantController string
	}{
		{name: "Paid with controller", detail: mock.Details[400], wantPrice: "$9.99", wantController: "full"},
		{name: "Paid without controller", detail: mock.Details[620], wantPrice: "$19.99", wantController: "None"},
		{name: "Free", detail: mock.Details[1], wantPrice: "Free", wantController: "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed, err := FormatGameCard(tt.detail)
			require.NoError(t, err)

			assert.Equal(t, tt.detail.Name, embed.Title)
			assert.Equal(t, tt.detail.ShortDescription, embed.Description)
			require.NotNil(t, embed.Thumbnail)
			assert.Equal(t, tt.detail.HeaderImage, embed.Thumbnail.URL)
			require.NotNil(t, embed.Image)
			assert.Equal(t, tt.detail.HeaderImage, embed.Image.URL)
			require.NotNil(t, embed.Author)
			assert.Equal(t, "Backlog Bot", embed.Author.Name)
			assert.Equal(t, tt.wantPrice, fieldValue(t, embed, "Price"))
			assert.Equal(t, tt.wantController, fieldValue(t, embed, "Controller Support"))
		})
	}
}

func TestFormatGameCardMissingPrice(t *testing.T) {
	detail := &backlog.GameDetail{AppID: 9, Name: "Mystery"}

	_, err := FormatGameCard(detail)
	assert.ErrorIs(t, err, backlog.ErrMissingPrice)

	empty := ""
	detail.Price = &empty
	_, err = FormatGameCard(detail)
	assert.ErrorIs(t, err, backlog.ErrMissingPrice)
}

func TestFormatGameCardNil(t *testing.T) {
	_, err := FormatGameCard(nil)
	assert.ErrorIs(t, err, backlog.ErrUpstreamNotFound)
}

func TestFormatProfileCard(t *testing.T) {
	user := &backlog.User{PlatformID: "42", Level: 3, Exp: 25, MaxExp: 100}

	embed := FormatProfileCard(user, "Alice", "https://cdn.example/avatar.png")

	assert.Equal(t, "Alice", embed.Title)
	require.NotNil(t, embed.Thumbnail)
	assert.Equal(t, "https://cdn.example/avatar.png", embed.Thumbnail.URL)
	assert.Equal(t, "3", fieldValue(t, embed, "Level"))
	assert.Equal(t, "25 / 100", fieldValue(t, embed, "EXP"))
}

func TestBacklogPages(t *testing.T) {
	assert.Equal(t, 1, BacklogPages(0))
	assert.Equal(t, 1, BacklogPages(10))
	assert.Equal(t, 2, BacklogPages(11))
}

func TestFormatBacklogPage(t *testing.T) {
	items := make([]*backlog.BacklogItem, 0, 12)
	for n := 1; n <= 12; n++ {
		items = append(items, &backlog.BacklogItem{UserID: "42", DisplayName: fmt.Sprintf("Game %d", n), AppID: n})
	}

	embed := discord.NewEmbedBuilder()
	FormatBacklogPage(embed, "Alice", items, 1)
	built := embed.Build()

	assert.Equal(t, "Alice's Backlog", built.Title)
	assert.Contains(t, built.Description, "`11.` [Game 11](https://store.steampowered.com/app/11)")
	assert.NotContains(t, built.Description, "Game 10]")
	require.NotNil(t, built.Footer)
	assert.Equal(t, "Page 2/2 • Total: 12", built.Footer.Text)
}

func TestFormatBacklogPageEmpty(t *testing.T) {
	embed := discord.NewEmbedBuilder()
	FormatBacklogPage(embed, "Alice", nil, 0)
	assert.Equal(t, "Your backlog is empty.", embed.Build().Description)
}

func TestClassifiedError(t *testing.T) {
	msg := EH.ClassifiedError(NotFoundError, "No account was found.")

	assert.Equal(t, discord.MessageFlagEphemeral, msg.Flags)
	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "🔍 No account was found.", msg.Embeds[0].Description)
}
