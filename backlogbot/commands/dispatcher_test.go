package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/backlogbot/backlog-bot/backlogbot/interactions/interactiontest"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"github.com/backlogbot/backlog-bot/internal/domain/backlog/mock"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/paginator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var alice = interactiontest.User(42, "alice")

type fixture struct {
	dispatcher *Dispatcher
	store      *mock.MockStore
	lookup     *mock.MockGameLookup
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	lookup := mock.NewMockGameLookup(ctrl)
	return &fixture{
		dispatcher: NewDispatcher(backlog.NewService(store, lookup), paginator.New()),
		store:      store,
		lookup:     lookup,
	}
}

func search(term string) *interactiontest.Fake {
	return interactiontest.NewCommand(alice, SteamSearch.Name, map[string]string{"title": term})
}

func buttonID(t *testing.T, msg discord.MessageCreate) string {
	t.Helper()
	require.Len(t, msg.Components, 1)
	row, ok := msg.Components[0].(discord.ActionRowComponent)
	require.True(t, ok, "component is an action row")
	buttons := row.Components()
	require.Len(t, buttons, 1)
	button, ok := buttons[0].(discord.ButtonComponent)
	require.True(t, ok, "row holds a button")
	assert.Equal(t, "Add to Backlog", button.Label)
	return button.CustomID
}

func description(t *testing.T, msg discord.MessageCreate) string {
	t.Helper()
	require.NotEmpty(t, msg.Embeds)
	return msg.Embeds[0].Description
}

func notFound() error {
	return fmt.Errorf("user: %w", backlog.ErrStoreNotFound)
}

func TestDispatcher_Hello(t *testing.T) {
	f := newFixture(t)
	i := interactiontest.NewCommand(alice, Hello.Name, nil)

	require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

	replies := i.Replies()
	require.Len(t, replies, 1)
	assert.Equal(t, "Hello <@42>", replies[0].Content)
}

func TestDispatcher_SteamSearchPortal(t *testing.T) {
	f := newFixture(t)
	f.lookup.EXPECT().FetchCatalog(gomock.Any()).Return(mock.Catalog, nil).Times(1)
	f.lookup.EXPECT().FetchDetail(gomock.Any(), 400).Return(mock.Details[400], nil).Times(1)
	f.lookup.EXPECT().FetchDetail(gomock.Any(), 620).Return(mock.Details[620], nil).Times(1)

	i := search("Portal")
	require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

	deferred, ephemeral := i.Deferred()
	assert.True(t, deferred)
	assert.True(t, ephemeral)

	replies := i.Replies()
	require.Len(t, replies, 1)
	require.Len(t, replies[0].Embeds, 1)
	assert.Equal(t, "Portal", replies[0].Embeds[0].Title)
	assert.Equal(t, "add-backlog-400", buttonID(t, replies[0]))
	assert.Equal(t, discord.MessageFlagEphemeral, replies[0].Flags)

	followups := i.Followups()
	require.Len(t, followups, 1)
	assert.Equal(t, "Portal 2", followups[0].Embeds[0].Title)
	assert.Equal(t, "add-backlog-620", buttonID(t, followups[0]))
	assert.Equal(t, discord.MessageFlagEphemeral, followups[0].Flags)
}

func TestDispatcher_SteamSearchKeepsTrailingSpace(t *testing.T) {
	f := newFixture(t)
	f.lookup.EXPECT().FetchCatalog(gomock.Any()).Return(mock.Catalog, nil).Times(1)
	f.lookup.EXPECT().FetchDetail(gomock.Any(), 620).Return(mock.Details[620], nil).Times(1)
	f.lookup.EXPECT().FetchDetail(gomock.Any(), 400).Times(0)

	i := search("Portal ")
	require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

	replies := i.Replies()
	require.Len(t, replies, 1)
	assert.Equal(t, "Portal 2", replies[0].Embeds[0].Title)
	assert.Equal(t, "add-backlog-620", buttonID(t, replies[0]))
	assert.Empty(t, i.Followups())
}

func TestDispatcher_SteamSearchLookupCalls(t *testing.T) {
	for _, n := range []int{1, 6, 9} {
		t.Run(fmt.Sprintf("%d matches", n), func(t *testing.T) {
			f := newFixture(t)

			catalog := []backlog.GameSummary{{AppID: 9999, Name: "Other"}}
			for id := 1; id <= n; id++ {
				catalog = append(catalog, backlog.GameSummary{AppID: id, Name: fmt.Sprintf("Doom %d", id)})
			}
			shown := min(n, backlog.MaxSearchResults)

			f.lookup.EXPECT().FetchCatalog(gomock.Any()).Return(catalog, nil).Times(1)
			f.lookup.EXPECT().FetchDetail(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, appID int) (*backlog.GameDetail, error) {
					return &backlog.GameDetail{AppID: appID, Name: fmt.Sprintf("Doom %d", appID), IsFree: true}, nil
				}).Times(shown)

			i := search("doom")
			require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

			require.Len(t, i.Replies(), 1)
			followups := i.Followups()
			require.Len(t, followups, shown-1)
			for idx, msg := range followups {
				assert.Equal(t, fmt.Sprintf("add-backlog-%d", idx+2), buttonID(t, msg), "follow-ups keep match order")
			}
		})
	}
}

func TestDispatcher_SteamSearchFollowupFailuresAreIsolated(t *testing.T) {
	f := newFixture(t)

	catalog := []backlog.GameSummary{
		{AppID: 1, Name: "Quake"},
		{AppID: 2, Name: "Quake II"},
		{AppID: 3, Name: "Quake III"},
		{AppID: 4, Name: "Quake 4"},
	}
	f.lookup.EXPECT().FetchCatalog(gomock.Any()).Return(catalog, nil)
	f.lookup.EXPECT().FetchDetail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, appID int) (*backlog.GameDetail, error) {
			if appID == 2 {
				return nil, backlog.ErrUpstreamNotFound
			}
			return &backlog.GameDetail{AppID: appID, Name: fmt.Sprintf("Quake %d", appID), IsFree: true}, nil
		}).Times(4)

	i := search("quake")
	// the first follow-up actually sent (app 3) fails on the Discord side
	i.FollowupErr = func(n int) error {
		if n == 0 {
			return errors.New("discord: 500")
		}
		return nil
	}

	require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

	require.Len(t, i.Replies(), 1)
	assert.Equal(t, 2, i.FollowupAttempts(), "app 2 failed to fetch and was skipped")
	followups := i.Followups()
	require.Len(t, followups, 1)
	assert.Equal(t, "add-backlog-4", buttonID(t, followups[0]))
}

func TestDispatcher_SteamSearchNoMatches(t *testing.T) {
	f := newFixture(t)
	f.lookup.EXPECT().FetchCatalog(gomock.Any()).Return(mock.Catalog, nil)
	f.lookup.EXPECT().FetchDetail(gomock.Any(), gomock.Any()).Times(0)

	i := search("Prtl")
	require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

	replies := i.Replies()
	require.Len(t, replies, 1)
	assert.Contains(t, description(t, replies[0]), "No games found matching `Prtl`")
	assert.Contains(t, description(t, replies[0]), "Did you mean")
	assert.Equal(t, discord.MessageFlagEphemeral, replies[0].Flags)
	assert.Empty(t, i.Followups())
}

func TestDispatcher_SteamSearchBlankTitle(t *testing.T) {
	f := newFixture(t)

	i := search("   ")
	require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

	deferred, _ := i.Deferred()
	assert.False(t, deferred)
	require.Len(t, i.Replies(), 1)
	assert.Contains(t, description(t, i.Replies()[0]), "Please provide a game title")
}

func TestDispatcher_SteamSearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *fixture)
		wantMsg string
	}{
		{
			name: "Catalog unreachable",
			setup: func(f *fixture) {
				f.lookup.EXPECT().FetchCatalog(gomock.Any()).Return(nil, backlog.ErrNetwork)
			},
			wantMsg: "Steam is not responding",
		},
		{
			name: "First match has no detail",
			setup: func(f *fixture) {
				f.lookup.EXPECT().FetchCatalog(gomock.Any()).Return(mock.Catalog[:1], nil)
				f.lookup.EXPECT().FetchDetail(gomock.Any(), 400).Return(nil, backlog.ErrUpstreamNotFound)
			},
			wantMsg: "could not be found on Steam",
		},
		{
			name: "First match missing price",
			setup: func(f *fixture) {
				f.lookup.EXPECT().FetchCatalog(gomock.Any()).Return(mock.Catalog[:1], nil)
				f.lookup.EXPECT().FetchDetail(gomock.Any(), 400).Return(&backlog.GameDetail{AppID: 400, Name: "Portal"}, nil)
			},
			wantMsg: "incomplete data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			i := search("Portal")
			err := f.dispatcher.DispatchCommand(context.Background(), i)
			assert.Error(t, err)

			replies := i.Replies()
			require.Len(t, replies, 1, "the user always gets an answer")
			assert.Contains(t, description(t, replies[0]), tt.wantMsg)
			assert.Empty(t, replies[0].Components, "no card is rendered")
		})
	}
}

func TestDispatcher_RegisterTwice(t *testing.T) {
	f := newFixture(t)
	existing := backlog.NewUser("42")

	gomock.InOrder(
		f.store.EXPECT().GetUserByPlatformID(gomock.Any(), "42").Return(nil, notFound()),
		f.store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil).Times(1),
		f.store.EXPECT().GetUserByPlatformID(gomock.Any(), "42").Return(existing, nil),
	)

	first := interactiontest.NewCommand(alice, Register.Name, nil)
	require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), first))
	require.Len(t, first.Replies(), 1)
	assert.Equal(t, "Welcome <@42> to the Backlog!", first.Replies()[0].Content)

	second := interactiontest.NewCommand(alice, Register.Name, nil)
	require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), second))
	require.Len(t, second.Replies(), 1)
	assert.Contains(t, description(t, second.Replies()[0]), "An account for <@42> already exists.")
}

func TestDispatcher_RegisterStoreDown(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().GetUserByPlatformID(gomock.Any(), "42").Return(nil, notFound())
	f.store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(backlog.ErrStoreUnavailable)

	i := interactiontest.NewCommand(alice, Register.Name, nil)
	assert.ErrorIs(t, f.dispatcher.DispatchCommand(context.Background(), i), backlog.ErrStoreUnavailable)

	require.Len(t, i.Replies(), 1)
	assert.Contains(t, description(t, i.Replies()[0]), "database is unavailable")
}

func TestDispatcher_Account(t *testing.T) {
	t.Run("Unregistered gets a single reply", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().GetUserByPlatformID(gomock.Any(), "42").Return(nil, notFound())

		i := interactiontest.NewCommand(alice, Account.Name, nil)
		require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

		replies := i.Replies()
		require.Len(t, replies, 1)
		require.Len(t, replies[0].Embeds, 1)
		assert.Contains(t, replies[0].Embeds[0].Description, "No account was found for <@42>")
		assert.Empty(t, replies[0].Embeds[0].Fields)
		assert.Empty(t, i.Followups())
	})

	t.Run("Registered gets the profile card", func(t *testing.T) {
		f := newFixture(t)
		user := &backlog.User{PlatformID: "42", Level: 2, Exp: 30, MaxExp: 100}
		f.store.EXPECT().GetUserByPlatformID(gomock.Any(), "42").Return(user, nil)

		i := interactiontest.NewCommand(alice, Account.Name, nil)
		require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

		replies := i.Replies()
		require.Len(t, replies, 1)
		require.Len(t, replies[0].Embeds, 1)
		embed := replies[0].Embeds[0]
		assert.Equal(t, "alice", embed.Title)
		require.Len(t, embed.Fields, 2)
		assert.Equal(t, "2", embed.Fields[0].Value)
		assert.Equal(t, "30 / 100", embed.Fields[1].Value)
	})
}

func TestDispatcher_AddBacklog(t *testing.T) {
	t.Run("Unregistered user is registered and the item created", func(t *testing.T) {
		f := newFixture(t)
		f.lookup.EXPECT().FetchDetail(gomock.Any(), 400).Return(mock.Details[400], nil)
		f.store.EXPECT().GetUserByPlatformID(gomock.Any(), "42").Return(nil, notFound())
		f.store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)
		f.store.EXPECT().CreateBacklogItem(gomock.Any(), &backlog.BacklogItem{UserID: "42", DisplayName: "Portal", AppID: 400}).Return(nil)

		i := interactiontest.NewButton(alice, "add-backlog-400")
		require.NoError(t, f.dispatcher.DispatchComponent(context.Background(), i))

		replies := i.Replies()
		require.Len(t, replies, 1)
		assert.Equal(t,
			"You have successfully added [Portal](https://store.steampowered.com/app/400) to your Backlog.",
			description(t, replies[0]))
	})

	t.Run("Unknown app never touches the store", func(t *testing.T) {
		f := newFixture(t)
		f.lookup.EXPECT().FetchDetail(gomock.Any(), 7).Return(nil, backlog.ErrUpstreamNotFound)

		i := interactiontest.NewButton(alice, "add-backlog-7")
		assert.Error(t, f.dispatcher.DispatchComponent(context.Background(), i))

		require.Len(t, i.Replies(), 1)
		assert.Contains(t, description(t, i.Replies()[0]), "could not be found on Steam")
	})

	t.Run("Duplicate", func(t *testing.T) {
		f := newFixture(t)
		f.lookup.EXPECT().FetchDetail(gomock.Any(), 620).Return(mock.Details[620], nil)
		f.store.EXPECT().GetUserByPlatformID(gomock.Any(), "42").Return(backlog.NewUser("42"), nil)
		f.store.EXPECT().CreateBacklogItem(gomock.Any(), gomock.Any()).Return(backlog.ErrStoreConstraint)

		i := interactiontest.NewButton(alice, "add-backlog-620")
		require.NoError(t, f.dispatcher.DispatchComponent(context.Background(), i))

		require.Len(t, i.Replies(), 1)
		assert.Contains(t, description(t, i.Replies()[0]), "already in your backlog")
	})

	t.Run("Malformed id", func(t *testing.T) {
		f := newFixture(t)

		i := interactiontest.NewButton(alice, "add-backlog-abc")
		assert.ErrorIs(t, f.dispatcher.DispatchComponent(context.Background(), i), backlog.ErrInvalidAppID)

		require.Len(t, i.Replies(), 1)
		assert.Contains(t, description(t, i.Replies()[0]), "not a valid game")
	})
}

func TestDispatcher_Backlog(t *testing.T) {
	t.Run("Lists items", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().GetUserByPlatformID(gomock.Any(), "42").Return(backlog.NewUser("42"), nil)
		f.store.EXPECT().ListBacklogItems(gomock.Any(), "42").Return([]*backlog.BacklogItem{
			{UserID: "42", DisplayName: "Portal", AppID: 400},
		}, nil)

		i := interactiontest.NewCommand(alice, Backlog.Name, nil)
		require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

		replies := i.Replies()
		require.Len(t, replies, 1)
		require.Len(t, replies[0].Embeds, 1)
		assert.Equal(t, "alice's Backlog", replies[0].Embeds[0].Title)
		assert.Contains(t, replies[0].Embeds[0].Description, "[Portal](https://store.steampowered.com/app/400)")
	})

	t.Run("Empty", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().GetUserByPlatformID(gomock.Any(), "42").Return(backlog.NewUser("42"), nil)
		f.store.EXPECT().ListBacklogItems(gomock.Any(), "42").Return(nil, nil)

		i := interactiontest.NewCommand(alice, Backlog.Name, nil)
		require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

		require.Len(t, i.Replies(), 1)
		assert.Contains(t, description(t, i.Replies()[0]), "Your backlog is empty")
	})

	t.Run("Unregistered", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().GetUserByPlatformID(gomock.Any(), "42").Return(nil, notFound())

		i := interactiontest.NewCommand(alice, Backlog.Name, nil)
		require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))

		require.Len(t, i.Replies(), 1)
		assert.Contains(t, description(t, i.Replies()[0]), "No account was found")
	})
}

func TestDispatcher_FiltersAreIndependent(t *testing.T) {
	// no expectations: any store or lookup call fails the test
	f := newFixture(t)

	t.Run("Command never reaches the button handler", func(t *testing.T) {
		i := interactiontest.NewCommand(alice, SteamSearch.Name, map[string]string{"title": "Portal"})
		i.Custom = "add-backlog-400"
		require.NoError(t, f.dispatcher.DispatchComponent(context.Background(), i))
		assert.False(t, i.Responded())
		assert.Empty(t, i.ResponseTypes())
	})

	t.Run("Button never reaches a command handler", func(t *testing.T) {
		i := interactiontest.NewButton(alice, "add-backlog-400")
		i.Command = Hello.Name
		require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))
		assert.False(t, i.Responded())
		assert.Empty(t, i.ResponseTypes())
	})

	t.Run("Other buttons are ignored", func(t *testing.T) {
		i := interactiontest.NewButton(alice, "paginator:next")
		require.NoError(t, f.dispatcher.DispatchComponent(context.Background(), i))
		assert.False(t, i.Responded())
	})
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	f := newFixture(t)

	i := interactiontest.NewCommand(alice, "frobnicate", nil)
	require.NoError(t, f.dispatcher.DispatchCommand(context.Background(), i))
	require.Len(t, i.Replies(), 1)
	assert.Contains(t, description(t, i.Replies()[0]), "Unknown command")
}

func TestParseBacklogButtonID(t *testing.T) {
	tests := []struct {
		customID string
		want     int
		wantErr  bool
	}{
		{customID: "add-backlog-400", want: 400},
		{customID: BacklogButtonID(620), want: 620},
		{customID: "add-backlog-", wantErr: true},
		{customID: "add-backlog--5", wantErr: true},
		{customID: "add-backlog-12x", wantErr: true},
		{customID: "remove-backlog-400", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.customID, func(t *testing.T) {
			got, err := ParseBacklogButtonID(tt.customID)
			if tt.wantErr {
				assert.ErrorIs(t, err, backlog.ErrInvalidAppID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandsOrder(t *testing.T) {
	names := make([]string, 0, len(Commands))
	for _, c := range Commands {
		names = append(names, c.CommandName())
	}
	assert.Equal(t, []string{"hello", "register", "account", "steam_search", "backlog"}, names)

	require.Len(t, SteamSearch.Options, 1)
	title, ok := SteamSearch.Options[0].(discord.ApplicationCommandOptionString)
	require.True(t, ok)
	assert.Equal(t, "title", title.Name)
	assert.True(t, title.Required)
}
