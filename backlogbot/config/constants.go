package config

import "time"

// Application-wide constants organized by domain

// UI and Display Constants
const (
	// Pagination
	BacklogItemsPerPage = 10

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	// Discord UI Colors
	EmbedDefaultColor = 0x2B2D31
	SteamColor        = 0x1B2838

	// Embed author shown on every game and profile card
	EmbedAuthorName    = "Backlog Bot"
	EmbedAuthorIconURL = "https://i.imgur.com/AfFp7pu.png"

	AddToBacklogLabel = "Add to Backlog"
	// AddBacklogPrefix prefixes the custom id of every "Add to Backlog" button.
	AddBacklogPrefix = "add-backlog-"
)

// Timeouts
const (
	DefaultQueryTimeout = 5 * time.Second
	InteractionTimeout  = 30 * time.Second
	SlowInteraction     = 2 * time.Second
	DefaultHTTPTimeout  = 10 * time.Second
	NetworkDialTimeout  = 5 * time.Second
	PresenceTimeout     = 5 * time.Second
	GatewayOpenTimeout  = 10 * time.Second
	ShutdownTimeout     = 10 * time.Second
	SchemaInitTimeout   = 2 * time.Minute
)

// Steam
const (
	DefaultSteamAPIBaseURL   = "https://api.steampowered.com"
	DefaultSteamStoreBaseURL = "https://store.steampowered.com"

	DefaultDetailCacheSize = 512

	// FollowUpConcurrency bounds parallel detail fetches for search follow-ups.
	FollowUpConcurrency = 3
)
