package backlogbot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/backlogbot/backlog-bot/backlogbot/api"
	"github.com/backlogbot/backlog-bot/backlogbot/config"
	"github.com/backlogbot/backlog-bot/backlogbot/database"
	"github.com/backlogbot/backlog-bot/backlogbot/database/mongostore"
	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// LoadConfig reads the TOML file at path, then applies .env and BACKLOG_*
// environment overrides on top. Keys absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err = godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err = cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: slog.LevelInfo},
		Bot: BotConfig{SyncCommands: true},
		DB: DBConfig{
			Driver: DriverPostgres,
			Postgres: database.DBConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "backlog",
				PoolSize: 10,
			},
		},
		Mongo: mongostore.Config{Database: "backlog"},
		API:   api.Config{Listen: ":8080"},
		Steam: SteamConfig{
			APIBaseURL:      config.DefaultSteamAPIBaseURL,
			StoreBaseURL:    config.DefaultSteamStoreBaseURL,
			Timeout:         Duration(config.DefaultHTTPTimeout),
			DetailCacheSize: config.DefaultDetailCacheSize,
		},
	}
}

type Config struct {
	Log   LogConfig         `toml:"log"`
	Bot   BotConfig         `toml:"bot"`
	DB    DBConfig          `toml:"db"`
	Mongo mongostore.Config `toml:"mongo"`
	Steam SteamConfig       `toml:"steam"`
	API   api.Config        `toml:"api"`
}

type LogConfig struct {
	Level   slog.Level `toml:"level"`
	NoColor bool       `toml:"no_color"`
}

type BotConfig struct {
	Token         string         `toml:"token"`
	ApplicationID snowflake.ID   `toml:"application_id"`
	GuildIDs      []snowflake.ID `toml:"guild_ids"`
	SyncCommands  bool           `toml:"sync_commands"`
}

type DBConfig struct {
	Driver   string            `toml:"driver"`
	Postgres database.DBConfig `toml:"postgres"`
}

type SteamConfig struct {
	APIBaseURL   string   `toml:"api_base_url"`
	StoreBaseURL string   `toml:"store_base_url"`
	Timeout      Duration `toml:"timeout"`
	// Zero TTLs leave the corresponding cache off.
	CatalogTTL      Duration `toml:"catalog_ttl"`
	DetailTTL       Duration `toml:"detail_ttl"`
	DetailCacheSize int      `toml:"detail_cache_size"`
}

// Duration decodes TOML strings such as "10s" or "15m".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("BACKLOG_TOKEN"); v != "" {
		c.Bot.Token = v
	}
	if v := os.Getenv("BACKLOG_APPLICATION_ID"); v != "" {
		id, err := snowflake.Parse(v)
		if err != nil {
			return fmt.Errorf("invalid BACKLOG_APPLICATION_ID: %w", err)
		}
		c.Bot.ApplicationID = id
	}
	if v := os.Getenv("BACKLOG_GUILD_IDS"); v != "" {
		ids := make([]snowflake.ID, 0)
		for _, raw := range strings.Split(v, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := snowflake.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid BACKLOG_GUILD_IDS entry %q: %w", raw, err)
			}
			ids = append(ids, id)
		}
		c.Bot.GuildIDs = ids
	}
	if v := os.Getenv("BACKLOG_DB_PASSWORD"); v != "" {
		c.DB.Postgres.Password = v
	}
	if v := os.Getenv("BACKLOG_MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	return nil
}

// Validate fails on any setting the bot cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Bot.Token == "" {
		errs = append(errs, errors.New("bot.token is required"))
	}
	if c.Bot.ApplicationID == 0 {
		errs = append(errs, errors.New("bot.application_id is required"))
	}
	if len(c.Bot.GuildIDs) == 0 {
		errs = append(errs, errors.New("bot.guild_ids needs at least one guild"))
	}

	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.Postgres.Host == "" || c.DB.Postgres.Database == "" {
			errs = append(errs, errors.New("db.postgres host and database are required"))
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("mongo.uri is required when db.driver is mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown db.driver %q", c.DB.Driver))
	}

	if c.Steam.Timeout <= 0 {
		errs = append(errs, errors.New("steam.timeout must be positive"))
	}
	if c.API.Enabled && c.API.Listen == "" {
		errs = append(errs, errors.New("api.listen is required when the api is enabled"))
	}
	return errors.Join(errs...)
}
