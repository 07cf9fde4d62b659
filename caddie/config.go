package caddie

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Bot    BotConfig    `toml:"bot"`
	Spaces SpacesConfig `toml:"spaces"`
	Golf   GolfConfig   `toml:"golf"`
	Web    WebConfig    `toml:"web"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
	// ChannelID is the only channel score submissions are read from.
	ChannelID snowflake.ID `toml:"channel_id"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type SpacesConfig struct {
	Key       string `toml:"key"`
	Secret    string `toml:"secret"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	ObjectKey string `toml:"object_key"`
}

type GolfConfig struct {
	// DailyCap is the number of attempts per player per day eligible for
	// recording, 3 when unset.
	DailyCap int `toml:"daily_cap"`
	// CacheTTLMinutes bounds how long the score document is served from
	// memory before re-reading from Spaces, 5 when unset.
	CacheTTLMinutes int `toml:"cache_ttl_minutes"`
}

type WebConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}
