package config

import "time"

// UI and display constants
const (
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	// Umbrella color for combined leaderboards
	LeaderboardColor = 0x0099FF

	HistoryPerPage = 10
)

// Timeouts and cache settings
const (
	DefaultCommandTimeout = 10 * time.Second
	StorageTimeout        = 30 * time.Second

	// How long a loaded document may be served before re-reading from
	// Spaces. Invalidated synchronously on every write.
	DocumentCacheTTL = 5 * time.Minute

	// Rendered leaderboards cached per (date, mode)
	BoardCacheSize = 256
)

// Gameplay defaults, overridable in config.toml
const (
	DefaultDailyCap = 3
	DefaultDays     = 7
	MaxDays         = 30
)
