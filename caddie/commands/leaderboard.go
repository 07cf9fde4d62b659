package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/coffeegolfbot/caddie/caddie"
	"github.com/coffeegolfbot/caddie/caddie/config"
	"github.com/coffeegolfbot/caddie/caddie/golf"
	"github.com/coffeegolfbot/caddie/caddie/utils"
)

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "Shows Coffee Golf leaderboards",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "today",
			Description: "Show today's leaderboard",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "scoring",
					Description: "Scoring type to use",
					Required:    false,
					Choices:     scoringChoicesWithAll,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "recent",
			Description: "Show leaderboard for recent days",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionInt{
					Name:        "days",
					Description: "Number of days to include",
					Required:    false,
					MinValue:    intPtr(1),
					MaxValue:    intPtr(config.MaxDays),
				},
				discord.ApplicationCommandOptionString{
					Name:        "scoring",
					Description: "Scoring type to use",
					Required:    false,
					Choices:     scoringChoicesWithAll,
				},
			},
		},
	},
}

func intPtr(i int) *int {
	return &i
}

// TodayLeaderboardHandler renders today's standings for one scoring mode, or
// one embed per mode for "all".
func TodayLeaderboardHandler(b *caddie.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := e.DeferCreateMessage(false); err != nil {
			return fmt.Errorf("failed to defer response: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.StorageTimeout)
		defer cancel()

		scoring := e.SlashCommandInteractionData().String("scoring")
		today := golf.Today(time.Now())

		if scoring == "all" {
			return showAllModesToday(ctx, b, e, today)
		}

		mode := golf.ScoringTypeFromString(scoring)
		board := b.Store.DailyLeaderboard(ctx, today, mode)
		if len(board) == 0 {
			return utils.EH.UpdateWithInfo(e, fmt.Sprintf("No scores recorded for today (%s) with %s scoring!", today, mode.Display()))
		}

		embed := discord.Embed{
			Title:       fmt.Sprintf("☕⛳ Coffee Golf Leaderboard - Today (%s)", today),
			Description: fmt.Sprintf("**%s**", mode.Display()),
			Color:       mode.Color(),
			Fields: []discord.EmbedField{
				{Name: "Scores", Value: formatDailyBoard(board)},
			},
		}

		_, err := e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{embed},
		})
		return err
	}
}

// RecentLeaderboardHandler renders the cumulative board for the last N days.
func RecentLeaderboardHandler(b *caddie.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := e.DeferCreateMessage(false); err != nil {
			return fmt.Errorf("failed to defer response: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.StorageTimeout)
		defer cancel()

		data := e.SlashCommandInteractionData()
		days := data.Int("days")
		if days < 1 {
			days = config.DefaultDays
		}
		if days > config.MaxDays {
			days = config.MaxDays
		}
		scoring := data.String("scoring")

		now := time.Now()
		end := golf.Today(now)
		start := golf.FormatDate(now.In(golf.Eastern).AddDate(0, 0, -(days - 1)))

		if scoring == "all" {
			return showAllModesRange(ctx, b, e, start, end, days)
		}

		mode := golf.ScoringTypeFromString(scoring)
		board := b.Store.RangeLeaderboard(ctx, start, end, mode)
		if len(board) == 0 {
			return utils.EH.UpdateWithInfo(e, fmt.Sprintf("No scores recorded in the last %d days!", days))
		}

		embed := discord.Embed{
			Title:       fmt.Sprintf("☕⛳ Coffee Golf Leaderboard - Last %d Days", days),
			Description: fmt.Sprintf("**%s**\n%s to %s", mode.Display(), start, end),
			Color:       mode.Color(),
			Fields: []discord.EmbedField{
				{Name: "Cumulative Scores", Value: formatRangeBoard(board)},
			},
		}

		_, err := e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{embed},
		})
		return err
	}
}

func showAllModesToday(ctx context.Context, b *caddie.Bot, e *handler.CommandEvent, today string) error {
	var embeds []discord.Embed
	for _, mode := range golf.AllScoringTypes {
		board := b.Store.DailyLeaderboard(ctx, today, mode)
		if len(board) == 0 {
			continue // a mode with no qualifying players is omitted
		}
		embeds = append(embeds, discord.Embed{
			Title: fmt.Sprintf("☕⛳ %s", mode.Display()),
			Color: mode.Color(),
			Fields: []discord.EmbedField{
				{Name: "Scores", Value: formatDailyBoard(board)},
			},
		})
	}

	if len(embeds) == 0 {
		return utils.EH.UpdateWithInfo(e, "No scores recorded for today!")
	}

	embeds = append([]discord.Embed{{
		Title:       fmt.Sprintf("☕⛳ Coffee Golf Leaderboard - Today (%s)", today),
		Description: "**All Scoring Types**",
		Color:       config.LeaderboardColor,
	}}, embeds...)

	_, err := e.UpdateInteractionResponse(discord.MessageUpdate{Embeds: &embeds})
	return err
}

func showAllModesRange(ctx context.Context, b *caddie.Bot, e *handler.CommandEvent, start, end string, days int) error {
	var embeds []discord.Embed
	for _, mode := range golf.AllScoringTypes {
		board := b.Store.RangeLeaderboard(ctx, start, end, mode)
		if len(board) == 0 {
			continue
		}
		embeds = append(embeds, discord.Embed{
			Title: fmt.Sprintf("☕⛳ %s", mode.Display()),
			Color: mode.Color(),
			Fields: []discord.EmbedField{
				{Name: "Cumulative Scores", Value: formatRangeBoard(board)},
			},
		})
	}

	if len(embeds) == 0 {
		return utils.EH.UpdateWithInfo(e, fmt.Sprintf("No scores recorded in the last %d days!", days))
	}

	embeds = append([]discord.Embed{{
		Title:       fmt.Sprintf("☕⛳ Coffee Golf Leaderboard - Last %d Days", days),
		Description: fmt.Sprintf("**All Scoring Types**\n%s to %s", start, end),
		Color:       config.LeaderboardColor,
	}}, embeds...)

	_, err := e.UpdateInteractionResponse(discord.MessageUpdate{Embeds: &embeds})
	return err
}

func formatDailyBoard(board []golf.Entry) string {
	var sb strings.Builder
	for _, entry := range board {
		sb.WriteString(fmt.Sprintf("%s **%s**: %d strokes", entry.Position, entry.PlayerName, entry.Strokes))
		if entry.Route != "" {
			sb.WriteString(" " + entry.Route)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatRangeBoard(board []golf.RangeEntry) string {
	var sb strings.Builder
	for _, entry := range board {
		sb.WriteString(fmt.Sprintf("%s **%s**: %.2f avg (%d rounds, %d total strokes)\n",
			entry.Position, entry.PlayerName, entry.Average, entry.Rounds, entry.TotalStrokes))
	}
	return sb.String()
}
