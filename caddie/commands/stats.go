package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/sahilm/fuzzy"

	"github.com/coffeegolfbot/caddie/caddie"
	"github.com/coffeegolfbot/caddie/caddie/config"
	"github.com/coffeegolfbot/caddie/caddie/golf"
	"github.com/coffeegolfbot/caddie/caddie/utils"
)

var Stats = discord.SlashCommandCreate{
	Name:        "stats",
	Description: "Show a player's Coffee Golf stats",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "player",
			Description: "Player name, fuzzy matched. Defaults to you.",
			Required:    false,
		},
	},
}

// playerItems implements fuzzy.Source over player display names.
type playerItems []golf.PlayerStats

func (p playerItems) String(i int) string { return strings.ToLower(p[i].Name) }
func (p playerItems) Len() int            { return len(p) }

func StatsHandler(b *caddie.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StorageTimeout)
		defer cancel()

		query := e.SlashCommandInteractionData().String("player")

		var stats golf.PlayerStats
		if query == "" {
			p, ok := b.Store.Player(ctx, e.User().ID.String())
			if !ok {
				return utils.EH.CreateInfoEmbed(e, "You haven't submitted any scores yet. Post a Coffee Golf result to get started.")
			}
			stats = p
		} else {
			players := playerItems(b.Store.Players(ctx))
			matches := fuzzy.FindFrom(strings.ToLower(query), players)
			if len(matches) == 0 {
				return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("No player matching **%s** found.", query))
			}
			stats = players[matches[0].Index]
		}

		recent := recentScores(stats.Scores, 5)

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("⛳ %s", stats.Name),
				Color: config.InfoColor,
				Fields: []discord.EmbedField{
					{Name: "Best", Value: fmt.Sprintf("%d strokes", stats.BestScore), Inline: boolPtr(true)},
					{Name: "Average", Value: fmt.Sprintf("%.2f strokes", stats.AverageScore), Inline: boolPtr(true)},
					{Name: "Rounds", Value: fmt.Sprintf("%d", stats.TotalGames), Inline: boolPtr(true)},
					{Name: "Recent rounds", Value: recent},
				},
			}},
		})
	}
}

// recentScores renders the newest n scores, one per line.
func recentScores(all []golf.Score, n int) string {
	if len(all) == 0 {
		return "No rounds yet"
	}

	sorted := append([]golf.Score(nil), all...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	var sb strings.Builder
	for _, s := range sorted {
		fmt.Fprintf(&sb, "%s: **%d** strokes", s.Date, s.Strokes)
		if s.Route != "" {
			fmt.Fprintf(&sb, " %s", s.Route)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
