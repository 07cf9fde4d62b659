package commands

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/sahilm/fuzzy"

	"github.com/coffeegolfbot/caddie/caddie"
	"github.com/coffeegolfbot/caddie/caddie/config"
	"github.com/coffeegolfbot/caddie/caddie/golf"
	"github.com/coffeegolfbot/caddie/caddie/utils"
)

var History = discord.SlashCommandCreate{
	Name:        "history",
	Description: "Browse a player's full round history",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "player",
			Description: "Player name, fuzzy matched. Defaults to you.",
			Required:    false,
		},
	},
}

func HistoryHandler(b *caddie.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StorageTimeout)
		defer cancel()

		query := e.SlashCommandInteractionData().String("player")

		var stats golf.PlayerStats
		if query == "" {
			p, ok := b.Store.Player(ctx, e.User().ID.String())
			if !ok {
				return utils.EH.CreateInfoEmbed(e, "You haven't submitted any scores yet.")
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

		if len(stats.Scores) == 0 {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("**%s** has no recorded rounds.", stats.Name))
		}

		rounds := append([]golf.Score(nil), stats.Scores...)
		sort.Slice(rounds, func(i, j int) bool {
			if rounds[i].Date != rounds[j].Date {
				return rounds[i].Date > rounds[j].Date
			}
			return rounds[i].Timestamp > rounds[j].Timestamp
		})

		totalPages := int(math.Ceil(float64(len(rounds)) / float64(config.HistoryPerPage)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				start := page * config.HistoryPerPage
				end := min(start+config.HistoryPerPage, len(rounds))

				var description strings.Builder
				for _, s := range rounds[start:end] {
					fmt.Fprintf(&description, "%s: **%d** strokes", s.Date, s.Strokes)
					if s.Route != "" {
						fmt.Fprintf(&description, " %s", s.Route)
					}
					description.WriteString("\n")
				}

				embed.
					SetTitle(fmt.Sprintf("⛳ %s's Rounds", stats.Name)).
					SetDescription(description.String()).
					SetColor(config.InfoColor).
					SetFooter(fmt.Sprintf("Page %d/%d • %d rounds", page+1, totalPages, len(rounds)), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}
