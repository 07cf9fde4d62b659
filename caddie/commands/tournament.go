package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/coffeegolfbot/caddie/caddie"
	"github.com/coffeegolfbot/caddie/caddie/config"
	"github.com/coffeegolfbot/caddie/caddie/golf"
	"github.com/coffeegolfbot/caddie/caddie/scores"
	"github.com/coffeegolfbot/caddie/caddie/utils"
)

var Tournament = discord.SlashCommandCreate{
	Name:        "tournament",
	Description: "Run Coffee Golf tournaments",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "create",
			Description: "Start a new tournament from today",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "name",
					Description: "Tournament name",
					Required:    true,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "days",
					Description: "Tournament length in days",
					Required:    true,
					MinValue:    intPtr(1),
					MaxValue:    intPtr(config.MaxDays),
				},
				discord.ApplicationCommandOptionString{
					Name:        "scoring",
					Description: "Scoring type used for standings",
					Required:    false,
					Choices:     scoringChoices,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "end",
			Description: "End the current tournament",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "status",
			Description: "Show the current tournament's progress",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "standings",
			Description: "Show the current tournament's standings",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "scoring",
					Description: "Override the tournament's scoring type",
					Required:    false,
					Choices:     scoringChoices,
				},
			},
		},
	},
}

func TournamentCreateHandler(b *caddie.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StorageTimeout)
		defer cancel()

		data := e.SlashCommandInteractionData()
		name := data.String("name")
		days := data.Int("days")
		mode := golf.ScoringTypeFromString(data.String("scoring"))

		t, err := b.Store.CreateTournament(ctx, name, days, mode, time.Now())
		if err != nil {
			if errors.Is(err, scores.ErrTournamentActive) {
				return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("A tournament is already running. End it first with `/tournament end`.\n(%v)", err))
			}
			return utils.EH.CreateErrorEmbed(e, "Failed to create the tournament. Please try again later.")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("🏆 Tournament Started: %s", t.Name),
				Description: fmt.Sprintf("**%s**\n%s to %s\nScores submitted in this window count automatically.",
					golf.ScoringTypeFromString(t.ScoringType).Display(), t.StartDate, t.EndDate),
				Color: config.SuccessColor,
			}},
		})
	}
}

func TournamentEndHandler(b *caddie.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StorageTimeout)
		defer cancel()

		t, ok, err := b.Store.EndTournament(ctx)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to end the tournament. Please try again later.")
		}
		if !ok {
			return utils.EH.CreateInfoEmbed(e, "There is no active tournament to end.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Tournament **%s** has ended. Final standings: `/tournament standings`.", t.Name))
	}
}

func TournamentStatusHandler(b *caddie.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StorageTimeout)
		defer cancel()

		t, ok := b.Store.CurrentTournament(ctx)
		if !ok {
			return utils.EH.CreateInfoEmbed(e, "No tournament is currently running.")
		}

		status, ok := b.Store.Status(ctx, t.Name, time.Now())
		if !ok {
			return utils.EH.CreateErrorEmbed(e, "Failed to compute tournament status.")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("🏆 %s", t.Name),
				Description: fmt.Sprintf("**%s**\n%s to %s", status.ScoringType.Display(), t.StartDate, t.EndDate),
				Color: config.InfoColor,
				Fields: []discord.EmbedField{
					{Name: "Days elapsed", Value: fmt.Sprintf("%d/%d", status.DaysElapsed, status.TotalDays), Inline: boolPtr(true)},
					{Name: "Days remaining", Value: fmt.Sprintf("%d", status.DaysRemaining), Inline: boolPtr(true)},
					{Name: "Participants", Value: fmt.Sprintf("%d", len(t.Participants)), Inline: boolPtr(true)},
				},
			}},
		})
	}
}

func TournamentStandingsHandler(b *caddie.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := e.DeferCreateMessage(false); err != nil {
			return fmt.Errorf("failed to defer response: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.StorageTimeout)
		defer cancel()

		current, ok := b.Store.CurrentTournament(ctx)
		if !ok {
			// Fall back to the most recent ended tournament.
			all := b.Store.Tournaments(ctx)
			if len(all) == 0 {
				return utils.EH.UpdateWithInfo(e, "No tournaments have been run yet.")
			}
			current = all[len(all)-1]
		}

		var override golf.ScoringType
		if s := e.SlashCommandInteractionData().String("scoring"); s != "" {
			override = golf.ScoringTypeFromString(s)
		}

		board, t, err := b.Store.TournamentStandings(ctx, current.Name, override)
		if err != nil {
			return utils.EH.UpdateWithError(e, "Failed to build tournament standings.")
		}
		if len(board) == 0 {
			return utils.EH.UpdateWithInfo(e, fmt.Sprintf("No scores recorded yet for **%s**.", t.Name))
		}

		mode := override
		if mode == "" {
			mode = golf.ScoringTypeFromString(t.ScoringType)
		}

		_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{{
				Title:       fmt.Sprintf("🏆 %s - Standings", t.Name),
				Description: fmt.Sprintf("**%s**\n%s to %s", mode.Display(), t.StartDate, t.EndDate),
				Color:       mode.Color(),
				Fields: []discord.EmbedField{
					{Name: "Standings", Value: formatRangeBoard(board)},
				},
			}},
		})
		return err
	}
}

func boolPtr(b bool) *bool {
	return &b
}
