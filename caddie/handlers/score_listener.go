package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"

	"github.com/coffeegolfbot/caddie/caddie"
	"github.com/coffeegolfbot/caddie/caddie/config"
	"github.com/coffeegolfbot/caddie/caddie/golf"
)

var attemptEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

// ScoreListener watches the configured channel for Coffee Golf submissions.
// Anything that doesn't parse as a score is ignored without side effects.
func ScoreListener(b *caddie.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.MessageCreate) {
		if e.Message.Author.Bot {
			return
		}
		if e.ChannelID != b.Cfg.Bot.ChannelID {
			return
		}

		sentAt := e.MessageID.Time()
		score, ok := golf.ParseScore(
			e.Message.Content,
			e.Message.Author.ID.String(),
			e.Message.Author.Username,
			e.MessageID.String(),
			sentAt,
		)
		if !ok {
			return
		}

		slog.Info("Score submission received",
			slog.String("type", "store"),
			slog.String("user_name", score.PlayerName),
			slog.String("date", score.Date),
			slog.Int("strokes", score.Strokes),
		)

		ctx, cancel := context.WithTimeout(context.Background(), config.StorageTimeout)
		defer cancel()

		res, err := b.Store.RecordAttempt(ctx, score)
		if err != nil {
			slog.Error("Failed to record attempt",
				slog.String("type", "store"),
				slog.String("user_name", score.PlayerName),
				slog.Any("error", err),
			)
			reply(e, "Something went wrong saving your score, try again in a bit.")
			return
		}

		if !res.Recorded {
			react(e, "❌")
			reply(e, fmt.Sprintf("You've already used all %d attempts for today. This score won't be counted.", res.Cap))
			return
		}

		react(e, "✅")
		if res.AttemptIndex >= 1 && res.AttemptIndex <= len(attemptEmojis) {
			react(e, attemptEmojis[res.AttemptIndex-1])
		}
		if res.NewDailyBest {
			react(e, "🏆")
			reply(e, fmt.Sprintf("New best score of the day: %d strokes! 🎉", score.Strokes))
		}
		if res.AttemptIndex == res.Cap {
			reply(e, fmt.Sprintf("This was your last attempt (%d/%d) for today.", res.AttemptIndex, res.Cap))
		}

		slog.Info("Score recorded",
			slog.String("type", "store"),
			slog.String("user_name", score.PlayerName),
			slog.String("date", score.Date),
			slog.Int("strokes", score.Strokes),
			slog.Int("attempt", res.AttemptIndex),
			slog.String("status", "success"),
		)
	})
}

func react(e *events.MessageCreate, emoji string) {
	if err := e.Client().Rest().AddReaction(e.ChannelID, e.MessageID, emoji); err != nil {
		slog.Error("Failed to add reaction",
			slog.String("type", "error"),
			slog.String("emoji", emoji),
			slog.Any("error", err),
		)
	}
}

func reply(e *events.MessageCreate, content string) {
	_, err := e.Client().Rest().CreateMessage(e.ChannelID, discord.NewMessageCreateBuilder().
		SetContent(content).
		SetMessageReferenceByID(e.MessageID).
		Build())
	if err != nil {
		slog.Error("Failed to send reply",
			slog.String("type", "error"),
			slog.String("channel_id", e.ChannelID.String()),
			slog.Any("error", err),
		)
	}
}
