// File: utils/embedhandler.go

package utils

import (
	"github.com/coffeegolfbot/caddie/caddie/config"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// ResponseHandler provides standardized response methods for commands
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// CreateErrorEmbed creates a standard error embed for command events
func (h *ResponseHandler) CreateErrorEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.ErrorColor,
		}},
	})
}

// CreateSuccessEmbed creates a standard success embed for command events
func (h *ResponseHandler) CreateSuccessEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.SuccessColor,
		}},
	})
}

// CreateInfoEmbed creates a standard info embed for command events
func (h *ResponseHandler) CreateInfoEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       config.InfoColor,
		}},
	})
}

// UpdateWithError replaces a deferred response with an error embed. Used so
// a failing command still produces exactly one user-visible reply.
func (h *ResponseHandler) UpdateWithError(event *handler.CommandEvent, message string) error {
	_, err := event.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{{
			Description: message,
			Color:       config.ErrorColor,
		}},
	})
	return err
}

// UpdateWithInfo replaces a deferred response with an info embed, for normal
// outcomes like an empty leaderboard.
func (h *ResponseHandler) UpdateWithInfo(event *handler.CommandEvent, message string) error {
	_, err := event.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{{
			Description: message,
			Color:       config.InfoColor,
		}},
	})
	return err
}

// Ptr returns a pointer to v, for the optional fields in message builders.
func Ptr[T any](v T) *T {
	return &v
}
