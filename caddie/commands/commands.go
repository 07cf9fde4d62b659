package commands

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	Leaderboard,
	Tournament,
	Stats,
	History,
	Version,
}

// scoringChoices is shared by every command that takes a scoring mode.
var scoringChoices = []discord.ApplicationCommandOptionChoiceString{
	{Name: "First attempt", Value: "first"},
	{Name: "Best of 3 attempts", Value: "best"},
	{Name: "Best attempt (unlimited)", Value: "unlimited"},
}

// scoringChoicesWithAll adds the combined view offered by /leaderboard.
var scoringChoicesWithAll = append(scoringChoices,
	discord.ApplicationCommandOptionChoiceString{Name: "All", Value: "all"},
)
