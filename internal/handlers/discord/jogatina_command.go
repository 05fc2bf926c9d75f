package discord

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Draft-Lab/panela-tracker/internal/common/clock"
	"github.com/Draft-Lab/panela-tracker/internal/common/logger"
	"github.com/Draft-Lab/panela-tracker/internal/services/tracker"
)

const commandTimeout = 5 * time.Second

// JogatinaCommand handles the /jogatina command
type JogatinaCommand struct {
	BaseCommand
	tracker tracker.Service
	clock   clock.Clock
	log     *logger.Logger
}

// NewJogatinaCommand creates a new jogatina command handler
func NewJogatinaCommand(svc tracker.Service, clk clock.Clock, log *logger.Logger) *JogatinaCommand {
	return &JogatinaCommand{
		BaseCommand: BaseCommand{
			Name:        "jogatina",
			Description: "Game session tracking",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "current",
					Description: "List the sessions being played right now",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "session",
					Description: "Show one session with per-player play time",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "id",
							Description: "Session ID",
							Required:    true,
						},
					},
				},
			},
		},
		tracker: svc,
		clock:   clk,
		log:     log,
	}
}

// Handle processes a Discord interaction for the jogatina command
func (c *JogatinaCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	sub := data.Options[0]
	embed, err := c.render(ctx, sub)
	if err != nil {
		c.log.Warn("jogatina command failed", "subcommand", sub.Name, "error", err)
		return RespondWithError(s, i, userMessage(err))
	}
	return RespondWithEmbed(s, i, embed)
}

func (c *JogatinaCommand) render(ctx context.Context, sub *discordgo.ApplicationCommandInteractionDataOption) (*discordgo.MessageEmbed, error) {
	switch sub.Name {
	case "current":
		out, err := c.tracker.ListCurrentSessions(ctx, &tracker.ListCurrentSessionsInput{})
		if err != nil {
			return nil, err
		}
		return currentSessionsEmbed(out, c.clock.Now()), nil
	case "session":
		var id string
		for _, opt := range sub.Options {
			if opt.Name == "id" {
				id = opt.StringValue()
			}
		}
		out, err := c.tracker.GetSession(ctx, &tracker.GetSessionInput{SessionID: id})
		if err != nil {
			return nil, err
		}
		return sessionEmbed(out), nil
	}
	return nil, errUnknownSubcommand
}

var errUnknownSubcommand = errors.New("unknown subcommand")

func userMessage(err error) string {
	switch {
	case errors.Is(err, tracker.ErrSessionNotFound):
		return "No session with that ID."
	case errors.Is(err, tracker.ErrInvalidPayload):
		return "A session ID is required."
	case errors.Is(err, errUnknownSubcommand):
		return "Unknown subcommand."
	}
	return "Something went wrong, try again later."
}
