package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Draft-Lab/panela-tracker/internal/common/clock"
	"github.com/Draft-Lab/panela-tracker/internal/common/logger"
	"github.com/Draft-Lab/panela-tracker/internal/services/tracker"
)

const eventTimeout = 10 * time.Second

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	tracker    tracker.Service
	presence   *PresenceTracker
	config     *Config
	log        *logger.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// APIKey is presented to the tracker with every presence event
	APIKey string

	Tracker tracker.Service
	Clock   clock.Clock
	Logger  *logger.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.Tracker == nil {
		return nil, errors.New("tracker service cannot be nil")
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildPresences

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		tracker:    cfg.Tracker,
		presence:   NewPresenceTracker(),
		config:     cfg,
		log:        log.With("component", "discord"),
	}

	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handlePresenceUpdate)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	cmd := NewJogatinaCommand(b.tracker, b.config.Clock, b.log)
	if err := b.RegisterCommand(cmd); err != nil {
		return fmt.Errorf("failed to register jogatina command: %w", err)
	}

	b.log.Info("bot is running")
	return nil
}

// Run starts the bot and stops it when ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return b.Stop()
}

// Stop removes the registered commands and closes the connection
func (b *Bot) Stop() error {
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.log.Warn("failed to delete command", "command", cmdName, "command_id", cmdID, "error", err)
		}
	}

	return b.session.Close()
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord. Commands are global
// unless a guild ID is configured.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.log.Info("registered command", "command", cmd.GetName(), "command_id", createdCmd.ID, "guild_id", b.config.GuildID)

	return nil
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	if h, ok := b.commands[name]; ok {
		if err := h.Handle(s, i); err != nil {
			b.log.Error("error handling command", "command", name, "error", err)
		}
	}
}

func (b *Bot) handlePresenceUpdate(_ *discordgo.Session, p *discordgo.PresenceUpdate) {
	if p == nil || p.User == nil || p.User.Bot {
		return
	}
	if b.config.GuildID != "" && p.GuildID != b.config.GuildID {
		return
	}

	transitions := b.presence.Update(p.User.ID, PlayingTitle(p.Status, p.Activities))
	if len(transitions) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()
	b.forward(ctx, transitions)
}

// forward sends transitions to the tracker in order
func (b *Bot) forward(ctx context.Context, transitions []Transition) {
	for _, t := range transitions {
		log := b.log.With("handle", t.Handle, "game_title", t.GameTitle, "event_kind", t.Kind)

		out, err := b.tracker.RecordEvent(ctx, &tracker.RecordEventInput{
			Token:        b.config.APIKey,
			PlayerHandle: t.Handle,
			GameTitle:    t.GameTitle,
			EventKind:    t.Kind,
		})
		switch {
		case err == nil:
			log.Debug("presence event recorded", "session_id", out.SessionID, "active_players", out.ActivePlayers)
		case errors.Is(err, tracker.ErrNoCurrentSession),
			errors.Is(err, tracker.ErrNotInSession),
			errors.Is(err, tracker.ErrNotActive):
			// the player started before the bot was watching
			log.Debug("presence leave ignored", "error", err)
		default:
			log.Error("failed to record presence event", "error", err)
		}
	}
}
