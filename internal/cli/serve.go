package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Draft-Lab/panela-tracker/internal/handlers/api"
	"github.com/Draft-Lab/panela-tracker/internal/handlers/discord"
	"github.com/Draft-Lab/panela-tracker/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and, when configured, the Discord bot",
	Long: `Serve starts the HTTP API that receives bot events and admin requests.
When DISCORD_TOKEN is set the Discord bot runs alongside it and feeds
presence changes into the tracker. SIGINT or SIGTERM stops both.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cfg.ValidateServe(); err != nil {
		return err
	}

	if db := a.backend.DB(); db != nil {
		if err := storage.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := api.NewServer(a.cfg.HTTPAddr, &api.RouterConfig{
		Tracker:        a.tracker,
		APIKey:         a.cfg.BotAPIKey,
		AllowedOrigins: a.cfg.CORSAllowedOrigins,
		Logger:         a.log.With("component", "http"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})

	if a.cfg.DiscordToken != "" {
		bot, err := discord.New(&discord.Config{
			Token:         a.cfg.DiscordToken,
			ApplicationID: a.cfg.ApplicationID,
			GuildID:       a.cfg.GuildID,
			APIKey:        a.cfg.BotAPIKey,
			Tracker:       a.tracker,
			Clock:         a.clock,
			Logger:        a.log,
		})
		if err != nil {
			return fmt.Errorf("failed to create Discord bot: %w", err)
		}
		g.Go(func() error {
			return bot.Run(gctx)
		})
	} else {
		a.log.Info("DISCORD_TOKEN not set, running without the bot")
	}

	if err := g.Wait(); err != nil {
		a.log.Error("server stopped with error", "error", err)
		return err
	}
	a.log.Info("shut down cleanly")
	return nil
}
