package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"golang.org/x/sync/errgroup"

	"github.com/coffeegolfbot/caddie/caddie"
	"github.com/coffeegolfbot/caddie/caddie/commands"
	"github.com/coffeegolfbot/caddie/caddie/config"
	"github.com/coffeegolfbot/caddie/caddie/handlers"
	"github.com/coffeegolfbot/caddie/caddie/logger"
	"github.com/coffeegolfbot/caddie/caddie/scores"
	"github.com/coffeegolfbot/caddie/caddie/services"
	"github.com/coffeegolfbot/caddie/caddie/web"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler("Caddie")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Caddie Discord Bot",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := caddie.LoadConfig(*path)
	if err != nil {
		logger.LogError("Failed to load configuration", err)
		os.Exit(-1)
	}
	logger.LogSystem("Configuration loaded successfully")

	b := caddie.New(*cfg, version, commit)

	b.SpacesService = services.NewSpacesService(
		cfg.Spaces.Key,
		cfg.Spaces.Secret,
		cfg.Spaces.Region,
		cfg.Spaces.Bucket,
		cfg.Spaces.ObjectKey,
	)

	ttl := config.DocumentCacheTTL
	if cfg.Golf.CacheTTLMinutes > 0 {
		ttl = time.Duration(cfg.Golf.CacheTTLMinutes) * time.Minute
	}
	b.Store = scores.New(b.SpacesService, cfg.Golf.DailyCap, ttl)

	h := handler.New()

	h.Route("/leaderboard", func(r handler.Router) {
		r.Command("/today", handlers.WrapWithLogging("leaderboard today", commands.TodayLeaderboardHandler(b)))
		r.Command("/recent", handlers.WrapWithLogging("leaderboard recent", commands.RecentLeaderboardHandler(b)))
	})
	h.Route("/tournament", func(r handler.Router) {
		r.Command("/create", handlers.WrapWithLogging("tournament create", commands.TournamentCreateHandler(b)))
		r.Command("/end", handlers.WrapWithLogging("tournament end", commands.TournamentEndHandler(b)))
		r.Command("/status", handlers.WrapWithLogging("tournament status", commands.TournamentStatusHandler(b)))
		r.Command("/standings", handlers.WrapWithLogging("tournament standings", commands.TournamentStandingsHandler(b)))
	})
	h.Command("/stats", handlers.WrapWithLogging("stats", commands.StatsHandler(b)))
	h.Command("/history", handlers.WrapWithLogging("history", commands.HistoryHandler(b)))
	h.Command("/version", commands.VersionHandler(b))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady), handlers.ScoreListener(b)); err != nil {
		logger.LogError("Failed to setup bot", err, slog.String("component", "bot_setup"))
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		logger.LogSystem("Syncing commands", slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			logger.LogError("Failed to sync commands", err, slog.String("component", "command_sync"))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		logger.LogError("Failed to open gateway", err, slog.String("component", "gateway"))
		os.Exit(-1)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)

	var apiServer *web.Server
	if cfg.Web.Enabled {
		apiServer = web.NewServer(b.Store, version, commit)
		g.Go(func() error {
			return apiServer.Listen(cfg.Web.Addr)
		})
		g.Go(func() error {
			<-gCtx.Done()
			return apiServer.Shutdown(15 * time.Second)
		})
	}

	logger.LogSystem("Bot is running. Press CTRL-C to exit.")
	<-gCtx.Done()

	logger.LogSystem("Shutting down...")
	if err := g.Wait(); err != nil {
		logger.LogError("Shutdown error", err)
	}
}
